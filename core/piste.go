package core

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PisteStatutNouveau  = "Nouveau"
	PisteStatutQualifie = "Qualifié"
	PisteStatutDevis    = "Devis"
	PisteStatutGagne    = "Gagné"
	PisteStatutPerdu    = "Perdu"
)

// Piste is a sales lead. Outside the planning core, read-only context.
type Piste struct {
	PisteId       uint   `gorm:"primaryKey;autoIncrement"`
	Client        string `gorm:"size:180"`
	Statut        string `gorm:"size:20;default:Nouveau"`
	Source        string `gorm:"size:120"`
	MontantEstime decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	Probabilite   uint   `gorm:"default:0"` // percent, 0-100
	DateRelance   *time.Time `gorm:"type:date"`
	Notes         string `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Piste) TableName() string {
	return "pistes"
}

func ValidatePiste(p *Piste) ValidationErrors {
	errs := ValidationErrors{}
	if p.Client == "" {
		errs.Add("client", "Le nom du client est requis")
	}
	switch p.Statut {
	case PisteStatutNouveau, PisteStatutQualifie, PisteStatutDevis, PisteStatutGagne, PisteStatutPerdu:
	default:
		errs.Add("statut", "Statut de piste inconnu: "+p.Statut)
	}
	if p.Probabilite > 100 {
		errs.Add("probabilite", "La probabilité doit être comprise entre 0 et 100")
	}
	if p.MontantEstime.IsNegative() {
		errs.Add("montant_estime", "Le montant estimé ne peut pas être négatif")
	}
	return errs
}
