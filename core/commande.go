package core

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	CommandeStatutBrouillon = "brouillon"
	CommandeStatutCommande  = "commandé"
	CommandeStatutRecu      = "reçu"
	CommandeStatutAnnule    = "annulé"
)

// Commande is a supplier order for equipment or material, attached to
// the chantier it serves.
type Commande struct {
	CommandeId  uint            `gorm:"primaryKey;autoIncrement"`
	Reference   string          `gorm:"uniqueIndex;size:120"`
	ChantierId  uint            `gorm:"not null;index"`
	Fournisseur string          `gorm:"size:180"`
	MontantHT   decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	Statut      string          `gorm:"size:20;default:brouillon"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Chantier *Chantier `gorm:"foreignKey:ChantierId;references:ChantierId"`
}

func (Commande) TableName() string {
	return "commandes"
}

func ValidateCommande(db *gorm.DB, c *Commande) (ValidationErrors, error) {
	errs := ValidationErrors{}

	if c.Reference == "" {
		errs.Add("reference", "La référence est requise")
	} else {
		var count int64
		query := db.Model(&Commande{}).Where("reference = ?", c.Reference)
		if c.CommandeId != 0 {
			query = query.Where("commande_id <> ?", c.CommandeId)
		}
		if err := query.Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			errs.Add("reference", "Une commande avec cette référence existe déjà")
		}
	}

	if c.Fournisseur == "" {
		errs.Add("fournisseur", "Le fournisseur est requis")
	}

	switch c.Statut {
	case CommandeStatutBrouillon, CommandeStatutCommande, CommandeStatutRecu, CommandeStatutAnnule:
	default:
		errs.Add("statut", "Statut de commande inconnu: "+c.Statut)
	}

	if c.MontantHT.IsNegative() {
		errs.Add("montant_ht", "Le montant HT ne peut pas être négatif")
	}

	chantier, err := FindChantierByID(db, c.ChantierId)
	if err != nil {
		return nil, err
	}
	if chantier == nil {
		errs.Add("chantier", "Le chantier spécifié n'existe pas")
	}

	return errs, nil
}

func SaveCommande(db *gorm.DB, c *Commande) (ValidationErrors, error) {
	errs, err := ValidateCommande(db, c)
	if err != nil {
		return nil, err
	}
	if errs.HasErrors() {
		return errs, nil
	}

	if c.CommandeId != 0 {
		var stored Commande
		if err := db.First(&stored, c.CommandeId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				errs.Add("commande", "La commande spécifiée n'existe pas")
				return errs, nil
			}
			return nil, err
		}
		c.CreatedAt = stored.CreatedAt
	}

	if err := db.Save(c).Error; err != nil {
		return nil, err
	}
	return nil, nil
}
