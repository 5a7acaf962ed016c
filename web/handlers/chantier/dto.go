package chantier

import (
	"github.com/shopspring/decimal"

	"mybtp.com/mybtp/core"
	"mybtp.com/mybtp/web/common"
)

// ChantierSaveDTO deliberately has no spent-hours/spent-cost/va
// fields: those are derived and only the aggregation pipeline writes
// them.
type ChantierSaveDTO struct {
	NameChantier             string           `json:"name_chantier"`
	Contact                  string           `json:"contact"`
	TelephoneContact         string           `json:"telephone_contact"`
	ClientFinalType          string           `json:"client_final_type"`
	AdresseChantier          string           `json:"adresse_chantier"`
	CpVilleChantier          string           `json:"cp_ville_chantier"`
	TravauxType              []string         `json:"travaux_type"`
	AvancementChantier       uint             `json:"avancement_chantier"`
	DateRdvTechnique         *common.DateOnly `json:"date_rdv_technique"`
	DateDebutChantier        *common.DateOnly `json:"date_debut_chantier"`
	DateFinPrevueChantier    *common.DateOnly `json:"date_fin_prevue_chantier"`
	AnneePeriodeConstruction string           `json:"annee_periode_construction"`
	ChefChantier             *uint            `json:"chef_chantier"`
	BriefURL                 string           `json:"brief_url"`
	DevisHT                  decimal.Decimal  `json:"devis_ht"`
}

type ChantierDTO struct {
	ID                       uint             `json:"id"`
	NameChantier             string           `json:"name_chantier"`
	Contact                  string           `json:"contact"`
	TelephoneContact         string           `json:"telephone_contact"`
	ClientFinalType          string           `json:"client_final_type"`
	AdresseChantier          string           `json:"adresse_chantier"`
	CpVilleChantier          string           `json:"cp_ville_chantier"`
	Latitude                 *decimal.Decimal `json:"latitude,omitempty"`
	Longitude                *decimal.Decimal `json:"longitude,omitempty"`
	AvancementChantier       uint             `json:"avancement_chantier"`
	DateDebutChantier        *common.DateOnly `json:"date_debut_chantier,omitempty"`
	DateFinPrevueChantier    *common.DateOnly `json:"date_fin_prevue_chantier,omitempty"`
	NombreDeJoursChantier    uint             `json:"nombre_de_jours_chantier"`
	ChefChantier             *uint            `json:"chef_chantier,omitempty"`
	ChefChantierName         string           `json:"chef_chantier_name,omitempty"`
	BriefURL                 string           `json:"brief_url,omitempty"`
	DevisHT                  decimal.Decimal  `json:"devis_ht"`
	NumberHourPlanned        decimal.Decimal  `json:"number_hour_planned"`
	NumberHourSpentOnProject decimal.Decimal  `json:"number_hour_spent_on_project"`
	CostSpentOnProject       decimal.Decimal  `json:"cost_spent_on_project"`
	VA                       decimal.Decimal  `json:"va"`
	VAPercent                *decimal.Decimal `json:"va_percent,omitempty"`
	VAStatus                 core.VAStatus    `json:"va_status"`
}

type DocumentDTO struct {
	ID         uint   `json:"id"`
	Position   int    `json:"position"`
	Label      string `json:"label"`
	URL        string `json:"url,omitempty"`
	StorageKey string `json:"storage_key,omitempty"`
}

type DocumentsReplaceDTO struct {
	Documents []DocumentSaveDTO `json:"documents" binding:"required"`
}

type DocumentSaveDTO struct {
	Label      string `json:"label"`
	URL        string `json:"url"`
	StorageKey string `json:"storage_key"`
}

func toChantierDTO(c *core.Chantier) ChantierDTO {
	dto := ChantierDTO{
		ID:                       c.ChantierId,
		NameChantier:             c.NameChantier,
		Contact:                  c.Contact,
		TelephoneContact:         c.TelephoneContact,
		ClientFinalType:          c.ClientFinalType,
		AdresseChantier:          c.AdresseChantier,
		CpVilleChantier:          c.CpVilleChantier,
		Latitude:                 c.Latitude,
		Longitude:                c.Longitude,
		AvancementChantier:       c.AvancementChantier,
		NombreDeJoursChantier:    c.NombreDeJoursChantier,
		ChefChantier:             c.ChefChantierId,
		BriefURL:                 c.BriefURL,
		DevisHT:                  c.DevisHT,
		NumberHourPlanned:        c.NumberHourPlanned,
		NumberHourSpentOnProject: c.NumberHourSpentOnProject,
		CostSpentOnProject:       c.CostSpentOnProject,
		VA:                       c.VA,
		VAStatus:                 core.ClassifyVA(c.DevisHT, c.VA),
	}
	if c.DateDebutChantier != nil {
		dto.DateDebutChantier = &common.DateOnly{Time: *c.DateDebutChantier}
	}
	if c.DateFinPrevueChantier != nil {
		dto.DateFinPrevueChantier = &common.DateOnly{Time: *c.DateFinPrevueChantier}
	}
	if c.ChefChantier != nil {
		dto.ChefChantierName = c.ChefChantier.FullName()
	}
	if percent, ok := core.VAPercent(c.DevisHT, c.VA); ok {
		dto.VAPercent = &percent
	}
	return dto
}

func toDocumentDTO(d *core.ChantierDocument) DocumentDTO {
	return DocumentDTO{
		ID:         d.DocumentId,
		Position:   d.Position,
		Label:      d.Label,
		URL:        d.URL,
		StorageKey: d.StorageKey,
	}
}
