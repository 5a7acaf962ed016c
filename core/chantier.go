package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ClientTypeProfessionnel = "Professionnel"
	ClientTypeParticulier   = "Particulier"
)

// Chantier is a construction site. The budget fields number_hour_planned,
// number_hour_spent_on_project, cost_spent_on_project and va are derived:
// never accepted from callers, only recomputed (see ComputeDerived and
// planning/core.UpdateChantierAggregates).
type Chantier struct {
	ChantierId               uint   `gorm:"primaryKey;autoIncrement"`
	NameChantier             string `gorm:"uniqueIndex;size:180"`
	Contact                  string `gorm:"type:text"`
	TelephoneContact         string `gorm:"size:32"`
	ClientFinalType          string `gorm:"size:20;default:Particulier"`
	AdresseChantier          string `gorm:"type:text"`
	CpVilleChantier          string `gorm:"size:16"`
	Latitude                 *decimal.Decimal `gorm:"type:decimal(9,6)"`
	Longitude                *decimal.Decimal `gorm:"type:decimal(9,6)"`
	TravauxType              datatypes.JSON
	AvancementChantier       uint `gorm:"default:0"` // percent, 0-100
	DateRdvTechnique         *time.Time `gorm:"type:date"`
	DateDebutChantier        *time.Time `gorm:"type:date"`
	DateFinPrevueChantier    *time.Time `gorm:"type:date"`
	NombreDeJoursChantier    uint      `gorm:"default:0"`
	AnneePeriodeConstruction string    `gorm:"size:32"`
	ChefChantierId           *uint     `gorm:"index"`
	BriefURL                 string    `gorm:"size:500"`
	DevisHT                  decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	NumberHourPlanned        decimal.Decimal `gorm:"type:decimal(10,2);default:0"`
	NumberHourSpentOnProject decimal.Decimal `gorm:"type:decimal(10,2);default:0"`
	CostSpentOnProject       decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	VA                       decimal.Decimal `gorm:"column:va;type:decimal(12,2);default:0"`
	CreatedAt                time.Time
	UpdatedAt                time.Time

	ChefChantier *Employee          `gorm:"foreignKey:ChefChantierId;references:EmployeeId"`
	Documents    []ChantierDocument `gorm:"foreignKey:ChantierId;references:ChantierId"`
}

func (Chantier) TableName() string {
	return "chantiers"
}

// Every 1500 of quoted price buys 24 planned hours.
var (
	plannedHoursQuoteUnit = decimal.NewFromInt(1500)
	plannedHoursPerUnit   = decimal.NewFromInt(24)
	vaGoodThreshold       = decimal.NewFromInt(55)
	hundred               = decimal.NewFromInt(100)
)

type VAStatus string

const (
	VAStatusGood    VAStatus = "good"
	VAStatusBad     VAStatus = "bad"
	VAStatusUnknown VAStatus = "unknown"
)

// ComputePlannedHours derives the labour budget from the quoted price.
func ComputePlannedHours(devisHT decimal.Decimal) decimal.Decimal {
	if !devisHT.IsPositive() {
		return decimal.Zero.Round(2)
	}
	return devisHT.Mul(plannedHoursPerUnit).Div(plannedHoursQuoteUnit).Round(2)
}

// ComputeVA is the margin: quoted price minus spent cost. May be negative.
func ComputeVA(devisHT, costSpent decimal.Decimal) decimal.Decimal {
	return devisHT.Sub(costSpent).Round(2)
}

// VAPercent returns va/devis*100. The boolean is false when the quote
// is zero and the ratio is undefined.
func VAPercent(devisHT, va decimal.Decimal) (decimal.Decimal, bool) {
	if !devisHT.IsPositive() {
		return decimal.Zero, false
	}
	return va.Mul(hundred).Div(devisHT).Round(2), true
}

func ClassifyVA(devisHT, va decimal.Decimal) VAStatus {
	percent, ok := VAPercent(devisHT, va)
	if !ok {
		return VAStatusUnknown
	}
	if percent.GreaterThanOrEqual(vaGoodThreshold) {
		return VAStatusGood
	}
	return VAStatusBad
}

// ComputeDerived refreshes the fields that depend on the quoted price
// and the dates. CostSpentOnProject is an input here, never recomputed:
// only the aggregation engine writes it.
func (c *Chantier) ComputeDerived() {
	c.NumberHourPlanned = ComputePlannedHours(c.DevisHT)
	c.VA = ComputeVA(c.DevisHT, c.CostSpentOnProject)

	if c.DateDebutChantier != nil && c.DateFinPrevueChantier != nil {
		days := int(c.DateFinPrevueChantier.Sub(*c.DateDebutChantier).Hours()/24) + 1
		if days < 0 {
			days = 0
		}
		c.NombreDeJoursChantier = uint(days)
	} else {
		c.NombreDeJoursChantier = 0
	}
}

// GenerateNameChantier allocates the next CH-YYYY-NNNN display name.
func GenerateNameChantier(db *gorm.DB, now time.Time) (string, error) {
	prefix := fmt.Sprintf("CH-%d-", now.Year())

	var last Chantier
	err := db.Where("name_chantier LIKE ?", prefix+"%").
		Order("name_chantier DESC").
		First(&last).Error

	sequence := 1
	if err == nil {
		parts := strings.Split(last.NameChantier, "-")
		if n, convErr := strconv.Atoi(parts[len(parts)-1]); convErr == nil {
			sequence = n + 1
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	return fmt.Sprintf("%s%04d", prefix, sequence), nil
}

// ValidateChantier checks caller-editable fields. Violations are
// accumulated, not short-circuited.
func ValidateChantier(db *gorm.DB, c *Chantier) (ValidationErrors, error) {
	errs := ValidationErrors{}

	if c.DevisHT.IsNegative() {
		errs.Add("devis_ht", "Le devis HT ne peut pas être négatif")
	}

	if c.AvancementChantier > 100 {
		errs.Add("avancement_chantier", "L'avancement doit être compris entre 0 et 100")
	}

	if c.DateDebutChantier != nil && c.DateFinPrevueChantier != nil &&
		c.DateFinPrevueChantier.Before(*c.DateDebutChantier) {
		errs.Add("date_fin_prevue_chantier", "La date de fin ne peut pas être antérieure à la date de début")
	}

	if c.ChefChantierId != nil {
		chef, err := FindEmployeeByID(db, *c.ChefChantierId)
		if err != nil {
			return nil, err
		}
		if chef == nil {
			errs.Add("chef_chantier", "Le chef de chantier spécifié n'existe pas")
		} else if chef.UserType != UserTypeChefEquipe {
			errs.Add("chef_chantier", "Le chef de chantier doit avoir le type 'Chef d'équipe'")
		}
	}

	return errs, nil
}

// SaveChantier runs the explicit save pipeline: validate, generate the
// display name, recompute derived fields, persist. Spent hours/cost are
// always taken from storage, so a caller can never set them through
// this path.
func SaveChantier(db *gorm.DB, c *Chantier) (ValidationErrors, error) {
	errs, err := ValidateChantier(db, c)
	if err != nil {
		return nil, err
	}
	if errs.HasErrors() {
		return errs, nil
	}

	if c.ChantierId != 0 {
		var stored Chantier
		if err := db.First(&stored, c.ChantierId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				errs.Add("chantier", "Le chantier spécifié n'existe pas")
				return errs, nil
			}
			return nil, err
		}
		c.NumberHourSpentOnProject = stored.NumberHourSpentOnProject
		c.CostSpentOnProject = stored.CostSpentOnProject
		c.CreatedAt = stored.CreatedAt
	} else {
		c.NumberHourSpentOnProject = decimal.Zero
		c.CostSpentOnProject = decimal.Zero
	}

	if c.NameChantier == "" {
		name, err := GenerateNameChantier(db, time.Now())
		if err != nil {
			return nil, err
		}
		c.NameChantier = name
	}

	c.ComputeDerived()

	if err := db.Save(c).Error; err != nil {
		return nil, err
	}
	return nil, nil
}

func FindChantierByID(db *gorm.DB, id uint) (*Chantier, error) {
	var chantier Chantier
	result := db.First(&chantier, id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil // not found
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &chantier, nil
}
