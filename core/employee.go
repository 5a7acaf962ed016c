package core

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	UserTypeEmploye    = "Employé"
	UserTypeChefEquipe = "Chef d'équipe"
	UserTypeAdmin      = "Administrateur"
)

type Employee struct {
	EmployeeId       uint    `gorm:"primaryKey;autoIncrement"`
	Email            string  `gorm:"uniqueIndex;size:190"`
	FirstName        string  `gorm:"size:120"`
	LastName         string  `gorm:"size:120"`
	Telephone        string  `gorm:"size:32"`
	UserType         string  `gorm:"size:20;default:Employé"`
	CoutH            *decimal.Decimal `gorm:"type:decimal(8,2)"` // hourly cost, drives planning costs
	CoutJ            *decimal.Decimal `gorm:"type:decimal(8,2)"` // daily cost, informational only
	Competences      datatypes.JSON
	PermisDeConduire datatypes.JSON
	EquipeId         *uint `gorm:"index"`
	Actif            bool  `gorm:"default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Equipe *Equipe `gorm:"foreignKey:EquipeId;references:EquipeId"`
}

func (Employee) TableName() string {
	return "users"
}

func (e *Employee) FullName() string {
	if e.FirstName == "" {
		return e.LastName
	}
	return e.FirstName + " " + e.LastName
}

// ValidateEmployee checks the directory fields. The hourly rate is
// validated here but written through the rate-update path so planned
// costs stay consistent.
func ValidateEmployee(db *gorm.DB, e *Employee) (ValidationErrors, error) {
	errs := ValidationErrors{}

	if e.Email == "" {
		errs.Add("email", "L'adresse email est obligatoire")
	} else {
		var count int64
		query := db.Model(&Employee{}).Where("email = ?", e.Email)
		if e.EmployeeId != 0 {
			query = query.Where("employee_id <> ?", e.EmployeeId)
		}
		if err := query.Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			errs.Add("email", "Un utilisateur avec cette adresse email existe déjà")
		}
	}

	switch e.UserType {
	case UserTypeEmploye, UserTypeChefEquipe, UserTypeAdmin:
	default:
		errs.Add("user_type", "Type d'utilisateur invalide")
	}

	if e.CoutH != nil && e.CoutH.IsNegative() {
		errs.Add("cout_h", "Le coût horaire ne peut pas être négatif")
	}
	if e.CoutJ != nil && e.CoutJ.IsNegative() {
		errs.Add("cout_j", "Le coût journalier ne peut pas être négatif")
	}

	if e.EquipeId != nil {
		var count int64
		if err := db.Model(&Equipe{}).Where("equipe_id = ?", *e.EquipeId).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			errs.Add("equipe", "L'équipe spécifiée n'existe pas")
		}
	}

	return errs, nil
}

// SaveEmployee validates and persists. On update the stored hourly
// rate is kept: rate changes go through the dedicated cascade path.
func SaveEmployee(db *gorm.DB, e *Employee) (ValidationErrors, error) {
	errs, err := ValidateEmployee(db, e)
	if err != nil {
		return nil, err
	}
	if errs.HasErrors() {
		return errs, nil
	}

	if e.EmployeeId != 0 {
		var stored Employee
		if err := db.First(&stored, e.EmployeeId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				errs.Add("user", "L'utilisateur spécifié n'existe pas")
				return errs, nil
			}
			return nil, err
		}
		e.CoutH = stored.CoutH
		e.CreatedAt = stored.CreatedAt
	}

	if err := db.Save(e).Error; err != nil {
		return nil, err
	}
	return nil, nil
}

func FindEmployeeByID(db *gorm.DB, id uint) (*Employee, error) {
	var emp Employee
	result := db.First(&emp, id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil // not found
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &emp, nil
}

func FindEmployeesByEquipe(db *gorm.DB, equipeID uint) ([]Employee, error) {
	var emps []Employee
	if err := db.Where("equipe_id = ?", equipeID).Order("last_name, first_name").Find(&emps).Error; err != nil {
		return nil, err
	}
	return emps, nil
}
