package core

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Equipe struct {
	EquipeId     uint   `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"uniqueIndex;size:120"`
	Color        string `gorm:"size:7;default:#6C63FF"` // hex, for calendar display
	ChefEquipeId *uint  `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	ChefEquipe *Employee  `gorm:"foreignKey:ChefEquipeId;references:EmployeeId"`
	Members    []Employee `gorm:"foreignKey:EquipeId;references:EquipeId"`
}

func (Equipe) TableName() string {
	return "equipes"
}

func ValidateEquipe(db *gorm.DB, e *Equipe) (ValidationErrors, error) {
	errs := ValidationErrors{}

	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		errs.Add("name", "Le nom de l'équipe est obligatoire")
	} else {
		var count int64
		query := db.Model(&Equipe{}).Where("name = ?", e.Name)
		if e.EquipeId != 0 {
			query = query.Where("equipe_id <> ?", e.EquipeId)
		}
		if err := query.Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			errs.Add("name", "Une équipe avec ce nom existe déjà")
		}
	}

	if e.ChefEquipeId != nil {
		var count int64
		if err := db.Model(&Employee{}).Where("employee_id = ?", *e.ChefEquipeId).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			errs.Add("chef_equipe", "Le chef d'équipe spécifié n'existe pas")
		}
	}

	return errs, nil
}

// SaveEquipe validates and persists. On update the stored CreatedAt
// is kept so a full-object Save does not zero it.
func SaveEquipe(db *gorm.DB, e *Equipe) (ValidationErrors, error) {
	errs, err := ValidateEquipe(db, e)
	if err != nil {
		return nil, err
	}
	if errs.HasErrors() {
		return errs, nil
	}

	if e.EquipeId != 0 {
		var stored Equipe
		if err := db.First(&stored, e.EquipeId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				errs.Add("equipe", "L'équipe spécifiée n'existe pas")
				return errs, nil
			}
			return nil, err
		}
		e.CreatedAt = stored.CreatedAt
	}

	if err := db.Save(e).Error; err != nil {
		return nil, err
	}
	return nil, nil
}
