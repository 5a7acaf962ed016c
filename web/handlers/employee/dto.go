package employee

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"mybtp.com/mybtp/core"
)

type EmployeeSaveDTO struct {
	Email            string           `json:"email" binding:"required,email"`
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name" binding:"required"`
	Telephone        string           `json:"telephone"`
	UserType         string           `json:"user_type"`
	CoutH            *decimal.Decimal `json:"cout_h"`
	CoutJ            *decimal.Decimal `json:"cout_j"`
	Competences      []string         `json:"competences"`
	PermisDeConduire []string         `json:"permis_de_conduire"`
	Equipe           *uint            `json:"equipe"`
	Actif            *bool            `json:"actif"`
}

type RateUpdateDTO struct {
	CoutH *decimal.Decimal `json:"cout_h"`
}

type EmployeeDTO struct {
	ID               uint             `json:"id"`
	Email            string           `json:"email"`
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	FullName         string           `json:"full_name"`
	Telephone        string           `json:"telephone,omitempty"`
	UserType         string           `json:"user_type"`
	CoutH            *decimal.Decimal `json:"cout_h,omitempty"`
	CoutJ            *decimal.Decimal `json:"cout_j,omitempty"`
	Competences      []string         `json:"competences,omitempty"`
	PermisDeConduire []string         `json:"permis_de_conduire,omitempty"`
	Equipe           *uint            `json:"equipe,omitempty"`
	EquipeName       string           `json:"equipe_name,omitempty"`
	Actif            bool             `json:"actif"`
}

func toEmployeeDTO(e *core.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:        e.EmployeeId,
		Email:     e.Email,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		FullName:  e.FullName(),
		Telephone: e.Telephone,
		UserType:  e.UserType,
		CoutH:     e.CoutH,
		CoutJ:     e.CoutJ,
		Equipe:    e.EquipeId,
		Actif:     e.Actif,
	}
	if e.Equipe != nil {
		dto.EquipeName = e.Equipe.Name
	}
	if len(e.Competences) > 0 {
		_ = json.Unmarshal(e.Competences, &dto.Competences)
	}
	if len(e.PermisDeConduire) > 0 {
		_ = json.Unmarshal(e.PermisDeConduire, &dto.PermisDeConduire)
	}
	return dto
}
