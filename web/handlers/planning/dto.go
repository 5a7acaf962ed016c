package planning

import (
	"github.com/shopspring/decimal"

	"mybtp.com/mybtp/core"
	"mybtp.com/mybtp/planning/model"
	"mybtp.com/mybtp/web/common"
)

type PlanningSaveDTO struct {
	User      uint             `json:"user" binding:"required"`
	Chantier  uint             `json:"chantier" binding:"required"`
	Date      *common.DateOnly `json:"date" binding:"required"`
	StartHour string           `json:"start_hour" binding:"required"`
	EndHour   string           `json:"end_hour" binding:"required"`
}

type PlanningDTO struct {
	ID           uint            `json:"id"`
	User         uint            `json:"user"`
	EmployeeName string          `json:"employee_name,omitempty"`
	Chantier     uint            `json:"chantier"`
	ChantierName string          `json:"chantier_name,omitempty"`
	Date         common.DateOnly `json:"date"`
	StartHour    string          `json:"start_hour"`
	EndHour      string          `json:"end_hour"`
	CoutPlanning decimal.Decimal `json:"cout_planning"`
}

// ChantierBudgetDTO is returned alongside every slot write so the UI
// can refresh the totals without a second request.
type ChantierBudgetDTO struct {
	Chantier                 uint             `json:"chantier"`
	NumberHourPlanned        decimal.Decimal  `json:"number_hour_planned"`
	NumberHourSpentOnProject decimal.Decimal  `json:"number_hour_spent_on_project"`
	CostSpentOnProject       decimal.Decimal  `json:"cost_spent_on_project"`
	VA                       decimal.Decimal  `json:"va"`
	VAPercent                *decimal.Decimal `json:"va_percent,omitempty"`
	VAStatus                 core.VAStatus    `json:"va_status"`
}

func toPlanningDTO(slot *model.Planning) PlanningDTO {
	dto := PlanningDTO{
		ID:           slot.ID,
		User:         slot.EmployeeID,
		Chantier:     slot.ChantierID,
		Date:         common.DateOnly{Time: slot.Date},
		StartHour:    slot.StartHour,
		EndHour:      slot.EndHour,
		CoutPlanning: slot.CoutPlanning,
	}
	if slot.Employee.EmployeeId != 0 {
		dto.EmployeeName = slot.Employee.FullName()
	}
	if slot.Chantier.ChantierId != 0 {
		dto.ChantierName = slot.Chantier.NameChantier
	}
	return dto
}

func toBudgetDTO(chantier *core.Chantier) ChantierBudgetDTO {
	dto := ChantierBudgetDTO{
		Chantier:                 chantier.ChantierId,
		NumberHourPlanned:        chantier.NumberHourPlanned,
		NumberHourSpentOnProject: chantier.NumberHourSpentOnProject,
		CostSpentOnProject:       chantier.CostSpentOnProject,
		VA:                       chantier.VA,
		VAStatus:                 core.ClassifyVA(chantier.DevisHT, chantier.VA),
	}
	if percent, ok := core.VAPercent(chantier.DevisHT, chantier.VA); ok {
		dto.VAPercent = &percent
	}
	return dto
}
