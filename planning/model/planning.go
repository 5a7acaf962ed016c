package model

import (
	"time"

	"github.com/shopspring/decimal"

	"mybtp.com/mybtp/core"
)

// Planning assigns one employee to one chantier for a time range on a
// date. StartHour/EndHour are "HH:MM:SS" strings, the shape a MySQL
// TIME column stores; string comparison orders them chronologically, so
// the overlap test runs directly in SQL.
//
// The composite unique index rejects exact-duplicate slots even when
// two writers race past the overlap check.
type Planning struct {
	ID           uint      `gorm:"primaryKey;column:id"`
	EmployeeID   uint      `gorm:"column:employee_id;not null;index:idx_employee_date;uniqueIndex:uniq_employee_slot"`
	ChantierID   uint      `gorm:"column:chantier_id;not null;index:idx_chantier_date"`
	Date         time.Time `gorm:"column:date;type:date;index:idx_employee_date;index:idx_chantier_date;uniqueIndex:uniq_employee_slot"`
	StartHour    string    `gorm:"column:start_hour;type:time;not null;uniqueIndex:uniq_employee_slot"`
	EndHour      string    `gorm:"column:end_hour;type:time;not null;uniqueIndex:uniq_employee_slot"`
	CoutPlanning decimal.Decimal `gorm:"column:cout_planning;type:decimal(10,2);default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Employee core.Employee `gorm:"foreignKey:EmployeeID;references:EmployeeId"`
	Chantier core.Chantier `gorm:"foreignKey:ChantierID;references:ChantierId"`
}

func (Planning) TableName() string {
	return "planning"
}
