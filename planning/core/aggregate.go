package core

import (
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mybtp.com/mybtp/core"
	"mybtp.com/mybtp/planning/model"
	"mybtp.com/mybtp/utils"
)

// OnRecoverableError, when set, receives the failures the aggregation
// paths swallow (they log and continue). The server points it at the
// Slack error channel.
var OnRecoverableError func(message string)

func reportRecoverable(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	log.Print(message)
	if OnRecoverableError != nil {
		OnRecoverableError(message)
	}
}

// UpdateChantierAggregates recomputes a chantier's spent hours and
// spent cost from the live set of its slots, then refreshes the
// derived budget fields. The write goes straight to the columns, not
// through the chantier save pipeline. A chantier that vanished between
// the slot event and this run is a logged no-op, not an error.
func UpdateChantierAggregates(db *gorm.DB, chantierID uint) error {
	var slots []model.Planning
	if err := db.Where("chantier_id = ?", chantierID).Find(&slots).Error; err != nil {
		return fmt.Errorf("failed to load slots of chantier %d: %w", chantierID, err)
	}

	totalHours := decimal.Zero
	totalCost := decimal.Zero
	for _, slot := range slots {
		start, err := utils.ParseClock(slot.Date, slot.StartHour)
		if err != nil {
			log.Printf("aggregation: skipping slot %d of chantier %d: %v", slot.ID, chantierID, err)
			continue
		}
		end, err := utils.ParseClock(slot.Date, slot.EndHour)
		if err != nil {
			log.Printf("aggregation: skipping slot %d of chantier %d: %v", slot.ID, chantierID, err)
			continue
		}
		totalHours = totalHours.Add(SlotHours(start, end))
		totalCost = totalCost.Add(slot.CoutPlanning)
	}

	chantier, err := core.FindChantierByID(db, chantierID)
	if err != nil {
		return err
	}
	if chantier == nil {
		log.Printf("aggregation skipped: chantier %d no longer exists", chantierID)
		return nil
	}

	chantier.NumberHourSpentOnProject = totalHours.Round(2)
	chantier.CostSpentOnProject = totalCost.Round(2)
	chantier.ComputeDerived()

	err = db.Model(&core.Chantier{}).
		Where("chantier_id = ?", chantierID).
		Updates(map[string]interface{}{
			"number_hour_spent_on_project": chantier.NumberHourSpentOnProject,
			"cost_spent_on_project":        chantier.CostSpentOnProject,
			"number_hour_planned":          chantier.NumberHourPlanned,
			"va":                           chantier.VA,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to write aggregates of chantier %d: %w", chantierID, err)
	}
	return nil
}

// RecomputeEmployeeSlots re-prices every slot of an employee after a
// rate change, then re-aggregates each touched chantier. The fan-out is
// best-effort and has no rollback: one failing slot or chantier is
// logged and the rest still recompute.
func RecomputeEmployeeSlots(db *gorm.DB, employeeID uint) error {
	emp, err := core.FindEmployeeByID(db, employeeID)
	if err != nil {
		return err
	}
	if emp == nil {
		return gorm.ErrRecordNotFound
	}

	var slots []model.Planning
	if err := db.Where("employee_id = ?", employeeID).Find(&slots).Error; err != nil {
		return fmt.Errorf("failed to load slots of employee %d: %w", employeeID, err)
	}

	var chantierIDs []uint
	for _, slot := range slots {
		chantierIDs = append(chantierIDs, slot.ChantierID)

		start, err := utils.ParseClock(slot.Date, slot.StartHour)
		if err != nil {
			log.Printf("rate cascade: skipping slot %d: %v", slot.ID, err)
			continue
		}
		end, err := utils.ParseClock(slot.Date, slot.EndHour)
		if err != nil {
			log.Printf("rate cascade: skipping slot %d: %v", slot.ID, err)
			continue
		}

		cost := ComputeCost(SlotHours(start, end), emp.CoutH).Round(2)
		if cost.Equal(slot.CoutPlanning) {
			continue
		}
		if err := db.Model(&model.Planning{}).Where("id = ?", slot.ID).
			Update("cout_planning", cost).Error; err != nil {
			reportRecoverable("rate cascade: failed to reprice slot %d: %v", slot.ID, err)
		}
	}

	for _, chantierID := range utils.Uniq(chantierIDs) {
		if err := UpdateChantierAggregates(db, chantierID); err != nil {
			reportRecoverable("rate cascade: failed to re-aggregate chantier %d: %v", chantierID, err)
		}
	}
	return nil
}

// UpdateEmployeeHourlyRate persists a new hourly rate and cascades the
// recomputation over the employee's slots and their chantiers.
func UpdateEmployeeHourlyRate(db *gorm.DB, employeeID uint, rate *decimal.Decimal) error {
	emp, err := core.FindEmployeeByID(db, employeeID)
	if err != nil {
		return err
	}
	if emp == nil {
		return gorm.ErrRecordNotFound
	}

	if err := db.Model(&core.Employee{}).Where("employee_id = ?", employeeID).
		Update("cout_h", rate).Error; err != nil {
		return fmt.Errorf("failed to update rate of employee %d: %w", employeeID, err)
	}

	if err := RecomputeEmployeeSlots(db, employeeID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}
