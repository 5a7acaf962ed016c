package core

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mybtp.com/mybtp/core"
	"mybtp.com/mybtp/planning/model"
	"mybtp.com/mybtp/utils"
)

var errSlotConflict = errors.New("planning slot conflict")

// SaveSlot is the slot write path: resolve references, validate,
// compute the cost, persist, then re-aggregate the affected chantiers.
// The overlap check is re-run inside the write transaction with a
// locking read on MySQL, so concurrent submissions for the same
// employee and date serialize on the locked range instead of both
// counting against the same snapshot; the unique index on
// (employee, date, start, end) backstops exact duplicates.
func SaveSlot(db *gorm.DB, cand SlotCandidate) (*model.Planning, core.ValidationErrors, error) {
	verrs := core.ValidationErrors{}

	emp, err := core.FindEmployeeByID(db, cand.EmployeeID)
	if err != nil {
		return nil, nil, err
	}
	if emp == nil {
		verrs.Add("user", "L'employé spécifié n'existe pas")
	}

	chantier, err := core.FindChantierByID(db, cand.ChantierID)
	if err != nil {
		return nil, nil, err
	}
	if chantier == nil {
		verrs.Add("chantier", "Le chantier spécifié n'existe pas")
	}

	var previousChantierID uint
	var slot model.Planning
	if cand.ID != nil {
		if err := db.First(&slot, *cand.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				verrs.Add("planning", "Le créneau spécifié n'existe pas")
				return nil, verrs, nil
			}
			return nil, nil, err
		}
		previousChantierID = slot.ChantierID
	}

	start, end, structural, err := ValidateSlot(db, cand)
	if err != nil {
		return nil, nil, err
	}
	for field, message := range structural {
		verrs.Add(field, message)
	}
	if verrs.HasErrors() {
		return nil, verrs, nil
	}

	hours := SlotHours(start, end)
	cost := ComputeCost(hours, emp.CoutH).Round(2)

	slot.EmployeeID = cand.EmployeeID
	slot.ChantierID = cand.ChantierID
	slot.Date = cand.Date
	slot.StartHour = utils.FormatClock(start)
	slot.EndHour = utils.FormatClock(end)
	slot.CoutPlanning = cost

	err = db.Transaction(func(tx *gorm.DB) error {
		// Under REPEATABLE READ a plain count reads the transaction
		// snapshot and misses rows committed by a concurrent writer;
		// FOR UPDATE locks the employee/date range instead. SQLite
		// has no FOR UPDATE and serializes writers on its own.
		locked := tx
		if tx.Dialector.Name() == "mysql" {
			locked = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		count, err := CountOverlapping(locked, cand)
		if err != nil {
			return err
		}
		if count > 0 {
			return errSlotConflict
		}
		return tx.Save(&slot).Error
	})
	if errors.Is(err, errSlotConflict) {
		verrs.Add(core.NonFieldKey, "Conflit de planning détecté pour cet employé à cette date et heure")
		return nil, verrs, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to save planning slot: %w", err)
	}

	if err := UpdateChantierAggregates(db, slot.ChantierID); err != nil {
		return nil, nil, err
	}
	// An update can move the slot to another chantier; the old one
	// must not keep the slot in its totals.
	if previousChantierID != 0 && previousChantierID != slot.ChantierID {
		if err := UpdateChantierAggregates(db, previousChantierID); err != nil {
			return nil, nil, err
		}
	}

	return &slot, nil, nil
}

// DeleteSlot removes a slot and re-aggregates its former chantier.
func DeleteSlot(db *gorm.DB, id uint) error {
	var slot model.Planning
	if err := db.First(&slot, id).Error; err != nil {
		return err
	}

	if err := db.Delete(&slot).Error; err != nil {
		return fmt.Errorf("failed to delete planning slot: %w", err)
	}

	return UpdateChantierAggregates(db, slot.ChantierID)
}
