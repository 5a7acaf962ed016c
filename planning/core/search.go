package core

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"mybtp.com/mybtp/planning/model"
)

// SearchOptions narrows the calendar listing. Zero-length filter
// slices mean "all".
type SearchOptions struct {
	StartDate time.Time
	EndDate   time.Time
	Employees []uint
	Chantiers []uint
}

// SearchSlots is the read side of the calendar grid: slots in
// [StartDate, EndDate], optionally filtered, with their references
// preloaded. Outside the write path.
func SearchSlots(db *gorm.DB, opts SearchOptions, limit, offset int) ([]model.Planning, int64, error) {
	query := db.Model(&model.Planning{}).
		Where("date >= ? AND date <= ?", opts.StartDate, opts.EndDate)

	if len(opts.Employees) > 0 {
		query = query.Where("employee_id IN ?", opts.Employees)
	}
	if len(opts.Chantiers) > 0 {
		query = query.Where("chantier_id IN ?", opts.Chantiers)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count planning slots: %w", err)
	}

	var slots []model.Planning
	err := query.Preload("Employee").Preload("Chantier").
		Order("date, start_hour").
		Limit(limit).Offset(offset).
		Find(&slots).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search planning slots: %w", err)
	}
	return slots, total, nil
}

// SlotsForChantier lists a chantier's slots for the detail page.
func SlotsForChantier(db *gorm.DB, chantierID uint) ([]model.Planning, error) {
	var slots []model.Planning
	err := db.Where("chantier_id = ?", chantierID).
		Preload("Employee").
		Order("date, start_hour").
		Find(&slots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list slots of chantier %d: %w", chantierID, err)
	}
	return slots, nil
}
