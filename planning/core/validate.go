package core

import (
	"time"

	"gorm.io/gorm"

	"mybtp.com/mybtp/core"
	"mybtp.com/mybtp/planning/model"
	"mybtp.com/mybtp/utils"
)

// SlotCandidate is an unvalidated slot submission. ID is set on update
// so the slot does not conflict with itself.
type SlotCandidate struct {
	ID         *uint
	EmployeeID uint
	ChantierID uint
	Date       time.Time
	StartHour  string // "08:00" or "08:00:00"
	EndHour    string
}

// Slots snap to the quarter hour.
var allowedMinutes = map[int]bool{0: true, 15: true, 30: true, 45: true}

// ValidateSlot runs the structural checks in order, accumulating every
// violation: minute granularity, ordering, then the double-booking
// query (a half-open interval overlap against the employee's other
// slots on the same date). It is a pure check, nothing is persisted.
//
// The returned times are the candidate's bounds resolved on its date;
// they are only meaningful when the error map is empty.
func ValidateSlot(db *gorm.DB, cand SlotCandidate) (start, end time.Time, verrs core.ValidationErrors, err error) {
	verrs = core.ValidationErrors{}

	start, parseErr := utils.ParseClock(cand.Date, cand.StartHour)
	if parseErr != nil {
		verrs.Add("start_hour", "L'heure de début est invalide")
	}
	end, parseErr = utils.ParseClock(cand.Date, cand.EndHour)
	if parseErr != nil {
		verrs.Add("end_hour", "L'heure de fin est invalide")
	}
	if verrs.HasErrors() {
		return start, end, verrs, nil
	}

	if !allowedMinutes[start.Minute()] {
		verrs.Add("start_hour", "L'heure de début doit être un multiple de 15 minutes (00, 15, 30, 45)")
	}
	if !allowedMinutes[end.Minute()] {
		verrs.Add("end_hour", "L'heure de fin doit être un multiple de 15 minutes (00, 15, 30, 45)")
	}

	if !end.After(start) {
		verrs.Add("end_hour", "L'heure de fin doit être postérieure à l'heure de début")
	}

	// Only run the conflict query for an otherwise well-formed range.
	if !verrs.HasErrors() {
		count, qErr := CountOverlapping(db, cand)
		if qErr != nil {
			return start, end, nil, qErr
		}
		if count > 0 {
			verrs.Add(core.NonFieldKey, "Conflit de planning détecté pour cet employé à cette date et heure")
		}
	}

	return start, end, verrs, nil
}

// CountOverlapping counts the employee's other slots on the candidate
// date satisfying existing.start < cand.end AND existing.end >
// cand.start. Callers that persist must re-run this inside their
// transaction; the check alone is not atomic across writers.
func CountOverlapping(db *gorm.DB, cand SlotCandidate) (int64, error) {
	start, err := utils.ParseClock(cand.Date, cand.StartHour)
	if err != nil {
		return 0, err
	}
	end, err := utils.ParseClock(cand.Date, cand.EndHour)
	if err != nil {
		return 0, err
	}

	query := db.Model(&model.Planning{}).
		Where("employee_id = ? AND date = ?", cand.EmployeeID, cand.Date).
		Where("start_hour < ? AND end_hour > ?", utils.FormatClock(end), utils.FormatClock(start))
	if cand.ID != nil {
		query = query.Where("id <> ?", *cand.ID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
