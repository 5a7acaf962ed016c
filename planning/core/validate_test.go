package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mybtp.com/mybtp/core"
	"mybtp.com/mybtp/utils"
)

func TestValidateSlotStructural(t *testing.T) {
	db := newTestDB(t)
	emp := createEmployee(t, db, rate("20.00"))
	chantier := createChantier(t, db, dec("3000"))
	date := utils.MustParseDate("2026-03-02")

	tests := []struct {
		name       string
		start, end string
		wantFields []string
	}{
		{
			name:  "Valid quarter hours",
			start: "08:00", end: "12:15",
			wantFields: nil,
		},
		{
			name:  "Start off grid",
			start: "08:10", end: "12:00",
			wantFields: []string{"start_hour"},
		},
		{
			name:  "End off grid",
			start: "08:00", end: "12:05",
			wantFields: []string{"end_hour"},
		},
		{
			name:  "End before start",
			start: "14:00", end: "12:00",
			wantFields: []string{"end_hour"},
		},
		{
			name:  "Zero duration",
			start: "09:00", end: "09:00",
			wantFields: []string{"end_hour"},
		},
		{
			name:  "Both off grid reported together",
			start: "08:01", end: "12:59",
			wantFields: []string{"start_hour", "end_hour"},
		},
		{
			name:  "Unparsable start",
			start: "huit heures", end: "12:00",
			wantFields: []string{"start_hour"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, verrs, err := ValidateSlot(db, SlotCandidate{
				EmployeeID: emp.EmployeeId,
				ChantierID: chantier.ChantierId,
				Date:       date,
				StartHour:  tt.start,
				EndHour:    tt.end,
			})
			require.NoError(t, err)
			assert.Len(t, verrs, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Contains(t, verrs, field)
			}
		})
	}
}

func TestValidateSlotOverlap(t *testing.T) {
	db := newTestDB(t)
	emp := createEmployee(t, db, rate("20.00"))
	other := createEmployee(t, db, rate("20.00"))
	chantier := createChantier(t, db, dec("3000"))
	date := utils.MustParseDate("2026-03-02")

	existing, verrs, err := SaveSlot(db, SlotCandidate{
		EmployeeID: emp.EmployeeId,
		ChantierID: chantier.ChantierId,
		Date:       date,
		StartHour:  "08:00",
		EndHour:    "12:00",
	})
	require.NoError(t, err)
	require.False(t, verrs.HasErrors(), "fixture slot rejected: %v", verrs)

	check := func(t *testing.T, cand SlotCandidate) core.ValidationErrors {
		t.Helper()
		_, _, got, err := ValidateSlot(db, cand)
		require.NoError(t, err)
		return got
	}

	t.Run("Contained range conflicts", func(t *testing.T) {
		verrs := check(t, SlotCandidate{EmployeeID: emp.EmployeeId, ChantierID: chantier.ChantierId,
			Date: date, StartHour: "09:00", EndHour: "10:00"})
		assert.Contains(t, verrs, core.NonFieldKey)
	})

	t.Run("Straddling range conflicts", func(t *testing.T) {
		verrs := check(t, SlotCandidate{EmployeeID: emp.EmployeeId, ChantierID: chantier.ChantierId,
			Date: date, StartHour: "11:00", EndHour: "14:00"})
		assert.Contains(t, verrs, core.NonFieldKey)
	})

	t.Run("Touching boundary does not conflict", func(t *testing.T) {
		verrs := check(t, SlotCandidate{EmployeeID: emp.EmployeeId, ChantierID: chantier.ChantierId,
			Date: date, StartHour: "12:00", EndHour: "14:00"})
		assert.Empty(t, verrs)
	})

	t.Run("Other employee same range is free", func(t *testing.T) {
		verrs := check(t, SlotCandidate{EmployeeID: other.EmployeeId, ChantierID: chantier.ChantierId,
			Date: date, StartHour: "09:00", EndHour: "10:00"})
		assert.Empty(t, verrs)
	})

	t.Run("Other date same range is free", func(t *testing.T) {
		verrs := check(t, SlotCandidate{EmployeeID: emp.EmployeeId, ChantierID: chantier.ChantierId,
			Date: utils.MustParseDate("2026-03-03"), StartHour: "09:00", EndHour: "10:00"})
		assert.Empty(t, verrs)
	})

	t.Run("Update excludes its own row", func(t *testing.T) {
		verrs := check(t, SlotCandidate{ID: &existing.ID, EmployeeID: emp.EmployeeId,
			ChantierID: chantier.ChantierId, Date: date, StartHour: "08:00", EndHour: "13:00"})
		assert.Empty(t, verrs)
	})
}
