package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mybtp.com/mybtp/core"
	"mybtp.com/mybtp/planning/model"
	"mybtp.com/mybtp/utils"
)

func TestSaveSlotEndToEnd(t *testing.T) {
	db := newTestDB(t)
	emp := createEmployee(t, db, rate("15.00"))

	chantier := core.Chantier{DevisHT: dec("3000.00")}
	verrs, err := core.SaveChantier(db, &chantier)
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())

	assert.True(t, chantier.NumberHourPlanned.Equal(dec("48.00")), "planned hours %s", chantier.NumberHourPlanned)
	assert.True(t, chantier.VA.Equal(dec("3000.00")), "va %s", chantier.VA)

	slot, verrs, err := SaveSlot(db, SlotCandidate{
		EmployeeID: emp.EmployeeId,
		ChantierID: chantier.ChantierId,
		Date:       utils.MustParseDate("2026-03-02"),
		StartHour:  "08:00",
		EndHour:    "17:00",
	})
	require.NoError(t, err)
	require.False(t, verrs.HasErrors(), "slot rejected: %v", verrs)
	assert.True(t, slot.CoutPlanning.Equal(dec("120.00")), "slot cost %s", slot.CoutPlanning)

	reloaded := reloadChantier(t, db, chantier.ChantierId)
	assert.True(t, reloaded.NumberHourSpentOnProject.Equal(dec("8.00")), "spent hours %s", reloaded.NumberHourSpentOnProject)
	assert.True(t, reloaded.CostSpentOnProject.Equal(dec("120.00")), "spent cost %s", reloaded.CostSpentOnProject)
	assert.True(t, reloaded.VA.Equal(dec("2880.00")), "va %s", reloaded.VA)
}

func TestSaveSlotMissingReferences(t *testing.T) {
	db := newTestDB(t)

	_, verrs, err := SaveSlot(db, SlotCandidate{
		EmployeeID: 999,
		ChantierID: 998,
		Date:       utils.MustParseDate("2026-03-02"),
		StartHour:  "08:00",
		EndHour:    "12:00",
	})
	require.NoError(t, err)
	assert.Contains(t, verrs, "user")
	assert.Contains(t, verrs, "chantier")

	var count int64
	require.NoError(t, db.Model(&model.Planning{}).Count(&count).Error)
	assert.Zero(t, count, "nothing may persist on validation failure")
}

func TestSaveSlotConflictPersistsNothing(t *testing.T) {
	db := newTestDB(t)
	emp := createEmployee(t, db, rate("20.00"))
	chantier := createChantier(t, db, dec("3000"))
	date := utils.MustParseDate("2026-03-02")

	_, verrs, err := SaveSlot(db, SlotCandidate{EmployeeID: emp.EmployeeId, ChantierID: chantier.ChantierId,
		Date: date, StartHour: "08:00", EndHour: "12:00"})
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())

	_, verrs, err = SaveSlot(db, SlotCandidate{EmployeeID: emp.EmployeeId, ChantierID: chantier.ChantierId,
		Date: date, StartHour: "10:00", EndHour: "14:00"})
	require.NoError(t, err)
	assert.Contains(t, verrs, core.NonFieldKey)

	var count int64
	require.NoError(t, db.Model(&model.Planning{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSaveSlotUpdateMovesChantier(t *testing.T) {
	db := newTestDB(t)
	emp := createEmployee(t, db, rate("20.00"))
	first := createChantier(t, db, dec("3000"))
	second := createChantier(t, db, dec("5000"))

	slot, verrs, err := SaveSlot(db, SlotCandidate{EmployeeID: emp.EmployeeId, ChantierID: first.ChantierId,
		Date: utils.MustParseDate("2026-03-02"), StartHour: "08:00", EndHour: "12:00"})
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())

	_, verrs, err = SaveSlot(db, SlotCandidate{ID: &slot.ID, EmployeeID: emp.EmployeeId, ChantierID: second.ChantierId,
		Date: utils.MustParseDate("2026-03-02"), StartHour: "08:00", EndHour: "12:00"})
	require.NoError(t, err)
	require.False(t, verrs.HasErrors(), "update rejected: %v", verrs)

	former := reloadChantier(t, db, first.ChantierId)
	assert.True(t, former.CostSpentOnProject.IsZero(), "former chantier keeps stale cost %s", former.CostSpentOnProject)
	assert.True(t, former.NumberHourSpentOnProject.IsZero())

	target := reloadChantier(t, db, second.ChantierId)
	assert.True(t, target.CostSpentOnProject.Equal(dec("80.00")), "target cost %s", target.CostSpentOnProject)
	assert.True(t, target.NumberHourSpentOnProject.Equal(dec("4.00")))
}

func TestDeleteSlotReaggregates(t *testing.T) {
	db := newTestDB(t)
	emp := createEmployee(t, db, rate("20.00"))
	chantier := createChantier(t, db, dec("3000"))

	slot, verrs, err := SaveSlot(db, SlotCandidate{EmployeeID: emp.EmployeeId, ChantierID: chantier.ChantierId,
		Date: utils.MustParseDate("2026-03-02"), StartHour: "08:00", EndHour: "12:00"})
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())
	require.False(t, reloadChantier(t, db, chantier.ChantierId).CostSpentOnProject.IsZero())

	require.NoError(t, DeleteSlot(db, slot.ID))

	reloaded := reloadChantier(t, db, chantier.ChantierId)
	assert.True(t, reloaded.CostSpentOnProject.IsZero())
	assert.True(t, reloaded.NumberHourSpentOnProject.IsZero())
	assert.True(t, reloaded.VA.Equal(dec("3000")), "va %s", reloaded.VA)
}
