package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mybtp.com/mybtp/core"
	"mybtp.com/mybtp/planning/model"
	"mybtp.com/mybtp/utils"
)

func TestUpdateChantierAggregatesIdempotent(t *testing.T) {
	db := newTestDB(t)
	emp := createEmployee(t, db, rate("25.00"))
	chantier := createChantier(t, db, dec("10000"))

	for _, span := range [][2]string{{"08:00", "12:00"}, {"13:00", "17:00"}} {
		_, verrs, err := SaveSlot(db, SlotCandidate{EmployeeID: emp.EmployeeId, ChantierID: chantier.ChantierId,
			Date: utils.MustParseDate("2026-03-02"), StartHour: span[0], EndHour: span[1]})
		require.NoError(t, err)
		require.False(t, verrs.HasErrors())
	}

	first := reloadChantier(t, db, chantier.ChantierId)
	require.NoError(t, UpdateChantierAggregates(db, chantier.ChantierId))
	second := reloadChantier(t, db, chantier.ChantierId)

	assert.True(t, first.NumberHourSpentOnProject.Equal(second.NumberHourSpentOnProject))
	assert.True(t, first.CostSpentOnProject.Equal(second.CostSpentOnProject))
	assert.True(t, first.VA.Equal(second.VA))
	assert.True(t, second.NumberHourSpentOnProject.Equal(dec("8.00")))
	assert.True(t, second.CostSpentOnProject.Equal(dec("200.00")))
}

func TestUpdateChantierAggregatesVanishedChantier(t *testing.T) {
	db := newTestDB(t)
	// Nothing stored under this id: the run is a no-op, not an error.
	require.NoError(t, UpdateChantierAggregates(db, 4242))
}

func TestRateChangeCascade(t *testing.T) {
	db := newTestDB(t)
	emp := createEmployee(t, db, rate("20.00"))
	first := createChantier(t, db, dec("10000"))
	second := createChantier(t, db, dec("8000"))

	_, verrs, err := SaveSlot(db, SlotCandidate{EmployeeID: emp.EmployeeId, ChantierID: first.ChantierId,
		Date: utils.MustParseDate("2026-03-02"), StartHour: "08:00", EndHour: "12:00"}) // 4h
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())
	_, verrs, err = SaveSlot(db, SlotCandidate{EmployeeID: emp.EmployeeId, ChantierID: second.ChantierId,
		Date: utils.MustParseDate("2026-03-03"), StartHour: "08:00", EndHour: "17:00"}) // full day, 8h
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())

	require.NoError(t, UpdateEmployeeHourlyRate(db, emp.EmployeeId, rate("30.00")))

	var slots []model.Planning
	require.NoError(t, db.Order("date").Find(&slots).Error)
	require.Len(t, slots, 2)
	assert.True(t, slots[0].CoutPlanning.Equal(dec("120.00")), "4h slot %s", slots[0].CoutPlanning)
	assert.True(t, slots[1].CoutPlanning.Equal(dec("240.00")), "full-day slot %s", slots[1].CoutPlanning)

	reloadedFirst := reloadChantier(t, db, first.ChantierId)
	assert.True(t, reloadedFirst.CostSpentOnProject.Equal(dec("120.00")))
	assert.True(t, reloadedFirst.VA.Equal(dec("9880.00")), "va %s", reloadedFirst.VA)

	reloadedSecond := reloadChantier(t, db, second.ChantierId)
	assert.True(t, reloadedSecond.CostSpentOnProject.Equal(dec("240.00")))
	assert.True(t, reloadedSecond.VA.Equal(dec("7760.00")), "va %s", reloadedSecond.VA)
}

func TestRateClearedZeroesCosts(t *testing.T) {
	db := newTestDB(t)
	emp := createEmployee(t, db, rate("20.00"))
	chantier := createChantier(t, db, dec("3000"))

	_, verrs, err := SaveSlot(db, SlotCandidate{EmployeeID: emp.EmployeeId, ChantierID: chantier.ChantierId,
		Date: utils.MustParseDate("2026-03-02"), StartHour: "08:00", EndHour: "12:00"})
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())

	require.NoError(t, UpdateEmployeeHourlyRate(db, emp.EmployeeId, nil))

	var slot model.Planning
	require.NoError(t, db.First(&slot).Error)
	assert.True(t, slot.CoutPlanning.IsZero(), "cost %s", slot.CoutPlanning)

	reloaded := reloadChantier(t, db, chantier.ChantierId)
	assert.True(t, reloaded.CostSpentOnProject.IsZero())
	// Hours are rate-independent and stay.
	assert.True(t, reloaded.NumberHourSpentOnProject.Equal(dec("4.00")))
}

func TestRateChangeUnknownEmployee(t *testing.T) {
	db := newTestDB(t)
	err := UpdateEmployeeHourlyRate(db, 777, rate("10.00"))
	assert.Error(t, err)
}

func TestAggregatesSurviveChantierResave(t *testing.T) {
	db := newTestDB(t)
	emp := createEmployee(t, db, rate("20.00"))

	chantier := core.Chantier{DevisHT: dec("3000.00")}
	verrs, err := core.SaveChantier(db, &chantier)
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())

	_, verrs, err = SaveSlot(db, SlotCandidate{EmployeeID: emp.EmployeeId, ChantierID: chantier.ChantierId,
		Date: utils.MustParseDate("2026-03-02"), StartHour: "08:00", EndHour: "12:00"})
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())

	// A later save with a new quote keeps the spent figures and
	// refreshes va against them.
	update := reloadChantier(t, db, chantier.ChantierId)
	update.DevisHT = dec("5000.00")
	update.CostSpentOnProject = dec("0.01") // callers cannot smuggle this in
	update.NumberHourSpentOnProject = dec("99")
	verrs, err = core.SaveChantier(db, &update)
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())

	reloaded := reloadChantier(t, db, chantier.ChantierId)
	assert.True(t, reloaded.CostSpentOnProject.Equal(dec("80.00")), "spent cost %s", reloaded.CostSpentOnProject)
	assert.True(t, reloaded.NumberHourSpentOnProject.Equal(dec("4.00")))
	assert.True(t, reloaded.VA.Equal(dec("4920.00")), "va %s", reloaded.VA)
	assert.True(t, reloaded.NumberHourPlanned.Equal(dec("80.00")))
}
