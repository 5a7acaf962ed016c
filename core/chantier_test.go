package core

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mybtp.com/mybtp/utils"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "mybtp.db")), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(DirectoryModels()...))
	return db
}

func TestComputePlannedHours(t *testing.T) {
	tests := []struct {
		name     string
		devisHT  string
		expected string
	}{
		{"One quote unit", "1500.00", "24"},
		{"Two quote units", "3000.00", "48"},
		{"Zero quote", "0", "0"},
		{"Fractional unit", "1000.00", "16"},
		{"Large quote", "10000.00", "160"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePlannedHours(dec(tt.devisHT))
			assert.True(t, got.Equal(dec(tt.expected)), "got %s, want %s", got, tt.expected)
		})
	}
}

func TestVAAndClassification(t *testing.T) {
	t.Run("Margin at threshold is good", func(t *testing.T) {
		va := ComputeVA(dec("10000.00"), dec("4500.00"))
		assert.True(t, va.Equal(dec("5500.00")))

		percent, ok := VAPercent(dec("10000.00"), va)
		require.True(t, ok)
		assert.True(t, percent.Equal(dec("55")), "percent %s", percent)
		assert.Equal(t, VAStatusGood, ClassifyVA(dec("10000.00"), va))
	})

	t.Run("Margin below threshold is bad", func(t *testing.T) {
		va := ComputeVA(dec("10000.00"), dec("5000.00"))
		assert.True(t, va.Equal(dec("5000.00")))
		assert.Equal(t, VAStatusBad, ClassifyVA(dec("10000.00"), va))
	})

	t.Run("Zero quote is unknown", func(t *testing.T) {
		va := ComputeVA(dec("0"), dec("120.00"))
		assert.True(t, va.Equal(dec("-120.00")))

		_, ok := VAPercent(dec("0"), va)
		assert.False(t, ok)
		assert.Equal(t, VAStatusUnknown, ClassifyVA(dec("0"), va))
	})

	t.Run("Overspent margin is negative and bad", func(t *testing.T) {
		va := ComputeVA(dec("1000.00"), dec("1200.00"))
		assert.True(t, va.Equal(dec("-200.00")))
		assert.Equal(t, VAStatusBad, ClassifyVA(dec("1000.00"), va))
	})
}

func TestComputeDerivedDayCount(t *testing.T) {
	start := utils.MustParseDate("2026-03-02")
	end := utils.MustParseDate("2026-03-06")

	c := Chantier{DevisHT: dec("1500.00"), DateDebutChantier: &start, DateFinPrevueChantier: &end}
	c.ComputeDerived()
	assert.EqualValues(t, 5, c.NombreDeJoursChantier)
	assert.True(t, c.NumberHourPlanned.Equal(dec("24")))

	c.DateFinPrevueChantier = nil
	c.ComputeDerived()
	assert.EqualValues(t, 0, c.NombreDeJoursChantier)
}

func TestGenerateNameChantier(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	name, err := GenerateNameChantier(db, now)
	require.NoError(t, err)
	assert.Equal(t, "CH-2026-0001", name)

	require.NoError(t, db.Create(&Chantier{NameChantier: "CH-2026-0041"}).Error)
	require.NoError(t, db.Create(&Chantier{NameChantier: "CH-2025-0999"}).Error)

	name, err = GenerateNameChantier(db, now)
	require.NoError(t, err)
	assert.Equal(t, "CH-2026-0042", name)
}

func TestSaveChantierPipeline(t *testing.T) {
	db := newTestDB(t)

	c := Chantier{DevisHT: dec("3000.00")}
	verrs, err := SaveChantier(db, &c)
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())

	assert.NotEmpty(t, c.NameChantier)
	assert.True(t, c.NumberHourPlanned.Equal(dec("48.00")))
	assert.True(t, c.VA.Equal(dec("3000.00")))

	t.Run("Negative quote rejected", func(t *testing.T) {
		bad := Chantier{DevisHT: dec("-1")}
		verrs, err := SaveChantier(db, &bad)
		require.NoError(t, err)
		assert.Contains(t, verrs, "devis_ht")
	})

	t.Run("Date order rejected", func(t *testing.T) {
		start := utils.MustParseDate("2026-03-06")
		end := utils.MustParseDate("2026-03-02")
		bad := Chantier{DateDebutChantier: &start, DateFinPrevueChantier: &end}
		verrs, err := SaveChantier(db, &bad)
		require.NoError(t, err)
		assert.Contains(t, verrs, "date_fin_prevue_chantier")
	})

	t.Run("Chef must be a team lead", func(t *testing.T) {
		worker := Employee{Email: "worker@mybtp.test", UserType: UserTypeEmploye}
		require.NoError(t, db.Create(&worker).Error)

		bad := Chantier{ChefChantierId: &worker.EmployeeId}
		verrs, err := SaveChantier(db, &bad)
		require.NoError(t, err)
		assert.Contains(t, verrs, "chef_chantier")
	})
}
