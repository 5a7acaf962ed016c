package core

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mybtp.com/mybtp/core"
	"mybtp.com/mybtp/planning/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "mybtp.db")), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	tables := append(core.DirectoryModels(), &model.Planning{})
	require.NoError(t, db.AutoMigrate(tables...))
	return db
}

var employeeSeq int

func createEmployee(t *testing.T, db *gorm.DB, hourlyRate *decimal.Decimal) core.Employee {
	t.Helper()
	employeeSeq++
	emp := core.Employee{
		Email:     fmt.Sprintf("worker%d@mybtp.test", employeeSeq),
		FirstName: "Test",
		LastName:  fmt.Sprintf("Worker%d", employeeSeq),
		CoutH:     hourlyRate,
	}
	require.NoError(t, db.Create(&emp).Error)
	return emp
}

var chantierSeq int

func createChantier(t *testing.T, db *gorm.DB, devisHT decimal.Decimal) core.Chantier {
	t.Helper()
	chantierSeq++
	chantier := core.Chantier{
		NameChantier: fmt.Sprintf("CH-2026-9%03d", chantierSeq),
		DevisHT:      devisHT,
	}
	chantier.ComputeDerived()
	require.NoError(t, db.Create(&chantier).Error)
	return chantier
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rate(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func reloadChantier(t *testing.T, db *gorm.DB, id uint) core.Chantier {
	t.Helper()
	var chantier core.Chantier
	require.NoError(t, db.First(&chantier, id).Error)
	return chantier
}
