package chantier

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mybtp.com/mybtp/core"
)

func TestBuildChantierReport(t *testing.T) {
	chantiers := []core.Chantier{
		{
			NameChantier:             "CH-2026-0001",
			Contact:                  "Mme Dupont",
			CpVilleChantier:          "75011",
			AvancementChantier:       40,
			DevisHT:                  decimal.NewFromInt(3000),
			NumberHourPlanned:        decimal.NewFromInt(48),
			NumberHourSpentOnProject: decimal.NewFromInt(8),
			CostSpentOnProject:       decimal.NewFromInt(120),
			VA:                       decimal.NewFromInt(2880),
			ChefChantier: &core.Employee{
				FirstName: "Marc",
				LastName:  "Leroy",
			},
		},
		{
			NameChantier: "CH-2026-0002",
			// devis 0: percent blank, statut unknown
		},
	}

	f, err := BuildChantierReport(chantiers)
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue("Chantiers", cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Nom", get("A1"))
	assert.Equal(t, "Statut", get("L1"))

	assert.Equal(t, "CH-2026-0001", get("A2"))
	assert.Equal(t, "Marc Leroy", get("E2"))
	assert.Equal(t, "3000", get("F2"))
	assert.Equal(t, "48", get("G2"))
	assert.Equal(t, "2880", get("J2"))
	assert.Equal(t, "96", get("K2"))
	assert.Equal(t, "good", get("L2"))

	assert.Equal(t, "CH-2026-0002", get("A3"))
	assert.Equal(t, "", get("K3"))
	assert.Equal(t, "unknown", get("L3"))
}
