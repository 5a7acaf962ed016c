package chantier

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"mybtp.com/mybtp/core"
	"mybtp.com/mybtp/utils"
	"mybtp.com/mybtp/web/common"
)

var exportHeaders = []string{
	"Nom", "Contact", "CP / Ville", "Avancement (%)", "Chef de chantier",
	"Devis HT", "Heures prévues", "Heures passées", "Coût passé", "VA", "VA (%)", "Statut",
}

// BuildChantierReport renders the budget overview workbook.
func BuildChantierReport(chantiers []core.Chantier) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Chantiers"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, chantier := range chantiers {
		chef := ""
		if chantier.ChefChantier != nil {
			chef = chantier.ChefChantier.FullName()
		}
		percent := ""
		if p, ok := core.VAPercent(chantier.DevisHT, chantier.VA); ok {
			percent = p.String()
		}
		values := []interface{}{
			chantier.NameChantier,
			chantier.Contact,
			chantier.CpVilleChantier,
			chantier.AvancementChantier,
			chef,
			chantier.DevisHT.String(),
			chantier.NumberHourPlanned.String(),
			chantier.NumberHourSpentOnProject.String(),
			chantier.CostSpentOnProject.String(),
			chantier.VA.String(),
			percent,
			string(core.ClassifyVA(chantier.DevisHT, chantier.VA)),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

func (ep *Endpoint) Export(c *gin.Context) {
	db := ep.base.GetDB(c)

	var chantiers []core.Chantier
	if err := db.Preload("ChefChantier").Order("name_chantier").Find(&chantiers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	f, err := BuildChantierReport(chantiers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	filename := fmt.Sprintf("chantiers-%s.xlsx", utils.ParisNow().Format(time.DateOnly))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
}
