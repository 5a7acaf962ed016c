package planning

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	planningcore "mybtp.com/mybtp/planning/core"
	"mybtp.com/mybtp/web/common"
)

type SearchParams struct {
	StartDate *common.DateOnly `json:"startDate" binding:"required"`
	EndDate   *common.DateOnly `json:"endDate" binding:"required"`
	Employees []uint           `json:"employees"`
	Chantiers []uint           `json:"chantiers"`
}

// Search feeds the calendar grid: slots in a date range, optionally
// narrowed by employee or chantier.
func (ep *Endpoint) Search(c *gin.Context) {
	var searchParams SearchParams
	if err := c.ShouldBindJSON(&searchParams); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	limit := 1000
	offset := 0
	if val, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = val
	}
	if val, err := strconv.Atoi(c.Query("offset")); err == nil {
		offset = val
	}

	db := ep.base.GetDB(c)
	slots, total, err := planningcore.SearchSlots(db, planningcore.SearchOptions{
		StartDate: searchParams.StartDate.Time,
		EndDate:   searchParams.EndDate.Time,
		Employees: searchParams.Employees,
		Chantiers: searchParams.Chantiers,
	}, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	dtos := make([]PlanningDTO, len(slots))
	for i := range slots {
		dtos[i] = toPlanningDTO(&slots[i])
	}
	c.JSON(http.StatusOK, common.NewSearchResponse(dtos, total))
}
