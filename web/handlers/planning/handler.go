package planning

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mybtp.com/mybtp/core"
	planningcore "mybtp.com/mybtp/planning/core"
	"mybtp.com/mybtp/web/common"
)

type Endpoint struct {
	base common.Handler
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}}
	r.POST("/plannings", endpoint.Create)
	r.PUT("/plannings/:id", endpoint.Update)
	r.DELETE("/plannings/:id", endpoint.Delete)
	r.POST("/plannings/search", endpoint.Search)
	r.GET("/chantiers/:id/plannings", endpoint.ListForChantier)
}

func (ep *Endpoint) Create(c *gin.Context) {
	ep.save(c, nil)
}

func (ep *Endpoint) Update(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.Atoi(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return
	}
	slotID := uint(id)
	ep.save(c, &slotID)
}

func (ep *Endpoint) save(c *gin.Context, slotID *uint) {
	var dto PlanningSaveDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	db := ep.base.GetDB(c)

	slot, verrs, err := planningcore.SaveSlot(db, planningcore.SlotCandidate{
		ID:         slotID,
		EmployeeID: dto.User,
		ChantierID: dto.Chantier,
		Date:       dto.Date.Time,
		StartHour:  dto.StartHour,
		EndHour:    dto.EndHour,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	if verrs.HasErrors() {
		c.JSON(http.StatusBadRequest, common.NewValidationResponse(verrs))
		return
	}

	chantier, err := core.FindChantierByID(db, slot.ChantierID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	status := http.StatusOK
	if slotID == nil {
		status = http.StatusCreated
	}

	response := gin.H{"planning": toPlanningDTO(slot)}
	if chantier != nil {
		response["chantier"] = toBudgetDTO(chantier)
	}
	c.JSON(status, common.NewSuccessResponse(response))
}

func (ep *Endpoint) Delete(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.Atoi(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return
	}

	db := ep.base.GetDB(c)
	if err := planningcore.DeleteSlot(db, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Planning slot not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}

func (ep *Endpoint) ListForChantier(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.Atoi(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return
	}

	db := ep.base.GetDB(c)
	slots, err := planningcore.SlotsForChantier(db, uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	dtos := make([]PlanningDTO, len(slots))
	for i := range slots {
		dtos[i] = toPlanningDTO(&slots[i])
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(dtos))
}
