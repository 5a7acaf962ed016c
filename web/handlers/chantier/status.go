package chantier

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mybtp.com/mybtp/core"
	"mybtp.com/mybtp/utils"
	"mybtp.com/mybtp/web/common"
)

type StatusEntrySaveDTO struct {
	Statut   string `json:"statut" binding:"required"`
	NextStep string `json:"next_step"`
}

type StatusEntryDTO struct {
	ID       uint   `json:"id"`
	Position int    `json:"position"`
	Statut   string `json:"statut"`
	NextStep string `json:"next_step,omitempty"`
}

type StatusHistoryDTO struct {
	Badge   string           `json:"badge"`
	Entries []StatusEntryDTO `json:"entries"`
}

func toStatusEntryDTO(e *core.ChantierStatusEntry) StatusEntryDTO {
	return StatusEntryDTO{
		ID:       e.EntryId,
		Position: e.Position,
		Statut:   e.Statut,
		NextStep: e.NextStep,
	}
}

func (ep *Endpoint) StatusHistory(c *gin.Context) {
	id, ok := ep.chantierID(c)
	if !ok {
		return
	}

	db := ep.base.GetDB(c)
	chantier, err := core.FindChantierByID(db, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	if chantier == nil {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Chantier not found"))
		return
	}

	entries, err := core.StatusHistory(db, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	dto := StatusHistoryDTO{
		Badge:   core.StatusBadge(entries),
		Entries: utils.Map(entries, func(e core.ChantierStatusEntry) StatusEntryDTO { return toStatusEntryDTO(&e) }),
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(dto))
}

func (ep *Endpoint) AppendStatusEntry(c *gin.Context) {
	id, ok := ep.chantierID(c)
	if !ok {
		return
	}

	var dto StatusEntrySaveDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	db := ep.base.GetDB(c)
	chantier, err := core.FindChantierByID(db, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	if chantier == nil {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Chantier not found"))
		return
	}

	entry, verrs, err := core.AppendStatusEntry(db, id, dto.Statut, dto.NextStep)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	if verrs.HasErrors() {
		c.JSON(http.StatusBadRequest, common.NewValidationResponse(verrs))
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(toStatusEntryDTO(entry)))
}
