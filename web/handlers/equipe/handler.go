package equipe

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mybtp.com/mybtp/core"
	"mybtp.com/mybtp/web/common"
)

type EquipeSaveDTO struct {
	Name       string `json:"name" binding:"required"`
	Color      string `json:"color"`
	ChefEquipe *uint  `json:"chef_equipe"`
}

type EquipeDTO struct {
	ID             uint     `json:"id"`
	Name           string   `json:"name"`
	Color          string   `json:"color"`
	ChefEquipe     *uint    `json:"chef_equipe,omitempty"`
	ChefEquipeName string   `json:"chef_equipe_name,omitempty"`
	Members        []uint   `json:"members,omitempty"`
	MemberNames    []string `json:"member_names,omitempty"`
}

type Endpoint struct {
	base common.Handler
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}}
	r.GET("/equipes", endpoint.List)
	r.GET("/equipes/:id", endpoint.Get)
	r.POST("/equipes", endpoint.Create)
	r.PUT("/equipes/:id", endpoint.Update)
	r.DELETE("/equipes/:id", endpoint.Delete)
}

func toEquipeDTO(e *core.Equipe) EquipeDTO {
	dto := EquipeDTO{
		ID:         e.EquipeId,
		Name:       e.Name,
		Color:      e.Color,
		ChefEquipe: e.ChefEquipeId,
	}
	if e.ChefEquipe != nil {
		dto.ChefEquipeName = e.ChefEquipe.FullName()
	}
	for i := range e.Members {
		dto.Members = append(dto.Members, e.Members[i].EmployeeId)
		dto.MemberNames = append(dto.MemberNames, e.Members[i].FullName())
	}
	return dto
}

func (ep *Endpoint) List(c *gin.Context) {
	db := ep.base.GetDB(c)

	var equipes []core.Equipe
	if err := db.Preload("ChefEquipe").Preload("Members").Order("name").Find(&equipes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	dtos := make([]EquipeDTO, len(equipes))
	for i := range equipes {
		dtos[i] = toEquipeDTO(&equipes[i])
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(dtos))
}

func (ep *Endpoint) Get(c *gin.Context) {
	id, ok := ep.equipeID(c)
	if !ok {
		return
	}

	db := ep.base.GetDB(c)
	var equipe core.Equipe
	if err := db.Preload("ChefEquipe").Preload("Members").First(&equipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Equipe not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(toEquipeDTO(&equipe)))
}

func (ep *Endpoint) Create(c *gin.Context) {
	ep.save(c, nil)
}

func (ep *Endpoint) Update(c *gin.Context) {
	id, ok := ep.equipeID(c)
	if !ok {
		return
	}
	ep.save(c, &id)
}

func (ep *Endpoint) save(c *gin.Context, equipeID *uint) {
	var dto EquipeSaveDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	equipe := core.Equipe{
		Name:         dto.Name,
		Color:        dto.Color,
		ChefEquipeId: dto.ChefEquipe,
	}
	if equipeID != nil {
		equipe.EquipeId = *equipeID
	}

	db := ep.base.GetDB(c)
	verrs, err := core.SaveEquipe(db, &equipe)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	if verrs.HasErrors() {
		c.JSON(http.StatusBadRequest, common.NewValidationResponse(verrs))
		return
	}

	status := http.StatusOK
	if equipeID == nil {
		status = http.StatusCreated
	}
	c.JSON(status, common.NewSuccessResponse(toEquipeDTO(&equipe)))
}

// Delete detaches the members instead of deleting them: the equipe is
// grouping only.
func (ep *Endpoint) Delete(c *gin.Context) {
	id, ok := ep.equipeID(c)
	if !ok {
		return
	}

	db := ep.base.GetDB(c)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&core.Employee{}).Where("equipe_id = ?", id).Update("equipe_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&core.Equipe{}, id).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}

func (ep *Endpoint) equipeID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return 0, false
	}
	return uint(id), true
}
