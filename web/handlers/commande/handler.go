package commande

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"mybtp.com/mybtp/core"
	"mybtp.com/mybtp/utils"
	"mybtp.com/mybtp/web/common"
)

type CommandeSaveDTO struct {
	Reference   string          `json:"reference" binding:"required"`
	Chantier    uint            `json:"chantier" binding:"required"`
	Fournisseur string          `json:"fournisseur" binding:"required"`
	MontantHT   decimal.Decimal `json:"montant_ht"`
	Statut      string          `json:"statut"`
}

type CommandeDTO struct {
	ID           uint            `json:"id"`
	Reference    string          `json:"reference"`
	Chantier     uint            `json:"chantier"`
	ChantierName string          `json:"chantier_name,omitempty"`
	Fournisseur  string          `json:"fournisseur"`
	MontantHT    decimal.Decimal `json:"montant_ht"`
	Statut       string          `json:"statut"`
}

type Endpoint struct {
	base common.Handler
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}}
	r.GET("/commandes", endpoint.List)
	r.POST("/commandes", endpoint.Create)
	r.PUT("/commandes/:id", endpoint.Update)
	r.DELETE("/commandes/:id", endpoint.Delete)
}

func toCommandeDTO(c *core.Commande) CommandeDTO {
	dto := CommandeDTO{
		ID:          c.CommandeId,
		Reference:   c.Reference,
		Chantier:    c.ChantierId,
		Fournisseur: c.Fournisseur,
		MontantHT:   c.MontantHT,
		Statut:      c.Statut,
	}
	if c.Chantier != nil {
		dto.ChantierName = c.Chantier.NameChantier
	}
	return dto
}

func (ep *Endpoint) List(c *gin.Context) {
	db := ep.base.GetDB(c)

	var commandes []core.Commande
	query := db.Preload("Chantier").Order("commande_id DESC")
	if chantier := c.Query("chantier"); chantier != "" {
		query = query.Where("chantier_id = ?", chantier)
	}
	if statut := c.Query("statut"); statut != "" {
		query = query.Where("statut = ?", statut)
	}
	if err := query.Find(&commandes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	dtos := utils.Map(commandes, func(cmd core.Commande) CommandeDTO { return toCommandeDTO(&cmd) })
	c.JSON(http.StatusOK, common.NewSuccessResponse(dtos))
}

func (ep *Endpoint) Create(c *gin.Context) {
	ep.save(c, nil)
}

func (ep *Endpoint) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return
	}
	commandeID := uint(id)
	ep.save(c, &commandeID)
}

func (ep *Endpoint) save(c *gin.Context, commandeID *uint) {
	var dto CommandeSaveDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	commande := core.Commande{
		Reference:   dto.Reference,
		ChantierId:  dto.Chantier,
		Fournisseur: dto.Fournisseur,
		MontantHT:   dto.MontantHT,
		Statut:      dto.Statut,
	}
	if commande.Statut == "" {
		commande.Statut = core.CommandeStatutBrouillon
	}
	if commandeID != nil {
		commande.CommandeId = *commandeID
	}

	db := ep.base.GetDB(c)
	verrs, err := core.SaveCommande(db, &commande)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	if verrs.HasErrors() {
		c.JSON(http.StatusBadRequest, common.NewValidationResponse(verrs))
		return
	}

	status := http.StatusOK
	if commandeID == nil {
		status = http.StatusCreated
	}
	c.JSON(status, common.NewSuccessResponse(toCommandeDTO(&commande)))
}

func (ep *Endpoint) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return
	}

	db := ep.base.GetDB(c)
	result := db.Delete(&core.Commande{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(result.Error.Error()))
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Commande not found"))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}
