package chantier

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mybtp.com/mybtp/core"
	"mybtp.com/mybtp/geo"
	"mybtp.com/mybtp/infrastructure/filesystem"
	"mybtp.com/mybtp/utils"
	"mybtp.com/mybtp/web/common"
)

type Endpoint struct {
	base      common.Handler
	geocoder  *geo.Client
	documents *filesystem.Store
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager, geocoder *geo.Client, documents *filesystem.Store) {
	endpoint := &Endpoint{
		base:      common.Handler{Dm: dm},
		geocoder:  geocoder,
		documents: documents,
	}
	r.GET("/chantiers", endpoint.List)
	r.GET("/chantiers/:id", endpoint.Get)
	r.POST("/chantiers", endpoint.Create)
	r.PUT("/chantiers/:id", endpoint.Update)
	r.GET("/chantiers/export", endpoint.Export)
	r.GET("/chantiers/:id/status-history", endpoint.StatusHistory)
	r.POST("/chantiers/:id/status-history", endpoint.AppendStatusEntry)
	r.GET("/chantiers/:id/documents", endpoint.ListDocuments)
	r.PUT("/chantiers/:id/documents", endpoint.ReplaceDocuments)
	r.POST("/chantiers/:id/documents/upload", endpoint.UploadDocument)
	r.GET("/chantiers/:id/documents/:docId/download", endpoint.DownloadDocument)
}

func (ep *Endpoint) List(c *gin.Context) {
	db := ep.base.GetDB(c)

	var chantiers []core.Chantier
	query := db.Preload("ChefChantier").Order("chantier_id DESC")
	if chef := c.Query("chef"); chef != "" {
		query = query.Where("chef_chantier_id = ?", chef)
	}
	if err := query.Find(&chantiers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	dtos := utils.Map(chantiers, func(ch core.Chantier) ChantierDTO { return toChantierDTO(&ch) })
	c.JSON(http.StatusOK, common.NewSuccessResponse(dtos))
}

func (ep *Endpoint) Get(c *gin.Context) {
	id, ok := ep.chantierID(c)
	if !ok {
		return
	}

	db := ep.base.GetDB(c)
	var chantier core.Chantier
	err := db.Preload("ChefChantier").Preload("Documents", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position")
	}).First(&chantier, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Chantier not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(toChantierDTO(&chantier)))
}

func (ep *Endpoint) Create(c *gin.Context) {
	ep.save(c, nil)
}

func (ep *Endpoint) Update(c *gin.Context) {
	id, ok := ep.chantierID(c)
	if !ok {
		return
	}
	ep.save(c, &id)
}

func (ep *Endpoint) save(c *gin.Context, chantierID *uint) {
	var dto ChantierSaveDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	db := ep.base.GetDB(c)

	chantier := core.Chantier{
		NameChantier:             dto.NameChantier,
		Contact:                  dto.Contact,
		TelephoneContact:         dto.TelephoneContact,
		ClientFinalType:          dto.ClientFinalType,
		AdresseChantier:          dto.AdresseChantier,
		CpVilleChantier:          dto.CpVilleChantier,
		AvancementChantier:       dto.AvancementChantier,
		AnneePeriodeConstruction: dto.AnneePeriodeConstruction,
		ChefChantierId:           dto.ChefChantier,
		BriefURL:                 dto.BriefURL,
		DevisHT:                  dto.DevisHT,
	}
	if chantierID != nil {
		chantier.ChantierId = *chantierID
	}
	if dto.DateRdvTechnique != nil {
		chantier.DateRdvTechnique = &dto.DateRdvTechnique.Time
	}
	if dto.DateDebutChantier != nil {
		chantier.DateDebutChantier = &dto.DateDebutChantier.Time
	}
	if dto.DateFinPrevueChantier != nil {
		chantier.DateFinPrevueChantier = &dto.DateFinPrevueChantier.Time
	}
	if dto.TravauxType != nil {
		travaux, err := json.Marshal(dto.TravauxType)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid travaux_type"))
			return
		}
		chantier.TravauxType = travaux
	}

	ep.geocode(&chantier)

	verrs, err := core.SaveChantier(db, &chantier)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	if verrs.HasErrors() {
		c.JSON(http.StatusBadRequest, common.NewValidationResponse(verrs))
		return
	}

	status := http.StatusOK
	if chantierID == nil {
		status = http.StatusCreated
	}
	c.JSON(status, common.NewSuccessResponse(toChantierDTO(&chantier)))
}

// geocode is best effort: a failing address lookup never blocks a save.
func (ep *Endpoint) geocode(chantier *core.Chantier) {
	if ep.geocoder == nil || chantier.AdresseChantier == "" {
		return
	}
	pos, err := ep.geocoder.Geocode(chantier.AdresseChantier, chantier.CpVilleChantier)
	if err != nil {
		log.Printf("geocoding failed for chantier %q: %v", chantier.NameChantier, err)
		return
	}
	if pos != nil {
		chantier.Latitude = &pos.Latitude
		chantier.Longitude = &pos.Longitude
	}
}

func (ep *Endpoint) chantierID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return 0, false
	}
	return uint(id), true
}
