package piste

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mybtp.com/mybtp/core"
	"mybtp.com/mybtp/infrastructure/communication"
	"mybtp.com/mybtp/web/common"
)

type PisteSaveDTO struct {
	Client        string           `json:"client" binding:"required"`
	Statut        string           `json:"statut"`
	Source        string           `json:"source"`
	MontantEstime decimal.Decimal  `json:"montant_estime"`
	Probabilite   uint             `json:"probabilite"`
	DateRelance   *common.DateOnly `json:"date_relance"`
	Notes         string           `json:"notes"`
}

type PisteDTO struct {
	ID            uint             `json:"id"`
	Client        string           `json:"client"`
	Statut        string           `json:"statut"`
	Source        string           `json:"source,omitempty"`
	MontantEstime decimal.Decimal  `json:"montant_estime"`
	Probabilite   uint             `json:"probabilite"`
	DateRelance   *common.DateOnly `json:"date_relance,omitempty"`
	Notes         string           `json:"notes,omitempty"`
}

// NotifyOption configures the "lead won" email.
type NotifyOption struct {
	From string
	To   []string
}

type Endpoint struct {
	base   common.Handler
	notify NotifyOption
	slack  *communication.Slack
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager, notify NotifyOption, slack *communication.Slack) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}, notify: notify, slack: slack}
	r.GET("/pistes", endpoint.List)
	r.POST("/pistes", endpoint.Create)
	r.PUT("/pistes/:id", endpoint.Update)
	r.DELETE("/pistes/:id", endpoint.Delete)
}

func toPisteDTO(p *core.Piste) PisteDTO {
	dto := PisteDTO{
		ID:            p.PisteId,
		Client:        p.Client,
		Statut:        p.Statut,
		Source:        p.Source,
		MontantEstime: p.MontantEstime,
		Probabilite:   p.Probabilite,
		Notes:         p.Notes,
	}
	if p.DateRelance != nil {
		dto.DateRelance = &common.DateOnly{Time: *p.DateRelance}
	}
	return dto
}

func (ep *Endpoint) List(c *gin.Context) {
	db := ep.base.GetDB(c)

	var pistes []core.Piste
	query := db.Order("piste_id DESC")
	if statut := c.Query("statut"); statut != "" {
		query = query.Where("statut = ?", statut)
	}
	if err := query.Find(&pistes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	dtos := make([]PisteDTO, len(pistes))
	for i := range pistes {
		dtos[i] = toPisteDTO(&pistes[i])
	}
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
	pisteID := uint(id)
	ep.save(c, &pisteID)
}

func (ep *Endpoint) save(c *gin.Context, pisteID *uint) {
	var dto PisteSaveDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	piste := core.Piste{
		Client:        dto.Client,
		Statut:        dto.Statut,
		Source:        dto.Source,
		MontantEstime: dto.MontantEstime,
		Probabilite:   dto.Probabilite,
		Notes:         dto.Notes,
	}
	if piste.Statut == "" {
		piste.Statut = core.PisteStatutNouveau
	}
	if dto.DateRelance != nil {
		piste.DateRelance = &dto.DateRelance.Time
	}

	if verrs := core.ValidatePiste(&piste); verrs.HasErrors() {
		c.JSON(http.StatusBadRequest, common.NewValidationResponse(verrs))
		return
	}

	db := ep.base.GetDB(c)

	wasGagne := false
	if pisteID != nil {
		var stored core.Piste
		if err := db.First(&stored, *pisteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, common.NewErrorResponse("Piste not found"))
				return
			}
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		wasGagne = stored.Statut == core.PisteStatutGagne
		piste.PisteId = *pisteID
		piste.CreatedAt = stored.CreatedAt
	}

	if err := db.Save(&piste).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	if piste.Statut == core.PisteStatutGagne && !wasGagne {
		ep.notifyWon(c, &piste)
	}

	status := http.StatusOK
	if pisteID == nil {
		status = http.StatusCreated
	}
	c.JSON(status, common.NewSuccessResponse(toPisteDTO(&piste)))
}

// notifyWon is best effort: a failed notification never fails the save.
func (ep *Endpoint) notifyWon(c *gin.Context, piste *core.Piste) {
	message := fmt.Sprintf("Piste gagnée: %s (%s €)", piste.Client, piste.MontantEstime.StringFixed(2))

	if err := ep.slack.Info(message); err != nil {
		log.Printf("slack notification failed for piste %d: %v", piste.PisteId, err)
	}

	if ep.notify.From == "" || len(ep.notify.To) == 0 {
		return
	}
	err := communication.SendEmail(c.Request.Context(), &communication.EmailInfo{
		From:    ep.notify.From,
		To:      ep.notify.To,
		Subject: message,
		Text:    fmt.Sprintf("La piste %q est passée au statut Gagné.\nMontant estimé: %s €\nSource: %s", piste.Client, piste.MontantEstime.StringFixed(2), piste.Source),
	})
	if err != nil {
		log.Printf("email notification failed for piste %d: %v", piste.PisteId, err)
	}
}

func (ep *Endpoint) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return
	}

	db := ep.base.GetDB(c)
	result := db.Delete(&core.Piste{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(result.Error.Error()))
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Piste not found"))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}
