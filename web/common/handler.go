package common

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mybtp.com/mybtp/core"
)

// Handler is embedded by every endpoint group.
type Handler struct {
	Dm *core.DatabaseManager
}

func (h *Handler) GetDB(c *gin.Context) *gorm.DB {
	return h.Dm.GetDB(c.Request.Context())
}
