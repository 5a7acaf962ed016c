package chantier

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"mybtp.com/mybtp/core"
	"mybtp.com/mybtp/web/common"
)

func (ep *Endpoint) ListDocuments(c *gin.Context) {
	id, ok := ep.chantierID(c)
	if !ok {
		return
	}

	db := ep.base.GetDB(c)
	var docs []core.ChantierDocument
	if err := db.Where("chantier_id = ?", id).Order("position").Find(&docs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	dtos := make([]DocumentDTO, len(docs))
	for i := range docs {
		dtos[i] = toDocumentDTO(&docs[i])
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(dtos))
}

// ReplaceDocuments swaps the whole ordered list, the way the frontend
// submits it after a drag-and-drop reorder.
func (ep *Endpoint) ReplaceDocuments(c *gin.Context) {
	id, ok := ep.chantierID(c)
	if !ok {
		return
	}

	var dto DocumentsReplaceDTO
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

	docs := make([]core.ChantierDocument, len(dto.Documents))
	for i, d := range dto.Documents {
		docs[i] = core.ChantierDocument{
			Label:      d.Label,
			URL:        d.URL,
			StorageKey: d.StorageKey,
		}
	}

	removedKeys, verrs, err := core.ReplaceChantierDocuments(db, id, docs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	if verrs.HasErrors() {
		c.JSON(http.StatusBadRequest, common.NewValidationResponse(verrs))
		return
	}

	// Best effort: clean up objects whose rows no longer exist. A failed
	// delete only leaks storage, never the document list.
	if ep.documents != nil {
		for _, key := range removedKeys {
			if err := ep.documents.DeleteFile(c.Request.Context(), key); err != nil {
				log.Printf("failed to delete document object %s: %v", key, err)
			}
		}
	}

	dtos := make([]DocumentDTO, len(docs))
	for i := range docs {
		dtos[i] = toDocumentDTO(&docs[i])
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(dtos))
}

func (ep *Endpoint) UploadDocument(c *gin.Context) {
	if ep.documents == nil {
		c.JSON(http.StatusServiceUnavailable, common.NewErrorResponse("Document storage is not configured"))
		return
	}

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

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Missing file"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	defer file.Close()

	key := fmt.Sprintf("chantiers/%d/%s%s", id, uuid.NewString(), filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")
	if err := ep.documents.UploadFile(c.Request.Context(), key, contentType, file); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	var position int64
	if err := db.Model(&core.ChantierDocument{}).Where("chantier_id = ?", id).Count(&position).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	doc := core.ChantierDocument{
		ChantierId: id,
		Position:   int(position),
		Label:      fileHeader.Filename,
		StorageKey: key,
	}
	if err := db.Create(&doc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(toDocumentDTO(&doc)))
}

func (ep *Endpoint) DownloadDocument(c *gin.Context) {
	if ep.documents == nil {
		c.JSON(http.StatusServiceUnavailable, common.NewErrorResponse("Document storage is not configured"))
		return
	}

	id, ok := ep.chantierID(c)
	if !ok {
		return
	}
	docID, err := strconv.Atoi(c.Param("docId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return
	}

	db := ep.base.GetDB(c)
	var doc core.ChantierDocument
	if err := db.Where("chantier_id = ?", id).First(&doc, docID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Document not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	if doc.StorageKey == "" {
		c.Redirect(http.StatusFound, doc.URL)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Label))
	c.Header("Content-Type", "application/octet-stream")
	if err := ep.documents.ReadFile(c.Request.Context(), doc.StorageKey, c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
}
