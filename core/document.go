package core

import (
	"net/url"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ChantierDocument replaces the old loose JSON list of drive links:
// one row per document, ordered by Position.
type ChantierDocument struct {
	DocumentId uint   `gorm:"primaryKey;autoIncrement"`
	ChantierId uint   `gorm:"not null;index:idx_chantier_position"`
	Position   int    `gorm:"not null;index:idx_chantier_position"`
	Label      string `gorm:"size:180"`
	URL        string `gorm:"size:500"` // external link, exclusive with StorageKey
	StorageKey string `gorm:"size:500"` // S3 object key for uploaded files
	CreatedAt  time.Time
}

func (ChantierDocument) TableName() string {
	return "chantier_documents"
}

func ValidateDocumentURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ReplaceChantierDocuments swaps the ordered document list of a
// chantier in one transaction, preserving the submitted order. It
// returns the storage keys of uploaded documents that were dropped by
// the replacement, so the caller can reclaim the underlying objects.
func ReplaceChantierDocuments(db *gorm.DB, chantierID uint, docs []ChantierDocument) ([]string, ValidationErrors, error) {
	errs := ValidationErrors{}
	for i := range docs {
		if docs[i].StorageKey != "" {
			continue
		}
		if strings.TrimSpace(docs[i].URL) == "" || !ValidateDocumentURL(docs[i].URL) {
			errs.Add("documents", "URL invalide dans la liste de documents: "+docs[i].URL)
			break
		}
	}
	if errs.HasErrors() {
		return nil, errs, nil
	}

	kept := make(map[string]bool, len(docs))
	for i := range docs {
		if docs[i].StorageKey != "" {
			kept[docs[i].StorageKey] = true
		}
	}

	var removedKeys []string
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing []ChantierDocument
		if err := tx.Where("chantier_id = ?", chantierID).Find(&existing).Error; err != nil {
			return err
		}
		for i := range existing {
			if existing[i].StorageKey != "" && !kept[existing[i].StorageKey] {
				removedKeys = append(removedKeys, existing[i].StorageKey)
			}
		}
		if err := tx.Where("chantier_id = ?", chantierID).Delete(&ChantierDocument{}).Error; err != nil {
			return err
		}
		for i := range docs {
			docs[i].DocumentId = 0
			docs[i].ChantierId = chantierID
			docs[i].Position = i
			if err := tx.Create(&docs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return removedKeys, nil, nil
}
