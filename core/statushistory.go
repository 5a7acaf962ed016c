package core

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// StatusBadgeUndefined is shown for a chantier with no history yet.
const StatusBadgeUndefined = "NON DÉFINI"

// ChantierStatusEntry is one step of a chantier's progress log: a
// free-text status label plus the next planned step, appended by the
// site staff. Rows replace the old loose JSON lists, ordered by
// Position; the newest entry is the chantier's current badge.
type ChantierStatusEntry struct {
	EntryId    uint   `gorm:"primaryKey;autoIncrement"`
	ChantierId uint   `gorm:"not null;index:idx_chantier_status"`
	Position   int    `gorm:"not null;index:idx_chantier_status"`
	Statut     string `gorm:"size:180"`
	NextStep   string `gorm:"size:500"`
	CreatedAt  time.Time
}

func (ChantierStatusEntry) TableName() string {
	return "chantier_status_entries"
}

// AppendStatusEntry adds an entry at the end of a chantier's history.
func AppendStatusEntry(db *gorm.DB, chantierID uint, statut, nextStep string) (*ChantierStatusEntry, ValidationErrors, error) {
	errs := ValidationErrors{}
	if strings.TrimSpace(statut) == "" {
		errs.Add("statut", "Le statut est requis")
	}
	if errs.HasErrors() {
		return nil, errs, nil
	}

	entry := ChantierStatusEntry{
		ChantierId: chantierID,
		Statut:     strings.TrimSpace(statut),
		NextStep:   strings.TrimSpace(nextStep),
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		var position int64
		if err := tx.Model(&ChantierStatusEntry{}).
			Where("chantier_id = ?", chantierID).
			Count(&position).Error; err != nil {
			return err
		}
		entry.Position = int(position)
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &entry, nil, nil
}

// StatusHistory lists a chantier's entries oldest first.
func StatusHistory(db *gorm.DB, chantierID uint) ([]ChantierStatusEntry, error) {
	var entries []ChantierStatusEntry
	err := db.Where("chantier_id = ?", chantierID).Order("position").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// StatusBadge is the label of the newest entry.
func StatusBadge(entries []ChantierStatusEntry) string {
	if len(entries) == 0 {
		return StatusBadgeUndefined
	}
	return entries[len(entries)-1].Statut
}
