package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDocumentURL(t *testing.T) {
	assert.True(t, ValidateDocumentURL("https://drive.example.com/d/abc"))
	assert.True(t, ValidateDocumentURL("http://example.com"))
	assert.False(t, ValidateDocumentURL("ftp://example.com/file"))
	assert.False(t, ValidateDocumentURL("not a url"))
	assert.False(t, ValidateDocumentURL(""))
}

func TestReplaceChantierDocuments(t *testing.T) {
	db := newTestDB(t)

	chantier := Chantier{DevisHT: dec("1000")}
	verrs, err := SaveChantier(db, &chantier)
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())

	_, verrs, err = ReplaceChantierDocuments(db, chantier.ChantierId, []ChantierDocument{
		{Label: "Devis signé", URL: "https://drive.example.com/d/devis"},
		{Label: "Photos avant travaux", URL: "https://drive.example.com/d/photos"},
	})
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())

	// replacement reorders and drops
	_, verrs, err = ReplaceChantierDocuments(db, chantier.ChantierId, []ChantierDocument{
		{Label: "Photos avant travaux", URL: "https://drive.example.com/d/photos"},
	})
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())

	var docs []ChantierDocument
	require.NoError(t, db.Where("chantier_id = ?", chantier.ChantierId).Order("position").Find(&docs).Error)
	require.Len(t, docs, 1)
	assert.Equal(t, "Photos avant travaux", docs[0].Label)
	assert.Equal(t, 0, docs[0].Position)
}

func TestReplaceChantierDocumentsReportsRemovedKeys(t *testing.T) {
	db := newTestDB(t)

	chantier := Chantier{DevisHT: dec("1000")}
	verrs, err := SaveChantier(db, &chantier)
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())

	removed, verrs, err := ReplaceChantierDocuments(db, chantier.ChantierId, []ChantierDocument{
		{Label: "Plan", StorageKey: "chantiers/1/plan.pdf"},
		{Label: "Rapport", StorageKey: "chantiers/1/rapport.pdf"},
		{Label: "Lien externe", URL: "https://drive.example.com/d/abc"},
	})
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())
	assert.Empty(t, removed)

	// dropping one upload surfaces its key; the kept one stays silent
	removed, verrs, err = ReplaceChantierDocuments(db, chantier.ChantierId, []ChantierDocument{
		{Label: "Plan", StorageKey: "chantiers/1/plan.pdf"},
	})
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())
	assert.Equal(t, []string{"chantiers/1/rapport.pdf"}, removed)
}

func TestReplaceChantierDocumentsRejectsBadURL(t *testing.T) {
	db := newTestDB(t)

	chantier := Chantier{DevisHT: dec("1000")}
	verrs, err := SaveChantier(db, &chantier)
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())

	_, verrs, err = ReplaceChantierDocuments(db, chantier.ChantierId, []ChantierDocument{
		{Label: "Lien cassé", URL: "pas-une-url"},
	})
	require.NoError(t, err)
	assert.Contains(t, verrs, "documents")

	// nothing persisted
	var count int64
	require.NoError(t, db.Model(&ChantierDocument{}).Where("chantier_id = ?", chantier.ChantierId).Count(&count).Error)
	assert.Zero(t, count)
}
