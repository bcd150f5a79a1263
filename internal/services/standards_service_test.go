package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auditease-backend/internal/store"
)

func TestListStandardsOmitsText(t *testing.T) {
	svc := NewStandardsService(newFakeStore())

	resp := svc.ListStandards()
	require.NotEmpty(t, resp.Standards)
	for _, s := range resp.Standards {
		assert.NotEmpty(t, s.ID)
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.KeyRequirements)
		assert.Empty(t, s.ExtractedText)
	}
}

func TestGetStandardIncludesText(t *testing.T) {
	svc := NewStandardsService(newFakeStore())

	standard, err := svc.GetStandard("gdpr")
	require.NoError(t, err)
	assert.Equal(t, "GDPR", standard.ShortName)
	assert.NotEmpty(t, standard.ExtractedText)

	_, err = svc.GetStandard("iso-9000")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestImportStandardCreatesVaultDocument(t *testing.T) {
	st := newFakeStore()
	svc := NewStandardsService(st)

	doc, err := svc.ImportStandard(context.Background(), "soc2")
	require.NoError(t, err)

	stored, err := st.GetDocumentByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.Name, stored.Name)
	assert.NotEmpty(t, stored.ExtractedText, "the preset's requirements text backs the document")

	_, err = svc.ImportStandard(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
