package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-detector/internal/models"
)

func TestDescribe_GarbageIsListedWithoutPages(t *testing.T) {
	items := NewPDFInspector().Describe([]models.Document{
		pdfDoc("a.pdf", bytes.Repeat([]byte("x"), 1024)),
		brokenDoc("b.pdf"),
	})

	require.Len(t, items, 2)
	assert.Equal(t, "a.pdf (1.0 KB)", items[0].Label)
	assert.Equal(t, 1.0, items[0].SizeKB)
	assert.Equal(t, 0, items[0].Pages)
	assert.Equal(t, "b.pdf (0.0 KB)", items[1].Label)
}

func TestPageCount_Errors(t *testing.T) {
	inspector := NewPDFInspector()

	_, err := inspector.PageCount(models.Document{Name: "none.pdf"})
	assert.Error(t, err)

	_, err = inspector.PageCount(brokenDoc("b.pdf"))
	assert.ErrorContains(t, err, "disk unplugged")

	_, err = inspector.PageCount(pdfDoc("junk.pdf", []byte("not a pdf")))
	assert.Error(t, err)
}
