package services

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/ledongthuc/pdf"

	"alfredoptarigan/resume-detector/internal/models"
)

// PDFInspector reads enough of a document to describe it in the working-set listing.
type PDFInspector interface {
	PageCount(doc models.Document) (int, error)
	Describe(docs []models.Document) []models.FileListItem
}

type pdfInspector struct{}

func NewPDFInspector() PDFInspector {
	return &pdfInspector{}
}

func (p *pdfInspector) PageCount(doc models.Document) (pages int, err error) {
	if doc.Open == nil {
		return 0, fmt.Errorf("document has no content")
	}

	src, err := doc.Open()
	if err != nil {
		return 0, fmt.Errorf("failed to open document: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return 0, fmt.Errorf("failed to read document: %w", err)
	}

	// ledongthuc/pdf panics on some malformed trailers.
	defer func() {
		if r := recover(); r != nil {
			pages, err = 0, fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}

	return r.NumPage(), nil
}

// Describe lists each document as "name (12.3 KB)". Page counts are best effort.
func (p *pdfInspector) Describe(docs []models.Document) []models.FileListItem {
	items := make([]models.FileListItem, 0, len(docs))
	for _, doc := range docs {
		item := models.FileListItem{
			Name:   doc.Name,
			SizeKB: doc.SizeKB(),
			Label:  fmt.Sprintf("%s (%.1f KB)", doc.Name, doc.SizeKB()),
		}

		pages, err := p.PageCount(doc)
		if err != nil {
			log.Printf("⚠️  Could not count pages of %s: %v", doc.Name, err)
		} else {
			item.Pages = pages
		}

		items = append(items, item)
	}
	return items
}
