package services

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"alfredoptarigan/resume-detector/internal/models"
)

// DocumentSource turns uploaded parts and local files into composer documents.
// It records the declared media type only; filtering is the composer's job.
type DocumentSource interface {
	FromMultipart(files []*multipart.FileHeader) []models.Document
	FromPaths(paths []string) ([]models.Document, error)
}

type documentSource struct{}

func NewDocumentSource() DocumentSource {
	return &documentSource{}
}

// FromMultipart implements DocumentSource.
func (s *documentSource) FromMultipart(files []*multipart.FileHeader) []models.Document {
	docs := make([]models.Document, 0, len(files))
	for _, file := range files {
		header := file
		docs = append(docs, models.Document{
			Name:      header.Filename,
			MediaType: header.Header.Get("Content-Type"),
			Size:      header.Size,
			Open: func() (io.ReadCloser, error) {
				return header.Open()
			},
		})
	}
	return docs
}

// FromPaths implements DocumentSource. The media type is declared from the
// file extension, the same way a browser file picker does.
func (s *documentSource) FromPaths(paths []string) ([]models.Document, error) {
	docs := make([]models.Document, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory", path)
		}

		filePath := path
		docs = append(docs, models.Document{
			Name:      filepath.Base(path),
			MediaType: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
			Size:      info.Size(),
			Open: func() (io.ReadCloser, error) {
				return os.Open(filePath)
			},
		})
	}
	return docs, nil
}
