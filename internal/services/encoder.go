package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"alfredoptarigan/resume-detector/internal/models"
)

type DocumentEncoder interface {
	EncodeAll(ctx context.Context, docs []models.Document) ([]string, error)
}

type base64Encoder struct{}

func NewDocumentEncoder() DocumentEncoder {
	return &base64Encoder{}
}

// EncodeAll encodes every document concurrently and returns the bodies in input
// order. The first failure is returned once all encoders have finished; no
// partial result is ever handed back.
func (e *base64Encoder) EncodeAll(ctx context.Context, docs []models.Document) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	encoded := make([]string, len(docs))

	var g errgroup.Group
	for i, doc := range docs {
		g.Go(func() error {
			body, err := encodeDocument(doc)
			if err != nil {
				return &models.EncodingError{Document: doc.Name, Err: err}
			}
			encoded[i] = body
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return encoded, nil
}

func encodeDocument(doc models.Document) (string, error) {
	if doc.Open == nil {
		return "", errors.New("document has no content")
	}

	src, err := doc.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open document: %w", err)
	}
	defer src.Close()

	var out strings.Builder
	if doc.Size > 0 {
		out.Grow(base64.StdEncoding.EncodedLen(int(doc.Size)))
	}

	enc := base64.NewEncoder(base64.StdEncoding, &out)
	if _, err := io.Copy(enc, src); err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to flush encoder: %w", err)
	}

	return out.String(), nil
}
