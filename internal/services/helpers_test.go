package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"alfredoptarigan/resume-detector/internal/models"
)

func pdfDoc(name string, data []byte) models.Document {
	return docWithType(name, "application/pdf", data)
}

func docWithType(name, mediaType string, data []byte) models.Document {
	return models.Document{
		Name:      name,
		MediaType: mediaType,
		Size:      int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func brokenDoc(name string) models.Document {
	return models.Document{
		Name:      name,
		MediaType: "application/pdf",
		Open: func() (io.ReadCloser, error) {
			return nil, errors.New("disk unplugged")
		},
	}
}

type fakeClient struct {
	mu sync.Mutex

	submits   []models.SubmissionPayload
	endpoints []string
	submitErr error
	entered   chan struct{}
	release   chan struct{}

	fetches   int
	report    *models.Report
	reportErr error

	events    int
	eventsErr error
}

func (f *fakeClient) SubmitResumes(ctx context.Context, endpoint string, payload models.SubmissionPayload) error {
	f.mu.Lock()
	f.submits = append(f.submits, payload)
	f.endpoints = append(f.endpoints, endpoint)
	entered, release := f.entered, f.release
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if release != nil {
		<-release
	}
	return f.submitErr
}

func (f *fakeClient) FetchReport(ctx context.Context, endpoint, id string) (*models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	return f.report, f.reportErr
}

func (f *fakeClient) FetchEvents(ctx context.Context, endpoint string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events++
	return f.eventsErr
}

func (f *fakeClient) submitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submits)
}

// inlineTelemetry runs calls synchronously so tests can count them.
type inlineTelemetry struct {
	fired []string
}

func (t *inlineTelemetry) Start(ctx context.Context) {}

func (t *inlineTelemetry) Stop() {}

func (t *inlineTelemetry) Shutdown(timeout time.Duration) bool { return true }

func (t *inlineTelemetry) Fire(name string, call func(ctx context.Context) error) {
	t.fired = append(t.fired, name)
	_ = call(context.Background())
}
