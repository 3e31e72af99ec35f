package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"alfredoptarigan/resume-detector/internal/config"
	"alfredoptarigan/resume-detector/internal/models"
)

const (
	messageLoading  = "Loading results..."
	messageNotFound = "No results found"
)

// ReportViewer resolves a submission id to a report. Each call fetches fresh;
// nothing is cached between views.
type ReportViewer interface {
	Begin(id string) models.ReportView
	Load(ctx context.Context, id string) models.ReportView
}

type reportViewer struct {
	endpoints  config.EndpointsConfig
	client     AnalysisClient
	classifier *Classifier
}

func NewReportViewer(endpoints config.EndpointsConfig, client AnalysisClient, classifier *Classifier) ReportViewer {
	return &reportViewer{
		endpoints:  endpoints,
		client:     client,
		classifier: classifier,
	}
}

// Begin implements ReportViewer. It reports the state a view enters before the
// fetch resolves: Idle without an id, Loading otherwise.
func (v *reportViewer) Begin(id string) models.ReportView {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.ReportView{Phase: models.PhaseIdle}
	}
	return models.ReportView{ID: id, Phase: models.PhaseLoading, Message: messageLoading}
}

// Load implements ReportViewer.
func (v *reportViewer) Load(ctx context.Context, id string) models.ReportView {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.ReportView{Phase: models.PhaseIdle}
	}

	endpoint, err := v.endpoints.Resolve(config.EndpointReport)
	if err != nil {
		return errorView(id, err)
	}

	report, err := v.client.FetchReport(ctx, endpoint, id)
	if err != nil {
		log.Printf("❌ Failed to load results for %s: %v", id, err)
		return errorView(id, err)
	}

	report = v.classifier.Normalize(report)
	if err := v.classifier.Check(report); err != nil {
		log.Printf("❌ Report %s breaks the label contract: %v", id, err)
		return errorView(id, err)
	}

	log.Printf("✅ Loaded report %s with %d claim(s)", id, len(report.Results))

	return models.ReportView{ID: id, Phase: models.PhaseLoaded, Report: report}
}

// errorView renders a non-success status and a missing report the same way;
// every other failure keeps its cause.
func errorView(id string, err error) models.ReportView {
	var (
		serviceErr  *models.ServiceError
		notFoundErr *models.NotFoundError
	)

	message := "Error: " + err.Error()
	if errors.As(err, &serviceErr) || errors.As(err, &notFoundErr) {
		message = messageNotFound
	}

	return models.ReportView{ID: id, Phase: models.PhaseError, Message: message, Err: err}
}
