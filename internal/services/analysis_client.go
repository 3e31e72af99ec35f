package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-detector/internal/models"
)

// AnalysisClient talks to the externally owned analysis, results and events APIs.
// Every method performs exactly one request and never retries.
type AnalysisClient interface {
	SubmitResumes(ctx context.Context, endpoint string, payload models.SubmissionPayload) error
	FetchReport(ctx context.Context, endpoint, id string) (*models.Report, error)
	FetchEvents(ctx context.Context, endpoint string) error
}

// eventsTimeout bounds the events call, which nothing waits on for a result.
const eventsTimeout = 5 * time.Second

type analysisClient struct {
	client *fiber.Client
}

func NewAnalysisClient() AnalysisClient {
	return &analysisClient{
		client: &fiber.Client{
			JSONEncoder: json.Marshal,
			JSONDecoder: json.Unmarshal,
		},
	}
}

// SubmitResumes implements AnalysisClient.
func (a *analysisClient) SubmitResumes(ctx context.Context, endpoint string, payload models.SubmissionPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	agent := a.client.Post(endpoint).JSON(payload)
	code, _, errs := agent.Bytes()
	if len(errs) > 0 {
		return &models.TransportError{Endpoint: endpoint, Err: errors.Join(errs...)}
	}

	if !isSuccess(code) {
		return &models.ServiceError{Endpoint: endpoint, StatusCode: code}
	}

	return nil
}

// FetchReport implements AnalysisClient.
func (a *analysisClient) FetchReport(ctx context.Context, endpoint, id string) (*models.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, err := withQuery(endpoint, "id", id)
	if err != nil {
		return nil, &models.TransportError{Endpoint: endpoint, Err: err}
	}

	log.Printf("🔍 Fetching results %s", target)

	agent := a.client.Get(target).ContentType(fiber.MIMEApplicationJSON)
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, &models.TransportError{Endpoint: endpoint, Err: errors.Join(errs...)}
	}

	if !isSuccess(code) {
		return nil, &models.ServiceError{Endpoint: endpoint, StatusCode: code}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &models.NotFoundError{ID: id}
	}

	var envelope models.ReportEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		log.Printf("⚠️  Undecodable results body for %s: %v", id, err)
		return nil, &models.NotFoundError{ID: id}
	}

	if envelope.Result == nil {
		return nil, &models.NotFoundError{ID: id}
	}

	return envelope.Result, nil
}

// FetchEvents implements AnalysisClient. The body is read and discarded.
func (a *analysisClient) FetchEvents(ctx context.Context, endpoint string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	code, _, errs := a.client.Get(endpoint).Timeout(eventsTimeout).Bytes()
	if len(errs) > 0 {
		return &models.TransportError{Endpoint: endpoint, Err: errors.Join(errs...)}
	}

	if !isSuccess(code) {
		return &models.ServiceError{Endpoint: endpoint, StatusCode: code}
	}

	return nil
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

func withQuery(endpoint, key, value string) (string, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint URL: %w", err)
	}

	query := parsed.Query()
	query.Set(key, value)
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}
