package services

import (
	"context"
	"errors"
	"log"
	"mime"
	"strings"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/resume-detector/internal/config"
	"alfredoptarigan/resume-detector/internal/models"
)

const (
	noticeSubmitted   = "We will email you our report soon!"
	noticeMissingForm = "Please provide email and select at least one PDF file"
	noticeInProgress  = "A submission is already in progress"
)

// ComposerService turns a form and its working set into one submission.
type ComposerService interface {
	SelectFiles(raw []models.Document) []models.Document
	Submit(ctx context.Context, state models.FormState) models.SubmitResult
}

type composerService struct {
	endpoints    config.EndpointsConfig
	acceptedType string
	encoder      DocumentEncoder
	client       AnalysisClient
	telemetry    NonCritical

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewComposerService(
	endpoints config.EndpointsConfig,
	acceptedType string,
	encoder DocumentEncoder,
	client AnalysisClient,
	telemetry NonCritical,
) ComposerService {
	return &composerService{
		endpoints:    endpoints,
		acceptedType: normalizeMediaType(acceptedType),
		encoder:      encoder,
		client:       client,
		telemetry:    telemetry,
		inFlight:     make(map[string]struct{}),
	}
}

// SelectFiles implements ComposerService. Documents of any other declared type
// are left out without an error.
func (c *composerService) SelectFiles(raw []models.Document) []models.Document {
	selected := make([]models.Document, 0, len(raw))
	for _, doc := range raw {
		if normalizeMediaType(doc.MediaType) == c.acceptedType {
			selected = append(selected, doc)
		}
	}
	return selected
}

// Submit implements ComposerService.
func (c *composerService) Submit(ctx context.Context, state models.FormState) models.SubmitResult {
	attemptID := uuid.NewString()

	if err := validateForm(state); err != nil {
		return models.SubmitResult{
			AttemptID: attemptID,
			Kind:      models.OutcomeValidationFailed,
			State:     state,
			Notice:    models.Notice{Message: err.Error(), Blocking: true},
			Err:       err,
		}
	}

	key := state.SessionKey()
	if !c.acquire(key) {
		return models.SubmitResult{
			AttemptID: attemptID,
			Kind:      models.OutcomeInProgress,
			State:     state,
			Notice:    models.Notice{Message: noticeInProgress},
			Err:       models.ErrSubmissionInProgress,
		}
	}
	defer c.release(key)

	endpoint, err := c.endpoints.Resolve(config.EndpointSubmission)
	if err != nil {
		return failed(attemptID, models.OutcomeConfigurationFailed, state, err)
	}

	c.fireEventsProbe(attemptID)

	resumes, err := c.encoder.EncodeAll(ctx, state.Files)
	if err != nil {
		log.Printf("❌ Encoding failed for attempt %s: %v", attemptID, err)
		return failed(attemptID, models.OutcomeEncodingFailed, state, err)
	}

	payload := buildPayload(state, resumes)

	log.Printf("📤 Submitting %d document(s) for attempt %s", len(payload.Resumes), attemptID)
	if err := c.client.SubmitResumes(ctx, endpoint, payload); err != nil {
		log.Printf("❌ Submission %s failed: %v", attemptID, err)
		return failed(attemptID, kindFor(err), state, err)
	}

	log.Printf("✅ Submission %s accepted", attemptID)

	return models.SubmitResult{
		AttemptID: attemptID,
		Kind:      models.OutcomeSuccess,
		State:     state.ClearFiles(),
		Notice:    models.Notice{Message: noticeSubmitted},
	}
}

func (c *composerService) acquire(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.inFlight[key]; busy {
		return false
	}
	c.inFlight[key] = struct{}{}
	return true
}

func (c *composerService) release(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, key)
}

func (c *composerService) fireEventsProbe(attemptID string) {
	if c.telemetry == nil {
		return
	}

	endpoint, err := c.endpoints.Resolve(config.EndpointEvents)
	if err != nil {
		return
	}

	c.telemetry.Fire("events:"+attemptID, func(ctx context.Context) error {
		return c.client.FetchEvents(ctx, endpoint)
	})
}

func validateForm(state models.FormState) error {
	if strings.TrimSpace(state.Email) == "" {
		return &models.ValidationError{Field: "email", Message: noticeMissingForm}
	}
	if len(state.Files) == 0 {
		return &models.ValidationError{Field: "files", Message: noticeMissingForm}
	}
	return nil
}

// buildPayload leaves out optional fields that are empty or only whitespace.
func buildPayload(state models.FormState, resumes []string) models.SubmissionPayload {
	return models.SubmissionPayload{
		Email:           strings.TrimSpace(state.Email),
		Resumes:         resumes,
		Role:            strings.TrimSpace(state.Role),
		Name:            strings.TrimSpace(state.Name),
		CompanyOrSchool: strings.TrimSpace(state.CompanyOrSchool),
	}
}

func failed(attemptID string, kind models.OutcomeKind, state models.FormState, err error) models.SubmitResult {
	return models.SubmitResult{
		AttemptID: attemptID,
		Kind:      kind,
		State:     state,
		Notice:    models.Notice{Message: "Upload failed: " + err.Error(), Blocking: true},
		Err:       err,
	}
}

func kindFor(err error) models.OutcomeKind {
	var serviceErr *models.ServiceError
	if errors.As(err, &serviceErr) {
		return models.OutcomeServiceFailed
	}
	return models.OutcomeTransportFailed
}

func normalizeMediaType(value string) string {
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(value))
	}
	return mediaType
}
