package handlers

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-detector/internal/models"
	"alfredoptarigan/resume-detector/internal/services"
)

// resumesField is the multipart field carrying the selected documents.
const resumesField = "resumes"

type SubmissionHandler struct {
	composer    services.ComposerService
	source      services.DocumentSource
	inspector   services.PDFInspector
	maxFileSize int64
}

func NewSubmissionHandler(
	composer services.ComposerService,
	source services.DocumentSource,
	inspector services.PDFInspector,
	maxFileSize int64,
) *SubmissionHandler {
	return &SubmissionHandler{
		composer:    composer,
		source:      source,
		inspector:   inspector,
		maxFileSize: maxFileSize,
	}
}

// HandleSubmit handles POST /api/v1/submissions
func (h *SubmissionHandler) HandleSubmit(c *fiber.Ctx) error {
	state, err := h.readForm(c)
	if err != nil {
		return err
	}

	result := h.composer.Submit(c.UserContext(), state)

	return c.Status(statusFor(result.Kind)).JSON(models.SubmissionResponse{
		AttemptID: result.AttemptID,
		Outcome:   string(result.Kind),
		Notice:    result.Notice,
		Form:      echo(result.State),
		Files:     h.inspector.Describe(result.State.Files),
	})
}

// HandleListFiles handles POST /api/v1/files. It shows which uploaded files
// would make up the working set without submitting anything.
func (h *SubmissionHandler) HandleListFiles(c *fiber.Ctx) error {
	state, err := h.readForm(c)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"files": h.inspector.Describe(state.Files),
	})
}

func (h *SubmissionHandler) readForm(c *fiber.Ctx) (models.FormState, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return models.FormState{}, fiber.NewError(fiber.StatusBadRequest, "failed to parse multipart form")
	}

	// Size limits apply to the working set only; other types are dropped first.
	selected := h.composer.SelectFiles(h.source.FromMultipart(form.File[resumesField]))
	for _, doc := range selected {
		if h.maxFileSize > 0 && doc.Size > h.maxFileSize {
			return models.FormState{}, fiber.NewError(
				fiber.StatusBadRequest,
				fmt.Sprintf("%s is too large. Max size: %d bytes", doc.Name, h.maxFileSize),
			)
		}
	}

	state := models.FormState{
		Email:           formValue(form, "email"),
		Role:            formValue(form, "role"),
		Name:            formValue(form, "name"),
		CompanyOrSchool: formValue(form, "companyOrSchool"),
	}

	return state.WithFiles(selected), nil
}

func formValue(form *multipart.Form, key string) string {
	values := form.Value[key]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

func echo(state models.FormState) models.FormEcho {
	return models.FormEcho{
		Email:           state.Email,
		Role:            state.Role,
		Name:            state.Name,
		CompanyOrSchool: state.CompanyOrSchool,
	}
}

func statusFor(kind models.OutcomeKind) int {
	switch kind {
	case models.OutcomeSuccess:
		return fiber.StatusAccepted
	case models.OutcomeValidationFailed:
		return fiber.StatusBadRequest
	case models.OutcomeEncodingFailed:
		return fiber.StatusUnprocessableEntity
	case models.OutcomeConfigurationFailed:
		return fiber.StatusServiceUnavailable
	case models.OutcomeInProgress:
		return fiber.StatusConflict
	case models.OutcomeServiceFailed, models.OutcomeTransportFailed:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
