package handlers

import (
	"bytes"
	"errors"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-detector/internal/models"
	"alfredoptarigan/resume-detector/internal/services"
)

type ResultHandler struct {
	viewer    services.ReportViewer
	presenter services.ReportPresenter
}

func NewResultHandler(viewer services.ReportViewer, presenter services.ReportPresenter) *ResultHandler {
	return &ResultHandler{
		viewer:    viewer,
		presenter: presenter,
	}
}

// HandleGetResult handles GET /api/v1/results/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	view := h.viewer.Load(c.UserContext(), c.Params("id"))

	response := models.ReportPageResponse{
		ID:      view.ID,
		Phase:   view.Phase,
		Message: view.Message,
	}

	if view.Phase == models.PhaseLoaded {
		page := h.presenter.Present(view.ID, view.Report)
		response.Page = &page
	}

	return c.Status(viewStatus(view)).JSON(response)
}

// HandleResultPage handles GET /results/:id?
func (h *ResultHandler) HandleResultPage(c *fiber.Ctx) error {
	view := h.viewer.Load(c.UserContext(), c.Params("id"))

	data := resultPageData{Phase: view.Phase, Message: view.Message}
	if view.Phase == models.PhaseLoaded {
		page := h.presenter.Present(view.ID, view.Report)
		data.Page = &page
	}

	var buf bytes.Buffer
	if err := resultPageTmpl.Execute(&buf, data); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render results")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(viewStatus(view)).Send(buf.Bytes())
}

func viewStatus(view models.ReportView) int {
	if view.Phase != models.PhaseError {
		return fiber.StatusOK
	}

	var (
		serviceErr  *models.ServiceError
		notFoundErr *models.NotFoundError
		configErr   *models.ConfigurationError
	)

	switch {
	case errors.As(view.Err, &serviceErr), errors.As(view.Err, &notFoundErr):
		return fiber.StatusNotFound
	case errors.As(view.Err, &configErr):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusBadGateway
	}
}

type resultPageData struct {
	Phase   models.ViewPhase
	Message string
	Page    *models.ReportPage
}

var resultPageTmpl = template.Must(template.New("results").Parse(`<!DOCTYPE html>
<html lang="en"><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width,initial-scale=1">
<title>Resume Analysis Results</title>
<style>
body{font-family:system-ui,sans-serif;max-width:860px;margin:2rem auto;padding:0 1rem;color:#222}
.result-item{border:1px solid #ddd;border-radius:8px;padding:1rem;margin:1rem 0}
.result-header{display:flex;justify-content:space-between}
.result-status{font-weight:600}
.verified{color:#1a7f37}.false{color:#cf222e}.uncertain{color:#9a6700}
.error{color:#cf222e}.source-score{color:#555;font-size:.9em}
</style></head><body><div class="results-page">
{{- if eq .Phase "idle"}}
<div class="loading">No submission selected</div>
{{- else if eq .Phase "error"}}
<div class="error">{{.Message}}</div>
{{- else if .Page}}
{{- with .Page}}
<div class="results-header"><h1>Resume Analysis Results</h1>
<p class="results-subtitle">Submission ID: {{.SubmissionID}}</p></div>
<div class="results-container"><h2>Verification Results</h2>
<div class="results-summary">
<div class="summary-item"><span class="summary-label">Email:</span> <span class="summary-value">{{.Email}}</span></div>
<div class="summary-item"><span class="summary-label">Total Claims Analyzed:</span> <span class="summary-value">{{.ClaimCount}}</span></div>
</div>
<div class="results-list">
{{- range .Claims}}
<div class="result-item">
<div class="result-header"><span class="result-number">Claim #{{.Number}}</span>
<span class="result-status {{.StatusClass}}">{{.StatusLabel}}</span></div>
<div class="result-question"><strong>Question:</strong><p>{{.Question}}</p></div>
<div class="result-answer"><strong>Answer:</strong><p>{{.Answer}}</p></div>
{{- if .EvidenceCount}}
<div class="result-sources"><strong>Top Sources ({{.EvidenceCount}}):</strong>
<div class="sources-list">{{range .Visible}}{{template "source" .}}{{end}}</div>
{{- if .Deferred}}
<details class="more-sources"><summary>{{.MoreLabel}}</summary>
<div class="sources-list">{{range .Deferred}}{{template "source" .}}{{end}}</div></details>
{{- end}}
</div>
{{- end}}
</div>
{{- end}}
</div></div>
{{- end}}
{{- end}}
</div></body></html>
{{define "source"}}<div class="source-item"><span class="source-score">Score: {{.Score}}</span>
{{if .SafeURL}}<a href="{{.URL}}" target="_blank" rel="noopener noreferrer" class="source-link">{{.URL}}</a>{{else}}<span class="source-link">{{.URL}}</span>{{end}}</div>{{end}}`))
