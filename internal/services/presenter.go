package services

import (
	"fmt"
	"html"
	"net/url"

	"github.com/microcosm-cc/bluemonday"

	"alfredoptarigan/resume-detector/internal/models"
)

// VisibleEvidence is how many sources per claim are shown before the disclosure.
const VisibleEvidence = 2

type EvidencePartition struct {
	Visible  []models.Evidence
	Deferred []models.Evidence
}

// PartitionEvidence splits a claim's evidence without reordering it.
func PartitionEvidence(claim models.Claim) EvidencePartition {
	if len(claim.Results) <= VisibleEvidence {
		return EvidencePartition{Visible: claim.Results}
	}
	return EvidencePartition{
		Visible:  claim.Results[:VisibleEvidence],
		Deferred: claim.Results[VisibleEvidence:],
	}
}

type ReportPresenter interface {
	Present(id string, report *models.Report) models.ReportPage
}

type reportPresenter struct {
	classifier *Classifier
	policy     *bluemonday.Policy
}

func NewReportPresenter(classifier *Classifier) ReportPresenter {
	return &reportPresenter{
		classifier: classifier,
		policy:     bluemonday.StrictPolicy(),
	}
}

// Present implements ReportPresenter.
func (p *reportPresenter) Present(id string, report *models.Report) models.ReportPage {
	page := models.ReportPage{SubmissionID: id, Claims: []models.ClaimView{}}
	if report == nil {
		return page
	}

	page.Email = report.Email
	page.ClaimCount = len(report.Results)

	for i, claim := range report.Results {
		status := p.classifier.Status(claim)
		parts := PartitionEvidence(claim)

		view := models.ClaimView{
			Number:        i + 1,
			Status:        status,
			StatusClass:   statusClass(status),
			StatusLabel:   statusLabel(status),
			Question:      p.plainText(claim.Question),
			Answer:        p.plainText(claim.Answer),
			EvidenceCount: len(claim.Results),
			Visible:       evidenceViews(parts.Visible),
			Deferred:      evidenceViews(parts.Deferred),
		}
		if n := len(parts.Deferred); n > 0 {
			view.MoreLabel = fmt.Sprintf("Show %d more sources", n)
		}

		page.Claims = append(page.Claims, view)
	}

	return page
}

// plainText strips any markup the service let through. Entities are decoded
// again because the template layer escapes on output.
func (p *reportPresenter) plainText(s string) string {
	return html.UnescapeString(p.policy.Sanitize(s))
}

func evidenceViews(evidence []models.Evidence) []models.EvidenceView {
	views := make([]models.EvidenceView, 0, len(evidence))
	for _, e := range evidence {
		views = append(views, models.EvidenceView{
			URL:     e.URL,
			SafeURL: isSafeURL(e.URL),
			Score:   FormatScore(e.Score),
		})
	}
	return views
}

// FormatScore renders a [0,1] score as a percentage with one decimal.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}

func statusClass(status models.VerificationStatus) string {
	switch status {
	case models.StatusVerified:
		return "verified"
	case models.StatusBullshit:
		return "false"
	default:
		return "uncertain"
	}
}

func statusLabel(status models.VerificationStatus) string {
	switch status {
	case models.StatusVerified:
		return "✓ Verified"
	case models.StatusBullshit:
		return "✗ Bullsh*t"
	default:
		return "? Unsure"
	}
}

func isSafeURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
