package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"alfredoptarigan/resume-detector/internal/models"
)

type palette struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Border  lipgloss.Color
}

func defaultPalette() palette {
	return palette{
		Primary: lipgloss.Color("#7C3AED"),
		Muted:   lipgloss.Color("#6C7086"),
		Success: lipgloss.Color("#A6E3A1"),
		Warning: lipgloss.Color("#F9E2AF"),
		Error:   lipgloss.Color("#F38BA8"),
		Border:  lipgloss.Color("#45475A"),
	}
}

// renderer formats composer and report output for the terminal.
type renderer struct {
	title     lipgloss.Style
	label     lipgloss.Style
	mutedText lipgloss.Style
	ok        lipgloss.Style
	claim     lipgloss.Style
	statuses  map[string]lipgloss.Style
}

func newRenderer() *renderer {
	p := defaultPalette()

	return &renderer{
		title:     lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		label:     lipgloss.NewStyle().Bold(true),
		mutedText: lipgloss.NewStyle().Foreground(p.Muted),
		ok:        lipgloss.NewStyle().Foreground(p.Success),
		claim: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		statuses: map[string]lipgloss.Style{
			"verified":  lipgloss.NewStyle().Bold(true).Foreground(p.Success),
			"false":     lipgloss.NewStyle().Bold(true).Foreground(p.Error),
			"uncertain": lipgloss.NewStyle().Bold(true).Foreground(p.Warning),
		},
	}
}

func (r *renderer) muted(s string) string {
	return r.mutedText.Render(s)
}

func (r *renderer) success(s string) string {
	return r.ok.Render(s)
}

func (r *renderer) files(items []models.FileListItem) string {
	if len(items) == 0 {
		return r.muted("No PDF files selected") + "\n"
	}

	var b strings.Builder
	for _, item := range items {
		b.WriteString("  " + item.Label)
		if item.Pages > 0 {
			b.WriteString(r.muted(fmt.Sprintf(" %d page(s)", item.Pages)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (r *renderer) report(page models.ReportPage, showAll bool) string {
	var b strings.Builder

	b.WriteString(r.title.Render("Resume Analysis Results") + "\n")
	b.WriteString(r.muted("Submission ID: "+page.SubmissionID) + "\n\n")
	b.WriteString(r.label.Render("Email:") + " " + page.Email + "\n")
	b.WriteString(r.label.Render("Total Claims Analyzed:") + " " + fmt.Sprint(page.ClaimCount) + "\n")

	for _, claim := range page.Claims {
		b.WriteString(r.claim.Render(r.claimBody(claim, showAll)) + "\n")
	}
	return b.String()
}

func (r *renderer) claimBody(claim models.ClaimView, showAll bool) string {
	status, ok := r.statuses[claim.StatusClass]
	if !ok {
		status = r.label
	}

	lines := []string{
		fmt.Sprintf("Claim #%d  %s", claim.Number, status.Render(claim.StatusLabel)),
		r.label.Render("Question:") + " " + claim.Question,
		r.label.Render("Answer:") + " " + claim.Answer,
	}

	if claim.EvidenceCount > 0 {
		lines = append(lines, r.label.Render(fmt.Sprintf("Top Sources (%d):", claim.EvidenceCount)))
		lines = append(lines, r.sources(claim.Visible)...)

		if len(claim.Deferred) > 0 {
			if showAll {
				lines = append(lines, r.sources(claim.Deferred)...)
			} else {
				lines = append(lines, r.muted(claim.MoreLabel+" (use --all)"))
			}
		}
	}

	return strings.Join(lines, "\n")
}

func (r *renderer) sources(evidence []models.EvidenceView) []string {
	lines := make([]string, 0, len(evidence))
	for _, e := range evidence {
		lines = append(lines, fmt.Sprintf("  Score: %s  %s", e.Score, e.URL))
	}
	return lines
}
