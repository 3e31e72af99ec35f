package services

import (
	"fmt"
	"log"
	"strings"

	"alfredoptarigan/resume-detector/internal/models"
)

// Classify maps a verification label to its status. Only the three canonical
// labels match, case-sensitively; anything else is Unsure.
func Classify(label string) models.VerificationStatus {
	switch label {
	case models.LabelVerified:
		return models.StatusVerified
	case models.LabelBullshit:
		return models.StatusBullshit
	case models.LabelUnsure:
		return models.StatusUnsure
	default:
		return models.StatusUnsure
	}
}

func IsCanonicalLabel(label string) bool {
	switch label {
	case models.LabelVerified, models.LabelBullshit, models.LabelUnsure:
		return true
	}
	return false
}

// LegacyLabel derives a label from a free-text answer. It exists only to
// migrate reports produced before the service sent an explicit verification field.
func LegacyLabel(answer string) string {
	lower := strings.ToLower(strings.TrimSpace(answer))
	switch {
	case strings.HasPrefix(lower, "yes"):
		return models.LabelVerified
	case strings.Contains(lower, "no evidence"),
		strings.Contains(lower, "no available"),
		strings.Contains(lower, "no record"):
		return models.LabelUnsure
	case strings.HasPrefix(lower, "no"):
		return models.LabelBullshit
	default:
		return models.LabelUnsure
	}
}

// Classifier applies the configured schema and strictness on top of Classify.
// Strict mode reports labels outside the canonical set instead of quietly
// treating them as Unsure.
type Classifier struct {
	strict bool
	legacy bool
}

func NewClassifier(strict, legacy bool) *Classifier {
	return &Classifier{strict: strict, legacy: legacy}
}

// Normalize returns a copy of the report in the canonical schema. With the
// legacy schema enabled, claims without a verification label get one derived
// from their answer.
func (c *Classifier) Normalize(report *models.Report) *models.Report {
	if report == nil {
		return nil
	}

	out := *report
	out.Results = make([]models.Claim, len(report.Results))
	copy(out.Results, report.Results)

	if !c.legacy {
		return &out
	}

	for i := range out.Results {
		if out.Results[i].Verification != "" {
			continue
		}
		label := LegacyLabel(out.Results[i].Answer)
		log.Printf("⚠️  Migrating legacy claim #%d to label %q", i+1, label)
		out.Results[i].Verification = label
	}

	return &out
}

// Check fails on the first non-canonical label when strict mode is on.
func (c *Classifier) Check(report *models.Report) error {
	if !c.strict || report == nil {
		return nil
	}

	for i, claim := range report.Results {
		if !IsCanonicalLabel(claim.Verification) {
			return fmt.Errorf("%w %q on claim #%d", models.ErrUnknownLabel, claim.Verification, i+1)
		}
	}
	return nil
}

func (c *Classifier) Status(claim models.Claim) models.VerificationStatus {
	return Classify(claim.Verification)
}
