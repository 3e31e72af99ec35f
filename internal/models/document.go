package models

import (
	"io"
	"strings"
)

// Document is one file offered to the composer. Open is called once per
// submission attempt, so it must return a fresh reader every time.
type Document struct {
	Name      string
	MediaType string
	Size      int64
	Open      func() (io.ReadCloser, error)
}

// SizeKB matches the size shown next to each file in the working-set listing.
func (d Document) SizeKB() float64 {
	return float64(d.Size) / 1024
}

// FormState is the composer form as an immutable value. Methods return a new
// state instead of mutating the receiver.
type FormState struct {
	Email           string
	Role            string
	Name            string
	CompanyOrSchool string
	Files           []Document
}

// WithFiles replaces the working set. It never accumulates across calls.
func (f FormState) WithFiles(files []Document) FormState {
	next := f
	next.Files = append([]Document(nil), files...)
	return next
}

// ClearFiles drops the working set and keeps every text field.
func (f FormState) ClearFiles() FormState {
	next := f
	next.Files = nil
	return next
}

// SessionKey identifies the person composing, used by the in-flight guard.
func (f FormState) SessionKey() string {
	return strings.ToLower(strings.TrimSpace(f.Email))
}

// SubmissionPayload is the JSON body posted to the analysis service.
type SubmissionPayload struct {
	Email           string   `json:"email"`
	Resumes         []string `json:"resumes"`
	Role            string   `json:"role,omitempty"`
	Name            string   `json:"name,omitempty"`
	CompanyOrSchool string   `json:"companyOrSchool,omitempty"`
}

type OutcomeKind string

const (
	OutcomeSuccess             OutcomeKind = "success"
	OutcomeValidationFailed    OutcomeKind = "validation_failed"
	OutcomeEncodingFailed      OutcomeKind = "encoding_failed"
	OutcomeConfigurationFailed OutcomeKind = "configuration_failed"
	OutcomeServiceFailed       OutcomeKind = "service_failed"
	OutcomeTransportFailed     OutcomeKind = "transport_failed"
	OutcomeInProgress          OutcomeKind = "in_progress"
)

// Notice is what the user sees once a submission resolves. Blocking notices
// need acknowledgement; informational ones do not.
type Notice struct {
	Message  string `json:"message"`
	Blocking bool   `json:"blocking"`
}

// SubmitResult is the terminal outcome of one submission attempt together with
// the form state the caller should continue from.
type SubmitResult struct {
	AttemptID string
	Kind      OutcomeKind
	State     FormState
	Notice    Notice
	Err       error
}

func (r SubmitResult) OK() bool {
	return r.Kind == OutcomeSuccess
}
