package models

// SubmissionResponse is returned by POST /api/v1/submissions.
type SubmissionResponse struct {
	AttemptID string         `json:"attempt_id"`
	Outcome   string         `json:"outcome"`
	Notice    Notice         `json:"notice"`
	Form      FormEcho       `json:"form"`
	Files     []FileListItem `json:"files"`
}

// FormEcho is the form state handed back so the client can keep its fields.
type FormEcho struct {
	Email           string `json:"email"`
	Role            string `json:"role,omitempty"`
	Name            string `json:"name,omitempty"`
	CompanyOrSchool string `json:"companyOrSchool,omitempty"`
}

// FileListItem describes one accepted file in the working set.
type FileListItem struct {
	Name   string  `json:"name"`
	SizeKB float64 `json:"size_kb"`
	Pages  int     `json:"pages,omitempty"`
	Label  string  `json:"label"`
}

// ReportPage is the render-ready projection of a loaded report.
type ReportPage struct {
	SubmissionID string      `json:"submission_id"`
	Email        string      `json:"email"`
	ClaimCount   int         `json:"claim_count"`
	Claims       []ClaimView `json:"claims"`
}

type ClaimView struct {
	Number        int                `json:"number"`
	Status        VerificationStatus `json:"status"`
	StatusClass   string             `json:"status_class"`
	StatusLabel   string             `json:"status_label"`
	Question      string             `json:"question"`
	Answer        string             `json:"answer"`
	EvidenceCount int                `json:"evidence_count"`
	Visible       []EvidenceView     `json:"visible"`
	Deferred      []EvidenceView     `json:"deferred"`
	MoreLabel     string             `json:"more_label,omitempty"`
}

type EvidenceView struct {
	URL     string `json:"url"`
	SafeURL bool   `json:"safe_url"`
	Score   string `json:"score"`
}

// ReportPageResponse is returned by GET /api/v1/results/:id.
type ReportPageResponse struct {
	ID      string      `json:"id"`
	Phase   ViewPhase   `json:"phase"`
	Message string      `json:"message,omitempty"`
	Page    *ReportPage `json:"page,omitempty"`
}
