package models

// Labels the analysis service uses for its verdicts. Matching is exact and case-sensitive.
const (
	LabelVerified = "Verified"
	LabelUnsure   = "Unsure"
	LabelBullshit = "Bullsh*t"
)

type VerificationStatus string

const (
	StatusVerified VerificationStatus = "verified"
	StatusBullshit VerificationStatus = "bullshit"
	StatusUnsure   VerificationStatus = "unsure"
)

// Evidence is one scored source. Score is in [0,1].
type Evidence struct {
	URL   string  `json:"url"`
	Score float64 `json:"score"`
}

// Claim is one checked fact. Results keeps the service's ranking.
type Claim struct {
	Question     string     `json:"question"`
	Answer       string     `json:"answer"`
	Verification string     `json:"verification,omitempty"`
	Results      []Evidence `json:"results"`
}

type Report struct {
	Email   string  `json:"email"`
	Results []Claim `json:"results"`
}

// ReportEnvelope is the body returned by the results lookup endpoint.
type ReportEnvelope struct {
	Result *Report `json:"result,omitempty"`
}

type ViewPhase string

const (
	PhaseIdle    ViewPhase = "idle"
	PhaseLoading ViewPhase = "loading"
	PhaseLoaded  ViewPhase = "loaded"
	PhaseError   ViewPhase = "error"
)

// ReportView is the state of the report viewer for one submission id.
// Loaded and Error are terminal for that id.
type ReportView struct {
	ID      string
	Phase   ViewPhase
	Report  *Report
	Message string
	Err     error
}
