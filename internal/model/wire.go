package model

// Wire payloads for the simulation API. Roster and result entries are left
// untyped here: their field names drift across backend versions, so they are
// decoded generically and resolved into AgentRecord by the normalizer.

// SubmitRequest is the body of POST /api/simulate.
type SubmitRequest struct {
	Scenario       Scenario `json:"scenario"`
	ProductName    string   `json:"productName"`
	TargetAudience string   `json:"targetAudience"`
	Context        string   `json:"context"`
	AgentCount     int      `json:"agentCount"`
	ImageData      string   `json:"imageData,omitempty"`
	PDFData        string   `json:"pdfData,omitempty"`
}

// SubmitResponse is the body returned by POST /api/simulate.
type SubmitResponse struct {
	JobID string `json:"jobId"`
}

// StatusSnapshot is one poll response from GET /api/status/{jobID}.
type StatusSnapshot struct {
	Status   string   `json:"status"`
	Progress *float64 `json:"progress,omitempty"`
	Agents   []any    `json:"agents,omitempty"`
	Results  []any    `json:"results,omitempty"`
}

// Terminal reports whether the snapshot declares the job finished.
func (s *StatusSnapshot) Terminal() bool {
	return s.Status == "completed"
}

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	JobID string `json:"jobId"`
}

// AnalyzeResponse is the body returned by POST /api/analyze.
type AnalyzeResponse struct {
	Report string `json:"report"`
}
