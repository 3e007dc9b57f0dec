package model

// Sentiment tags recognized in result records. The backend occasionally emits
// other labels (e.g. "active" during live rounds); those pass through as-is.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// DefaultRole is used when no role alias is present on a record by the time
// it first enters the view model.
const DefaultRole = "Participant"

// AgentRecord is the canonical form of one participant record after
// normalization. Optional fields are pointers: nil means the backend has not
// produced the field yet, which is distinct from an explicitly empty value.
type AgentRecord struct {
	ID             string
	Role           *string
	Demographic    *string
	Response       *string
	ThoughtProcess *string
	Sources        *string
	Sentiment      *string
	Category       *string
	Timestamp      *string
}

// RoleLabel returns the display role, falling back to DefaultRole.
func (r *AgentRecord) RoleLabel() string {
	if r.Role != nil {
		return *r.Role
	}
	return DefaultRole
}

// DemographicLabel returns the display demographic, falling back to empty.
func (r *AgentRecord) DemographicLabel() string {
	if r.Demographic != nil {
		return *r.Demographic
	}
	return ""
}

// Merge returns a record whose fields are the union of r and next: any field
// present in next wins, any field absent in next is retained from r. The ID
// is taken from r; callers only merge records with equal IDs.
func (r AgentRecord) Merge(next AgentRecord) AgentRecord {
	out := r
	if next.Role != nil {
		out.Role = next.Role
	}
	if next.Demographic != nil {
		out.Demographic = next.Demographic
	}
	if next.Response != nil {
		out.Response = next.Response
	}
	if next.ThoughtProcess != nil {
		out.ThoughtProcess = next.ThoughtProcess
	}
	if next.Sources != nil {
		out.Sources = next.Sources
	}
	if next.Sentiment != nil {
		out.Sentiment = next.Sentiment
	}
	if next.Category != nil {
		out.Category = next.Category
	}
	if next.Timestamp != nil {
		out.Timestamp = next.Timestamp
	}
	return out
}

// StringPtr is a convenience for building records with optional fields.
func StringPtr(s string) *string {
	return &s
}

// Deref returns the pointed-to string or empty when absent.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
