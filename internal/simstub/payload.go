package simstub

import "strings"

// rosterRecord is a placeholder participant, emitted before any response is
// produced.
type rosterRecord struct {
	ID          int    `json:"id"`
	Role        string `json:"role"`
	Demographic string `json:"demographic"`
}

// resultRecord is one produced response. Field names follow the current wire
// format; the client normalizer also tolerates older snake_case payloads.
type resultRecord struct {
	AgentID          int    `json:"agentId"`
	AgentRole        string `json:"agentRole"`
	AgentDemographic string `json:"agentDemographic"`
	Response         string `json:"response"`
	ThoughtProcess   string `json:"thoughtProcess,omitempty"`
	Sentiment        string `json:"sentiment"`
	Category         string `json:"category,omitempty"`
	Timestamp        string `json:"timestamp"`
}

// statusPayload is the body of GET /api/status/{jobID}.
type statusPayload struct {
	Status   string         `json:"status"`
	Progress float64        `json:"progress"`
	Agents   []rosterRecord `json:"agents,omitempty"`
	Results  []resultRecord `json:"results,omitempty"`
}

// Persona pools for generated rosters.
var (
	personaNames = []string{"Ravi", "Mei", "Jonas", "Amara", "Tom", "Lucia", "Kofi", "Elena"}
	personaRoles = []string{
		"Early Adopter", "Skeptic", "Bargain Hunter",
		"Brand Loyalist", "Trend Follower", "Pragmatist",
	}
	personaDemographics = []string{
		"Urban, 25-34", "Suburban, 35-44", "Rural, 45-54",
		"Urban, 18-24", "Suburban, 55-64",
	}
)

// responseTemplates keys on whether the agent index leans positive, negative,
// or neutral, cycling deterministically through the roster.
var responseTemplates = []struct {
	sentiment string
	text      string
	thought   string
}{
	{"positive", "I love the concept of %s, it fits how I already shop.", "The framing matches my existing habits, low switching cost."},
	{"negative", "Honestly %s feels overpriced for what it offers.", "Price anchoring against my usual brand makes this a hard sell."},
	{"neutral", "I'd need to try %s before forming an opinion.", "Not enough information to commit either way."},
	{"positive", "Great timing, %s solves a problem I complain about weekly.", "Pain point recognition drives my interest here."},
	{"negative", "My concern with %s is durability, I've been burned before.", "Past category failures raise my skepticism."},
}

// classifySentiment tags free text with a coarse sentiment label.
func classifySentiment(text string) string {
	lower := strings.ToLower(text)
	for _, word := range []string{"love", "great", "excellent", "amazing"} {
		if strings.Contains(lower, word) {
			return "positive"
		}
	}
	for _, word := range []string{"hate", "overpriced", "concern", "bad", "burned"} {
		if strings.Contains(lower, word) {
			return "negative"
		}
	}
	return "neutral"
}
