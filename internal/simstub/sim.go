package simstub

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sohamshetty07/oraculum-core/internal/model"
)

// runSimulation drives one job from roster seeding to completion. Grid
// scenarios fan agent responses out over a bounded worker set; the feed
// scenario runs three sequential debate rounds, re-publishing the full
// transcript after each.
func (s *Server) runSimulation(job *Job, req model.SubmitRequest) {
	slog.Info("Stub simulation started",
		"job_id", job.ID,
		"scenario", string(req.Scenario),
		"agents", req.AgentCount,
	)

	roster := makeRoster(req.AgentCount)
	time.Sleep(s.step)
	job.seedRoster(roster)

	if req.Scenario.Feed() {
		s.runFocusGroup(job, roster, req.ProductName)
	} else {
		s.runGrid(job, roster, req.ProductName)
	}

	job.complete()
	slog.Info("Stub simulation completed", "job_id", job.ID)
}

func makeRoster(count int) []rosterRecord {
	roster := make([]rosterRecord, 0, count)
	for i := 0; i < count; i++ {
		name := personaNames[i%len(personaNames)]
		if i >= len(personaNames) {
			name = fmt.Sprintf("%s %d", name, i/len(personaNames)+1)
		}
		roster = append(roster, rosterRecord{
			ID:          i + 1,
			Role:        name,
			Demographic: personaRoles[i%len(personaRoles)] + ", " + personaDemographics[i%len(personaDemographics)],
		})
	}
	return roster
}

// runGrid produces one response per agent, concurrently but rate-limited by
// the worker count, publishing each result as it lands.
func (s *Server) runGrid(job *Job, roster []rosterRecord, product string) {
	indices := make(chan int)
	var wg sync.WaitGroup

	var mu sync.Mutex
	done := 0
	total := len(roster)

	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				time.Sleep(s.step)
				result := makeResult(roster[i], product, "")

				mu.Lock()
				done++
				progress := 0.25 + 0.75*float64(done)/float64(total)
				mu.Unlock()

				job.addResult(result, progress)
			}
		}()
	}

	for i := range roster {
		indices <- i
	}
	close(indices)
	wg.Wait()
}

// runFocusGroup runs three debate rounds. Each round appends one message per
// participant to the transcript and re-publishes the whole transcript, which
// is what the client's replace policy expects.
func (s *Server) runFocusGroup(job *Job, roster []rosterRecord, product string) {
	var transcript []resultRecord

	for round := 1; round <= 3; round++ {
		for _, participant := range roster {
			transcript = append(transcript, makeResult(participant, product, fmt.Sprintf("Round %d", round)))
		}

		published := make([]resultRecord, len(transcript))
		copy(published, transcript)
		job.setTranscript(published, 0.25+0.25*float64(round))

		time.Sleep(s.step)
	}
}

func makeResult(participant rosterRecord, product, category string) resultRecord {
	template := responseTemplates[(participant.ID-1)%len(responseTemplates)]
	response := fmt.Sprintf(template.text, product)

	return resultRecord{
		AgentID:          participant.ID,
		AgentRole:        participant.Role,
		AgentDemographic: participant.Demographic,
		Response:         response,
		ThoughtProcess:   template.thought,
		Sentiment:        classifySentiment(response),
		Category:         category,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	}
}

// buildReport synthesizes a canned executive summary from the job's results.
func buildReport(job *Job) string {
	payload := job.snapshot()

	tally := map[string]int{}
	for _, r := range payload.Results {
		tally[r.Sentiment]++
	}
	total := len(payload.Results)
	consensus := 0
	if total > 0 {
		consensus = 100 * tally["positive"] / total
	}

	return fmt.Sprintf(
		"Executive Summary: %s\n\n"+
			"Scenario: %s\n"+
			"Responses analyzed: %d\n"+
			"Consensus score: %d%%\n"+
			"Sentiment split: %d positive / %d negative / %d neutral\n\n"+
			"Key themes: price sensitivity, habit fit, durability doubts.\n"+
			"Actionable insights: lead with the habit-fit message, address the "+
			"price anchor head-on, and publish durability proof points.\n",
		job.ProductName,
		job.Scenario,
		total,
		consensus,
		tally["positive"], tally["negative"], tally["neutral"],
	)
}
