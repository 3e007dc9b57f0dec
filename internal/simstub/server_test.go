package simstub_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohamshetty07/oraculum-core/internal/controller"
	"github.com/sohamshetty07/oraculum-core/internal/model"
	"github.com/sohamshetty07/oraculum-core/internal/service"
	"github.com/sohamshetty07/oraculum-core/internal/simstub"
	"github.com/sohamshetty07/oraculum-core/pkg/middleware"
)

func newStub(t *testing.T) *service.Client {
	t.Helper()
	stub := simstub.NewServer(simstub.Options{StepInterval: time.Millisecond, Workers: 2})
	server := httptest.NewServer(stub.Router(middleware.CORSConfig{
		AllowedOrigins: "*",
		AllowedMethods: "GET, POST, OPTIONS",
		AllowedHeaders: "*",
	}))
	t.Cleanup(server.Close)
	return service.NewClient(server.URL, 5*time.Second)
}

func awaitCompletion(t *testing.T, client *service.Client, handle model.JobHandle) *model.StatusSnapshot {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		snapshot, err := client.Status(context.Background(), handle)
		require.NoError(t, err)
		if snapshot.Terminal() {
			return snapshot
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("stub job did not complete in time")
	return nil
}

func TestStub_GridLifecycle(t *testing.T) {
	client := newStub(t)

	handle, err := client.Submit(context.Background(), model.SubmitRequest{
		Scenario:       model.ScenarioProductLaunch,
		ProductName:    "Nimbus Cold Brew",
		TargetAudience: "urban commuters",
		AgentCount:     3,
	})
	require.NoError(t, err)
	require.NotEmpty(t, handle)

	snapshot := awaitCompletion(t, client, handle)
	require.NotNil(t, snapshot.Progress)
	assert.Equal(t, 1.0, *snapshot.Progress)
	assert.Len(t, snapshot.Agents, 3)
	assert.Len(t, snapshot.Results, 3)

	report, err := client.Analyze(context.Background(), handle)
	require.NoError(t, err)
	assert.Contains(t, report, "Executive Summary: Nimbus Cold Brew")
	assert.Contains(t, report, "Responses analyzed: 3")
}

func TestStub_FeedTranscriptGrowsByRound(t *testing.T) {
	client := newStub(t)

	handle, err := client.Submit(context.Background(), model.SubmitRequest{
		Scenario:       model.ScenarioFocusGroup,
		ProductName:    "Nimbus Cold Brew",
		TargetAudience: "urban commuters",
		AgentCount:     2,
	})
	require.NoError(t, err)

	snapshot := awaitCompletion(t, client, handle)
	require.Len(t, snapshot.Results, 6, "2 participants across 3 rounds")
}

func TestStub_RejectsBadRequests(t *testing.T) {
	client := newStub(t)

	_, err := client.Submit(context.Background(), model.SubmitRequest{
		Scenario:   "time_travel",
		AgentCount: 2,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrSubmission)

	_, err = client.Status(context.Background(), "missing-job")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrPoll)

	_, err = client.Analyze(context.Background(), "missing-job")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrAnalysis)
}

// Full pipeline against the stub: the real poll loop drives the controller to
// completion and the reconciled view model matches the stub's roster.
func TestStub_EndToEndWithController(t *testing.T) {
	client := newStub(t)

	c := controller.New(client, time.Second)
	t.Cleanup(c.Stop)

	require.NoError(t, c.Submit(context.Background(), model.SubmitRequest{
		Scenario:       model.ScenarioCreativeTest,
		ProductName:    "Nimbus Cold Brew",
		TargetAudience: "urban commuters",
		AgentCount:     2,
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, c.Wait(ctx))

	assert.Equal(t, model.StateCompleted, c.State())
	assert.Equal(t, 100, c.Progress())

	records := c.Records()
	require.Len(t, records, 2)
	for _, record := range records {
		assert.NotEmpty(t, record.ID)
		assert.NotEqual(t, "", record.RoleLabel())
		assert.NotNil(t, record.Response, "every agent responded")
	}

	analyst := service.NewAnalyst(client)
	report, err := analyst.RequestReport(context.Background(), c.Handle(), c.Completed())
	require.NoError(t, err)
	assert.Contains(t, report, "Executive Summary")

	stored, ok := analyst.Report()
	require.True(t, ok)
	assert.Equal(t, report, stored)
}

func TestAnalyst_NotReadyBeforeCompletion(t *testing.T) {
	client := newStub(t)
	analyst := service.NewAnalyst(client)

	_, err := analyst.RequestReport(context.Background(), "whatever", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotReady)
}
