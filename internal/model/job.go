package model

import (
	"errors"
	"fmt"
)

// Scenario identifies the simulation mode requested for a job.
type Scenario string

const (
	ScenarioProductLaunch Scenario = "product_launch"
	ScenarioFocusGroup    Scenario = "focus_group"
	ScenarioABMessaging   Scenario = "ab_messaging"
	ScenarioCreativeTest  Scenario = "creative_test"
	ScenarioCXFlow        Scenario = "cx_flow"
)

// Scenarios lists all supported scenario types.
var Scenarios = []Scenario{
	ScenarioProductLaunch,
	ScenarioFocusGroup,
	ScenarioABMessaging,
	ScenarioCreativeTest,
	ScenarioCXFlow,
}

// Valid reports whether s is a known scenario type.
func (s Scenario) Valid() bool {
	for _, known := range Scenarios {
		if s == known {
			return true
		}
	}
	return false
}

// Feed reports whether the scenario streams a full transcript each poll
// (replace semantics) rather than incremental per-agent results (upsert
// semantics).
func (s Scenario) Feed() bool {
	return s == ScenarioFocusGroup
}

// JobConfig describes one simulation run. It is immutable once submitted.
type JobConfig struct {
	Scenario       Scenario `yaml:"scenario" json:"scenario"`
	ProductName    string   `yaml:"product_name" json:"productName"`
	TargetAudience string   `yaml:"target_audience" json:"targetAudience"`
	Context        string   `yaml:"context" json:"context"`
	AgentCount     int      `yaml:"agent_count" json:"agentCount"`

	// Optional attachment file paths, resolved and base64-encoded by the
	// caller at submit time.
	ImagePath string `yaml:"image_path,omitempty" json:"-"`
	PDFPath   string `yaml:"pdf_path,omitempty" json:"-"`
}

// Validate checks the configuration before submission.
func (c *JobConfig) Validate() error {
	if !c.Scenario.Valid() {
		return fmt.Errorf("unknown scenario %q (valid: %v)", c.Scenario, Scenarios)
	}
	if c.ProductName == "" {
		return errors.New("product_name is required")
	}
	if c.TargetAudience == "" {
		return errors.New("target_audience is required")
	}
	if c.AgentCount <= 0 {
		return errors.New("agent_count must be positive")
	}
	if c.AgentCount > 100 {
		return errors.New("agent_count must be 100 or less")
	}
	return nil
}

// JobHandle is the opaque identifier returned by submission and used for all
// subsequent polling.
type JobHandle string

// LifecycleState tracks a job through its one-way lifecycle.
type LifecycleState string

const (
	StateIdle       LifecycleState = "idle"
	StateProcessing LifecycleState = "processing"
	StateCompleted  LifecycleState = "completed"
)
