package models

import (
	"time"

	"github.com/google/uuid"
)

type TurnOutcome string

const (
	TurnOutcomeAnswered       TurnOutcome = "answered"
	TurnOutcomeIterationLimit TurnOutcome = "iteration_limit"
	TurnOutcomeModelFailure   TurnOutcome = "model_failure"
	TurnOutcomeCancelled      TurnOutcome = "cancelled"
)

// AgentStep is one decision of the agent loop and what came of it.
type AgentStep struct {
	Tool   string `json:"tool,omitempty"`
	Input  string `json:"input,omitempty"`
	Output string `json:"output"`

	// Raw model output the decision was parsed from
	Raw string `json:"raw,omitempty"`

	// Malformed is set when the model output could not be parsed; Output
	// then holds the observation fed back to the model.
	Malformed bool `json:"malformed,omitempty"`
}

// AgentTurn is the transient record of handling one user utterance.
// It is logged and discarded, never persisted.
type AgentTurn struct {
	ID        uuid.UUID   `json:"id"`
	Utterance string      `json:"utterance"`
	Steps     []AgentStep `json:"steps,omitempty"`
	Response  string      `json:"response"`
	Outcome   TurnOutcome `json:"outcome"`
	Started   time.Time   `json:"started"`
	Finished  time.Time   `json:"finished"`
}

func NewAgentTurn(utterance string) *AgentTurn {
	return &AgentTurn{
		ID:        uuid.New(),
		Utterance: utterance,
		Steps:     []AgentStep{},
		Started:   time.Now(),
	}
}

func (t *AgentTurn) AddStep(step AgentStep) {
	t.Steps = append(t.Steps, step)
}

func (t *AgentTurn) Finish(outcome TurnOutcome, response string) *AgentTurn {
	t.Outcome = outcome
	t.Response = response
	t.Finished = time.Now()
	return t
}

func (t *AgentTurn) Duration() time.Duration {
	return t.Finished.Sub(t.Started)
}

// LastStep returns the most recent step, if any.
func (t *AgentTurn) LastStep() (AgentStep, bool) {
	if len(t.Steps) == 0 {
		return AgentStep{}, false
	}
	return t.Steps[len(t.Steps)-1], true
}
