package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/artemis-io/agent/internal/llm"
	"github.com/artemis-io/agent/internal/models"
)

// DefaultMaxIterations bounds the number of model decisions per turn.
const DefaultMaxIterations = 3

// UnboundedIterationCeiling caps a turn when no bound is configured.
const UnboundedIterationCeiling = 15

type state string

const (
	stateAwaitingDecision state = "awaiting_decision"
	stateToolSelected     state = "tool_selected"
	stateToolExecuted     state = "tool_executed"
	stateDone             state = "done"
)

// Toolbox is the fixed set of tools the model can choose from.
type Toolbox interface {
	Descriptors() []models.ToolDescriptor
	Invoke(ctx context.Context, name string, input string) string
}

type Agent struct {
	model         llm.Model
	tools         Toolbox
	maxIterations int
}

type Option func(*Agent)

// WithMaxIterations sets the step bound. Zero or less leaves termination
// to the model, up to UnboundedIterationCeiling.
func WithMaxIterations(n int) Option {
	return func(a *Agent) {
		a.maxIterations = n
	}
}

func New(model llm.Model, tools Toolbox, opts ...Option) *Agent {
	a := &Agent{
		model:         model,
		tools:         tools,
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Agent) GetMaxIterations() int {
	return a.maxIterations
}

// Respond runs a turn and returns only the reply text.
func (a *Agent) Respond(ctx context.Context, utterance string) string {
	return a.Run(ctx, utterance).Response
}

// Run handles one utterance. Every failure ends up as text in the
// returned turn; Run never returns an error.
func (a *Agent) Run(ctx context.Context, utterance string) *models.AgentTurn {

	turn := models.NewAgentTurn(utterance)
	descriptors := a.tools.Descriptors()

	log := logrus.WithFields(logrus.Fields{
		"turn":  turn.ID.String(),
		"model": a.model.GetModelName(),
	})

	log.WithField("utterance", utterance).Debug("Starting agent turn")

	limit := a.maxIterations
	if limit <= 0 {
		limit = UnboundedIterationCeiling
	}

	for iter := 0; iter < limit; iter++ {

		if err := ctx.Err(); err != nil {
			return a.finish(log, turn, models.TurnOutcomeCancelled, models.Failure("Request cancelled."))
		}

		log.WithFields(logrus.Fields{
			"step":  iter,
			"state": stateAwaitingDecision,
		}).Trace("Awaiting model decision")

		decision, err := a.model.Decide(ctx, &llm.Request{
			Utterance: utterance,
			Tools:     descriptors,
			Steps:     turn.Steps,
		})

		if err != nil {

			var malformed *models.MalformedOutputError

			if errors.As(err, &malformed) {
				log.WithFields(logrus.Fields{
					"step":   iter,
					"reason": malformed.Reason,
				}).Warn("Model output could not be parsed")

				turn.AddStep(models.AgentStep{
					Output:    fmt.Sprintf("Invalid Format: %s", malformed.Reason),
					Raw:       malformed.Output,
					Malformed: true,
				})
				continue
			}

			if ctx.Err() != nil {
				return a.finish(log, turn, models.TurnOutcomeCancelled, models.Failure("Request cancelled."))
			}

			log.WithError(err).Error("Language model call failed")

			return a.finish(log, turn, models.TurnOutcomeModelFailure,
				models.Failure("Failed to reach the language model: %v", err))
		}

		if decision.Final {
			return a.finish(log, turn, models.TurnOutcomeAnswered, finalAnswer(turn, decision))
		}

		log.WithFields(logrus.Fields{
			"step":  iter,
			"state": stateToolSelected,
			"tool":  decision.Tool,
			"input": decision.Input,
		}).Debug("Model selected a tool")

		output := a.tools.Invoke(ctx, decision.Tool, decision.Input)

		turn.AddStep(models.AgentStep{
			Tool:   decision.Tool,
			Input:  decision.Input,
			Output: output,
			Raw:    decision.Raw,
		})

		log.WithFields(logrus.Fields{
			"step":   iter,
			"state":  stateToolExecuted,
			"tool":   decision.Tool,
			"output": output,
		}).Debug("Tool executed")
	}

	log.WithError(models.ErrIterationLimitReached).
		WithField("max_iterations", limit).
		Warn("Agent stopped without a final answer")

	return a.finish(log, turn, models.TurnOutcomeIterationLimit,
		models.Failure("Sorry, I could not complete that request within %d steps.", limit))
}

func (a *Agent) finish(log *logrus.Entry, turn *models.AgentTurn, outcome models.TurnOutcome, response string) *models.AgentTurn {

	turn.Finish(outcome, response)

	log.WithFields(logrus.Fields{
		"state":    stateDone,
		"outcome":  outcome,
		"steps":    len(turn.Steps),
		"duration": turn.Duration(),
	}).Debug("Agent turn finished")

	return turn
}

// finalAnswer falls back to the last observation when the model ends the
// turn without saying anything.
func finalAnswer(turn *models.AgentTurn, decision *llm.Decision) string {
	if answer := strings.TrimSpace(decision.Answer); len(answer) > 0 {
		return answer
	}
	if step, ok := turn.LastStep(); ok && !step.Malformed {
		return step.Output
	}
	return "I don't have anything to add."
}
