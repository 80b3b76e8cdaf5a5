package llm

import (
	"regexp"
	"strings"

	"github.com/artemis-io/agent/internal/models"
)

const (
	finalAnswerMarker = "Final Answer:"
	observationMarker = "Observation:"

	missingActionInput   = "missing 'Action Input:' after 'Action:'"
	missingAction        = "missing 'Action:' after 'Thought:'"
	actionAndFinalAnswer = "found a final answer before the action"
)

var (
	actionPattern      = regexp.MustCompile(`(?s)Action\s*\d*\s*:[\s]*(.*?)[\s]*Action\s*\d*\s*Input\s*\d*\s*:[\s]*(.*)`)
	actionOnlyPattern  = regexp.MustCompile(`Action\s*\d*\s*:`)
	actionInputPattern = regexp.MustCompile(`Action\s*\d*\s*Input\s*\d*\s*:`)
)

// ParseReAct reads a Thought/Action/Action Input or Final Answer block.
// Anything else is reported as models.ErrMalformedModelOutput.
func ParseReAct(text string) (*Decision, error) {

	includesAnswer := strings.Contains(text, finalAnswerMarker)

	if match := actionPattern.FindStringSubmatch(text); match != nil {

		if includesAnswer && strings.Index(text, finalAnswerMarker) < strings.Index(text, match[0]) {
			return nil, models.NewMalformedOutputError(actionAndFinalAnswer, text)
		}

		tool := models.NormalizeToolName(match[1])
		input := match[2]

		// Models sometimes keep going and invent the observation themselves
		for _, marker := range []string{observationMarker, finalAnswerMarker} {
			if idx := strings.Index(input, marker); idx >= 0 {
				input = input[:idx]
			}
		}

		input = strings.Trim(strings.TrimSpace(input), "\"")

		if len(tool) == 0 {
			return nil, models.NewMalformedOutputError(missingAction, text)
		}

		return NewToolDecision(tool, input, strings.TrimSpace(text)), nil
	}

	if includesAnswer {
		idx := strings.LastIndex(text, finalAnswerMarker)
		answer := strings.TrimSpace(text[idx+len(finalAnswerMarker):])
		return NewFinalDecision(answer, strings.TrimSpace(text)), nil
	}

	if actionOnlyPattern.MatchString(text) && !actionInputPattern.MatchString(text) {
		return nil, models.NewMalformedOutputError(missingActionInput, text)
	}

	return nil, models.NewMalformedOutputError(missingAction, text)
}
