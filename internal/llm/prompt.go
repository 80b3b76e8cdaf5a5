package llm

import (
	"fmt"
	"strings"

	"github.com/artemis-io/agent/internal/models"
)

var AssistantPrompt = `You are Artemis, an assistant that manages a student's task planner
stored in Notion. Use the tools to create, list and update tasks. Due dates must
be given to the tools as YYYY-MM-DD; look up the current date first when the user
speaks about relative days like "tomorrow" or "next friday". Keep the final reply
short and tell the user plainly when something failed.`

var ReActFormatPrompt = `Use the following format:

Question: the request you must answer
Thought: think about what to do next
Action: the action to take, one of [%s]
Action Input: the input to the action
Observation: the result of the action
... (this Thought/Action/Action Input/Observation can repeat)
Thought: I now know the final answer
Final Answer: the reply to the user

Begin!`

// BuildReActSystemPrompt lists the tools and the text protocol the
// response parser expects.
func BuildReActSystemPrompt(tools []models.ToolDescriptor) string {

	var sb strings.Builder

	sb.WriteString(AssistantPrompt)
	sb.WriteString("\n\nYou have access to the following tools:\n\n")

	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		fmt.Fprintf(&sb, "%s: %s\n", tool.Name, tool.Description)
		names = append(names, tool.Name)
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, ReActFormatPrompt, strings.Join(names, ", "))

	return sb.String()
}

// BuildReActScratchpad replays the question and previous steps so the
// model continues where it left off.
func BuildReActScratchpad(req *Request) string {

	var sb strings.Builder

	fmt.Fprintf(&sb, "Question: %s\n", req.Utterance)

	for _, step := range req.Steps {
		raw := strings.TrimSpace(step.Raw)
		if len(raw) == 0 {
			raw = fmt.Sprintf("Action: %s\nAction Input: %s", step.Tool, step.Input)
		}
		if !strings.HasPrefix(raw, "Thought:") && !strings.HasPrefix(raw, "Action:") {
			raw = "Thought: " + raw
		}
		fmt.Fprintf(&sb, "%s\nObservation: %s\n", raw, step.Output)
	}

	sb.WriteString("Thought:")

	return sb.String()
}
