package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/artemis-io/agent/internal/models"
)

const (
	Banner      = "🤖 Artemis AI Agent Ready!"
	Prompt      = "🗣️ You: "
	ReplyPrefix = "🤖 Artemis: "
	Goodbye     = "👋 Goodbye!"
)

var exitCommands = []string{"exit", "quit"}

// Responder turns one utterance into one reply.
type Responder interface {
	Respond(ctx context.Context, utterance string) string
}

// ResponderFunc adapts a plain function to a Responder.
type ResponderFunc func(ctx context.Context, utterance string) string

func (f ResponderFunc) Respond(ctx context.Context, utterance string) string {
	return f(ctx, utterance)
}

type Shell struct {
	in        io.Reader
	out       io.Writer
	responder Responder
	styles    styles
}

func New(in io.Reader, out io.Writer, responder Responder) *Shell {
	return &Shell{
		in:        in,
		out:       out,
		responder: responder,
		styles:    newStyles(out),
	}
}

// Run reads utterances until exit, quit, EOF or context cancellation.
// Cancellation is honoured while waiting at the prompt.
func (s *Shell) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	lines, readErr := s.readLines(done)

	fmt.Fprintln(s.out, s.styles.banner.Render(Banner))

	for {
		if ctx.Err() != nil {
			return s.goodbye(true)
		}

		fmt.Fprint(s.out, "\n"+label(s.styles.prompt, Prompt))

		var line string
		var ok bool

		select {
		case <-ctx.Done():
			return s.goodbye(true)
		case line, ok = <-lines:
		}

		if !ok {
			if err := <-readErr; err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			// EOF
			return s.goodbye(true)
		}

		utterance := strings.TrimSpace(line)

		if len(utterance) == 0 {
			continue
		}

		if IsExitCommand(utterance) {
			return s.goodbye(false)
		}

		if ctx.Err() != nil {
			return s.goodbye(true)
		}

		reply := s.respond(ctx, utterance)

		fmt.Fprintln(s.out, label(s.styles.speaker, ReplyPrefix)+reply)
	}
}

// readLines scans input on its own goroutine so a blocked read never holds
// up cancellation. The error channel is written once lines is drained.
func (s *Shell) readLines(done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(s.in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	return lines, readErr
}

func (s *Shell) goodbye(newline bool) error {
	if newline {
		fmt.Fprintln(s.out)
	}
	fmt.Fprintln(s.out, s.styles.goodbye.Render(Goodbye))
	return nil
}

func (s *Shell) respond(ctx context.Context, utterance string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"utterance": utterance,
				"panic":     r,
			}).Error("Recovered from panic while handling utterance")

			reply = s.styles.failure.Render(
				models.Failure("Something went wrong: %v", r))
		}
	}()

	return s.responder.Respond(ctx, utterance)
}

// label styles the text of a prefix and keeps its trailing space unstyled.
func label(style lipgloss.Style, prefix string) string {
	text := strings.TrimRight(prefix, " ")
	return style.Render(text) + prefix[len(text):]
}

// IsExitCommand reports whether the trimmed input ends the session.
func IsExitCommand(input string) bool {
	input = strings.TrimSpace(input)
	for _, cmd := range exitCommands {
		if strings.EqualFold(input, cmd) {
			return true
		}
	}
	return false
}
