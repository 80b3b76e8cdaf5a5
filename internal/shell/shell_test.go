package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingResponder struct {
	utterances []string
	reply      string
}

func (r *recordingResponder) Respond(_ context.Context, utterance string) string {
	r.utterances = append(r.utterances, utterance)
	return r.reply
}

func runShell(t *testing.T, input string, responder Responder) string {
	t.Helper()

	var out bytes.Buffer
	err := New(strings.NewReader(input), &out, responder).Run(context.Background())
	require.NoError(t, err)

	return out.String()
}

func TestShell_ExitDoesNotInvokeResponder(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"upper exit", "EXIT\n"},
		{"lower quit", "quit\n"},
		{"padded exit", "   Exit  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responder := &recordingResponder{}
			out := runShell(t, tt.input, responder)

			assert.Empty(t, responder.utterances)
			assert.Contains(t, out, Banner)
			assert.Contains(t, out, Goodbye)
		})
	}
}

func TestShell_RepliesUntilExit(t *testing.T) {
	responder := &recordingResponder{reply: "📌 Essay - To Do - Due: No Date"}

	out := runShell(t, "what are my tasks?\nexit\nnever read\n", responder)

	assert.Equal(t, []string{"what are my tasks?"}, responder.utterances)
	assert.Contains(t, out, ReplyPrefix+"📌 Essay - To Do - Due: No Date")
	assert.Equal(t, 2, strings.Count(out, Prompt))
}

func TestShell_BlankLinesReprompt(t *testing.T) {
	responder := &recordingResponder{reply: "ok"}

	out := runShell(t, "\n   \nhello\n", responder)

	assert.Equal(t, []string{"hello"}, responder.utterances)
	// three lines read plus the prompt that meets EOF
	assert.Equal(t, 4, strings.Count(out, Prompt))
}

func TestShell_EOFSaysGoodbye(t *testing.T) {
	responder := &recordingResponder{reply: "done"}

	out := runShell(t, "add a task", responder)

	assert.Equal(t, []string{"add a task"}, responder.utterances)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), Goodbye))
}

func TestShell_RecoversFromPanic(t *testing.T) {
	calls := 0
	responder := ResponderFunc(func(_ context.Context, utterance string) string {
		calls++
		if utterance == "boom" {
			panic("kaboom")
		}
		return "fine"
	})

	out := runShell(t, "boom\nstill here\nquit\n", responder)

	assert.Equal(t, 2, calls)
	assert.Contains(t, out, "❌ Something went wrong: kaboom")
	assert.Contains(t, out, ReplyPrefix+"fine")
}

func TestShell_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	responder := &recordingResponder{}
	var out bytes.Buffer

	err := New(strings.NewReader("hello\n"), &out, responder).Run(ctx)

	require.NoError(t, err)
	assert.Empty(t, responder.utterances)
	assert.Contains(t, out.String(), Goodbye)
}

func TestShell_CancelWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	answered := make(chan struct{}, 1)
	calls := 0
	responder := ResponderFunc(func(context.Context, string) string {
		calls++
		answered <- struct{}{}
		return "ok"
	})

	var out bytes.Buffer
	result := make(chan error, 1)

	go func() {
		result <- New(pr, &out, responder).Run(ctx)
	}()

	_, err := pw.Write([]byte("hello\n"))
	require.NoError(t, err)

	select {
	case <-answered:
	case <-time.After(time.Second):
		t.Fatal("responder was not called")
	}

	// The shell is now blocked reading the next line
	cancel()

	select {
	case err := <-result:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	assert.Equal(t, 1, calls)
	assert.Contains(t, out.String(), ReplyPrefix+"ok")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out.String()), Goodbye))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("terminal closed")
}

func TestShell_ReadError(t *testing.T) {
	var out bytes.Buffer

	err := New(failingReader{}, &out, &recordingResponder{}).Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal closed")
}

func TestIsExitCommand(t *testing.T) {
	assert.True(t, IsExitCommand("exit"))
	assert.True(t, IsExitCommand("QUIT"))
	assert.True(t, IsExitCommand(" Quit "))
	assert.False(t, IsExitCommand("exit now"))
	assert.False(t, IsExitCommand("please quit"))
	assert.False(t, IsExitCommand(""))
}
