// Package prompt asks the operator for release decisions.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrAborted is returned when the operator cancels a prompt, either from the
// prompt itself or by cancelling its context.
var ErrAborted = errors.New("prompt aborted")

// Prompter asks questions and returns the raw answer. Interpreting the
// answer is left to the caller.
//
// Implementations return an error wrapping ErrAborted once ctx is done, even
// while waiting for input.
type Prompter interface {
	// Ask requests free text.
	Ask(ctx context.Context, title, placeholder string) (string, error)

	// Choose requests one of options. Line based prompters may return any
	// text the operator typed.
	Choose(ctx context.Context, title string, options []string) (string, error)
}

func aborted(ctx context.Context) error {
	return fmt.Errorf("%w: %w", ErrAborted, context.Cause(ctx))
}

// Line prompts on a line oriented reader such as a pipe or a dumb terminal.
// End of input answers with an empty string.
type Line struct {
	in  *bufio.Reader
	out io.Writer

	// pending carries the result of a read that outlived a cancelled
	// prompt, so the next prompt receives that line instead of racing a
	// second reader.
	pending chan readResult
}

type readResult struct {
	line string
	err  error
}

// NewLine creates a Line prompter.
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{in: bufio.NewReader(in), out: out}
}

// Ask prints title and reads one line.
func (l *Line) Ask(ctx context.Context, title, placeholder string) (string, error) {
	if ctx.Err() != nil {
		return "", aborted(ctx)
	}
	if placeholder != "" {
		fmt.Fprintf(l.out, "%s (%s): ", title, placeholder)
	} else {
		fmt.Fprintf(l.out, "%s: ", title)
	}
	return l.readLine(ctx)
}

// Choose prints title with the options and reads one line.
func (l *Line) Choose(ctx context.Context, title string, options []string) (string, error) {
	if ctx.Err() != nil {
		return "", aborted(ctx)
	}
	fmt.Fprintf(l.out, "%s [%s]: ", title, strings.Join(options, "/"))
	return l.readLine(ctx)
}

// readLine waits for the next line or for ctx to be done. A blocked read
// keeps running after cancellation; its line is delivered to the next call.
func (l *Line) readLine(ctx context.Context) (string, error) {
	if l.pending == nil {
		ch := make(chan readResult, 1)
		go func() {
			line, err := l.in.ReadString('\n')
			ch <- readResult{line: line, err: err}
		}()
		l.pending = ch
	}

	var r readResult
	select {
	case <-ctx.Done():
		fmt.Fprintln(l.out)
		return "", aborted(ctx)
	case r = <-l.pending:
		l.pending = nil
	}

	line, err := r.line, r.err
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		fmt.Fprintln(l.out)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Scripted replays canned answers for tests and non-interactive runs.
// Once the script is exhausted every answer is empty.
type Scripted struct {
	answers []string
	Asked   []string
}

// NewScripted creates a Scripted prompter.
func NewScripted(answers ...string) *Scripted {
	return &Scripted{answers: answers}
}

// Ask returns the next answer.
func (s *Scripted) Ask(ctx context.Context, title, placeholder string) (string, error) {
	return s.next(ctx, title)
}

// Choose returns the next answer.
func (s *Scripted) Choose(ctx context.Context, title string, options []string) (string, error) {
	return s.next(ctx, title)
}

func (s *Scripted) next(ctx context.Context, title string) (string, error) {
	if ctx.Err() != nil {
		return "", aborted(ctx)
	}
	s.Asked = append(s.Asked, title)
	if len(s.answers) == 0 {
		return "", nil
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}
