// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"testing"
)

// ScriptReader is a test double for [prompt.LineReader] that replays
// scripted answers front to back. Once the script runs out it returns Err,
// or [io.EOF] when Err is nil, which a Prompter treats as cancellation.
type ScriptReader struct {
	Lines   []string // remaining answers
	Err     error    // returned after the script is exhausted
	Prompts []string // labels seen, in order
	History []string // lines the prompter accepted
}

// NewScriptReader creates a ScriptReader that answers prompts with lines.
func NewScriptReader(lines ...string) *ScriptReader {
	return &ScriptReader{Lines: lines}
}

func (s *ScriptReader) Prompt(label string) (string, error) {
	s.Prompts = append(s.Prompts, label)
	if len(s.Lines) == 0 {
		if s.Err != nil {
			return "", s.Err
		}
		return "", io.EOF
	}
	line := s.Lines[0]
	s.Lines = s.Lines[1:]
	return line, nil
}

func (s *ScriptReader) AppendHistory(item string) {
	s.History = append(s.History, item)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return dir
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
