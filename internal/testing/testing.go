// package testing contains shared test doubles and filesystem helpers
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/ytlink/internal/models"
)

// MockSearcher is a scripted [matching.Searcher].
//
// Each query is answered from Errors, then Results, then Fallback. Unknown queries return no results.
type MockSearcher struct {
	Results  map[string][]models.CandidateVideo
	Errors   map[string]error
	Fallback func(ctx context.Context, query string) ([]models.CandidateVideo, error)

	mu    sync.Mutex
	calls []string
}

func (m *MockSearcher) Search(ctx context.Context, query string) ([]models.CandidateVideo, error) {
	m.mu.Lock()
	m.calls = append(m.calls, query)
	m.mu.Unlock()

	if err, ok := m.Errors[query]; ok {
		return nil, err
	}
	if results, ok := m.Results[query]; ok {
		return results, nil
	}
	if m.Fallback != nil {
		return m.Fallback(ctx, query)
	}
	return nil, nil
}

// Calls returns the queries received so far, in order.
func (m *MockSearcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Video builds a [models.CandidateVideo] with a deterministic URL derived from the title.
func Video(title, channel, duration string, views uint64) models.CandidateVideo {
	id := strings.ToLower(strings.Join(strings.Fields(title), "-"))
	return models.CandidateVideo{
		Title:             title,
		URL:               "https://www.youtube.com/watch?v=" + id,
		ChannelName:       channel,
		DurationTimestamp: duration,
		ViewCount:         views,
	}
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

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
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

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
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
