package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-md2note/internal/config"
	"github.com/alnah/go-md2note/internal/publish"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment, git runner and note.com client fakes
// ---------------------------------------------------------------------------

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	vars   map[string]string
	runner *fakeRunner
	client *fakeClient
}

// newTestEnv returns an environment with no process variables, a git runner
// printing nothing and a client that succeeds.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		vars:   map[string]string{},
		runner: &fakeRunner{},
		client: &fakeClient{},
	}
	te.Environment = &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdout: te.stdout,
		Stderr: te.stderr,
		Getenv: func(k string) string { return te.vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(te.vars))
			for k, v := range te.vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		Runner: te.runner,
		NewClient: func(cfg publish.ClientConfig) publish.Client {
			te.client.cfg = cfg
			return te.client
		},
		Config: config.DefaultConfig(),
	}
	return te
}

// fakeRunner returns canned git output and records invocations.
type fakeRunner struct {
	out   string
	err   error
	calls [][]string
}

func (r *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	if r.err != nil {
		return nil, r.err
	}
	return []byte(r.out), nil
}

// fakeClient records logins and posts.
type fakeClient struct {
	mu       sync.Mutex
	cfg      publish.ClientConfig
	loginErr error
	postErr  error
	auth     publish.AuthConfig
	posts    []string // titles
	bodies   []string
	closed   bool
}

func (c *fakeClient) Login(_ context.Context, auth publish.AuthConfig) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.auth = auth
	return c.loginErr
}

func (c *fakeClient) Post(_ context.Context, title, body string) (publish.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.postErr != nil {
		return publish.Result{}, c.postErr
	}
	c.posts = append(c.posts, title)
	c.bodies = append(c.bodies, body)
	return publish.Result{Title: title, URL: "https://note.com/u/n/n" + strings.Repeat("0", len(c.posts))}, nil
}

func (c *fakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// writeFile creates path under dir with content and returns the full path.
func writeFile(t *testing.T, dir, path, content string) string {
	t.Helper()
	full := filepath.Join(dir, path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", full, err)
	}
	return full
}

// article returns a markdown file with front matter.
func article(title, body string) string {
	return "---\ntitle: " + title + "\n---\n" + body
}
