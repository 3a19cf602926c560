package publish

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path"
	"strings"
)

// DefaultDiffBase is the revision changed articles are compared against.
const DefaultDiffBase = "HEAD~1"

// Runner executes an external command and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec in Dir.
type ExecRunner struct {
	Dir string
}

// Run executes name with args. Standard error is folded into the returned
// error.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- fixed git invocation
	cmd.Dir = r.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}

// ChangedArticles lists Markdown files under dir that changed between base
// and HEAD, in git's order. Deleted files are left out. An empty base
// means DefaultDiffBase.
func ChangedArticles(ctx context.Context, run Runner, base, dir string) ([]string, error) {
	if base == "" {
		base = DefaultDiffBase
	}
	out, err := run.Run(ctx, "git", "diff", "--name-only", "--diff-filter=d", base, "HEAD")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGitDiff, err)
	}

	prefix := ""
	if clean := path.Clean(dir); clean != "." {
		prefix = strings.TrimSuffix(clean, "/") + "/"
	}
	var files []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, prefix) && strings.HasSuffix(line, ".md") {
			files = append(files, line)
		}
	}
	return files, nil
}
