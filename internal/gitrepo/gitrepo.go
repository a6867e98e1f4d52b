// Package gitrepo obtains a read-only local snapshot of a remote
// repository by shelling out to the git binary for a shallow,
// single-branch clone.
package gitrepo

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Checkout is a scoped local copy of a repository. Close removes the
// scratch directory unless Keep is set.
type Checkout struct {
	Dir    string
	Branch string // branch actually cloned; empty for the platform default
	Keep   bool
}

// Close releases the scratch directory. Safe to call on every exit path.
func (c *Checkout) Close() error {
	if c == nil || c.Keep || c.Dir == "" {
		return nil
	}
	return os.RemoveAll(c.Dir)
}

// CloneOptions controls a Clone call.
type CloneOptions struct {
	Branch      string // requested branch; fallbacks are tried after it
	ScratchRoot string // parent directory for the clone target
	Keep        bool   // do not remove the directory on Close
	Progress    func(format string, args ...any)
}

// branchCandidates returns the fallback chain for a requested branch.
// The empty string means "clone the platform default branch".
func branchCandidates(requested string) []string {
	out := []string{requested}
	if requested != "master" {
		out = append(out, "master")
	}
	return append(out, "")
}

// Clone performs a depth-1 clone of repoURL into a fresh scratch
// directory, trying the requested branch, then master, then the platform
// default. The context bounds every git invocation. On total failure the
// error lists the attempted branches.
func Clone(ctx context.Context, repoURL string, opts CloneOptions) (*Checkout, error) {
	if opts.Branch == "" {
		opts.Branch = "main"
	}
	progress := opts.Progress
	if progress == nil {
		progress = func(string, ...any) {}
	}

	dir := filepath.Join(opts.ScratchRoot, "llmstxt-"+uuid.NewString())

	var attempted []string
	var lastErr error
	for _, branch := range branchCandidates(opts.Branch) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("clone canceled: %w", err)
		}
		args := []string{"clone", "--depth", "1"}
		label := branch
		if branch != "" {
			args = append(args, "--branch", branch)
		} else {
			label = "(default)"
		}
		args = append(args, repoURL, dir)
		attempted = append(attempted, label)

		cmd := exec.CommandContext(ctx, "git", args...)
		out, err := cmd.CombinedOutput()
		if err == nil {
			return &Checkout{Dir: dir, Branch: branch, Keep: opts.Keep}, nil
		}
		lastErr = fmt.Errorf("git clone %s: %w: %s", label, err, strings.TrimSpace(string(out)))
		if branch != "" {
			progress("⚠ Branch %s not found, trying next candidate...\n", branch)
		}
		_ = os.RemoveAll(dir)
	}
	return nil, fmt.Errorf("failed to clone %s (attempted branches: %s): %w",
		repoURL, strings.Join(attempted, ", "), lastErr)
}

// Open wraps an existing local documentation tree as a Checkout that is
// never removed. Used when the positional argument is a directory rather
// than a remote URL.
func Open(dir string) (*Checkout, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open local directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open local directory: %s is not a directory", dir)
	}
	return &Checkout{Dir: dir, Keep: true}, nil
}
