package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// FindRoot walks up from start looking for a .git entry and returns the
// containing directory, or "" when start is not inside a repository.
func FindRoot(start string) string {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Status shells out to git and returns the per-file classification keyed by
// repository-relative path. Uses --no-optional-locks so a read-only status
// never takes index.lock.
func Status(ctx context.Context, repoRoot string) (map[string]Kind, error) {
	cmd := exec.CommandContext(ctx, "git", "--no-optional-locks", "status", "--porcelain", "-uall")
	cmd.Dir = repoRoot
	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}
	return parseStatus(string(out)), nil
}

func parseStatus(out string) map[string]Kind {
	files := make(map[string]Kind)
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		x, y := line[0], line[1]
		path := strings.TrimRight(line[3:], "\r")

		// Renames come through as "old -> new"; the new path is the one
		// that exists on disk.
		if i := strings.Index(path, " -> "); i >= 0 {
			path = path[i+4:]
		}

		files[filepath.Clean(path)] = Classify(x, y)
	}
	return files
}
