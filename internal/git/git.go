package git

import (
	"os/exec"
	"strings"
)

// Branch returns the current git branch name for dir, or "" when dir is not
// inside a repository (or git is not installed).
func Branch(dir string) string {
	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}
