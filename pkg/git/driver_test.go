package git

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

// setupRepo creates a bare remote and a clone of it with one pushed commit on master.
func setupRepo(t *testing.T) (remote, work string) {
	t.Helper()
	if err := (&Driver{}).Check(); err != nil {
		t.Skip("git is not available on system")
	}

	root := t.TempDir()
	remote = filepath.Join(root, "remote.git")
	work = filepath.Join(root, "work")

	runGit(t, root, "init", "--bare", remote)
	runGit(t, remote, "symbolic-ref", "HEAD", "refs/heads/master")
	runGit(t, root, "clone", remote, work)
	runGit(t, work, "config", "user.email", "test@example.com")
	runGit(t, work, "config", "user.name", "Test User")
	runGit(t, work, "symbolic-ref", "HEAD", "refs/heads/master")

	writeFile(t, work, "README.md", "hello\n")
	runGit(t, work, "add", "README.md")
	runGit(t, work, "commit", "-m", "initial commit")
	runGit(t, work, "push", "origin", "master")
	return remote, work
}

func TestLatestTagWithoutTags(t *testing.T) {
	remote, _ := setupRepo(t)

	latest, err := New(remote, nil).LatestTag()
	require.NoError(t, err)
	assert.Equal(t, InitialVersion, latest)
}

func TestLatestTagPicksHighestPlainVersion(t *testing.T) {
	remote, work := setupRepo(t)
	for _, tag := range []string{"1.2.3", "1.10.0", "1.9.0", "v2.0.0", "3.0.0-rc.1", "release", "99999999999999999999.0.0"} {
		runGit(t, work, "tag", tag)
	}
	runGit(t, work, "push", "origin", "--tags")

	latest, err := New(remote, nil).LatestTag()
	require.NoError(t, err)
	assert.Equal(t, "1.10.0", latest)
}

func TestHasChangesSince(t *testing.T) {
	remote, work := setupRepo(t)
	d := New(remote, nil)

	runGit(t, work, "tag", "1.0.0")
	runGit(t, work, "push", "origin", "1.0.0")

	changed, err := d.HasChangesSince("1.0.0", "master", work)
	require.NoError(t, err)
	assert.False(t, changed, "no commit since tag")

	writeFile(t, work, "main.go", "package main\n")
	runGit(t, work, "add", "main.go")
	runGit(t, work, "commit", "-m", "add main")

	changed, err = d.HasChangesSince("1.0.0", "master", work)
	require.NoError(t, err)
	assert.True(t, changed, "commit since tag")

	changed, err = d.HasChangesSince("0.0.0", "master", work)
	require.NoError(t, err)
	assert.True(t, changed, "missing tag counts as changed")
}

func TestHasChangesSinceFetchesRemoteTags(t *testing.T) {
	remote, work := setupRepo(t)

	other := filepath.Join(filepath.Dir(work), "other")
	runGit(t, filepath.Dir(work), "clone", "--branch", "master", remote, other)
	runGit(t, other, "tag", "4.0.0")
	runGit(t, other, "push", "origin", "4.0.0")

	changed, err := New(remote, nil).HasChangesSince("4.0.0", "master", work)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestCommitPushes(t *testing.T) {
	remote, work := setupRepo(t)
	d := New(remote, nil)

	writeFile(t, work, "CHANGELOG.md", "## 1.0.1\n")
	writeFile(t, work, "untracked.txt", "left alone\n")
	require.NoError(t, d.Commit([]string{"CHANGELOG.md"}, work, ""))

	head := runGit(t, work, "rev-parse", "HEAD")
	remoteHead := runGit(t, work, "ls-remote", remote, "refs/heads/master")
	assert.True(t, strings.HasPrefix(remoteHead, head), "remote %q, local %q", remoteHead, head)

	files := runGit(t, work, "show", "--name-only", "--format=", "HEAD")
	assert.Equal(t, "CHANGELOG.md", files)
	status := runGit(t, work, "status", "--porcelain")
	assert.Contains(t, status, "untracked.txt")
}

func TestTagPushes(t *testing.T) {
	remote, work := setupRepo(t)
	d := New(remote, nil)

	require.NoError(t, d.Tag("1.0.1", "master", work))

	remoteTags := runGit(t, work, "ls-remote", "--tags", remote)
	assert.Contains(t, remoteTags, "refs/tags/1.0.1")

	latest, err := d.LatestTag()
	require.NoError(t, err)
	assert.Equal(t, "1.0.1", latest)
}

func TestCheckoutBranch(t *testing.T) {
	remote, work := setupRepo(t)
	runGit(t, work, "checkout", "-b", "develop")
	writeFile(t, work, "feature.txt", "wip\n")
	runGit(t, work, "add", "feature.txt")
	runGit(t, work, "commit", "-m", "feature")
	runGit(t, work, "push", "origin", "develop")

	other := filepath.Join(filepath.Dir(work), "other")
	runGit(t, filepath.Dir(work), "clone", "--branch", "master", remote, other)

	require.NoError(t, New(remote, nil).CheckoutBranch("develop", other))
	assert.Equal(t, "develop", runGit(t, other, "rev-parse", "--abbrev-ref", "HEAD"))
	_, err := os.Stat(filepath.Join(other, "feature.txt"))
	assert.NoError(t, err)
}

func TestCommandError(t *testing.T) {
	remote, work := setupRepo(t)

	err := New(remote, nil).Tag("1.0.0", "no-such-branch", work)
	require.Error(t, err)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr), "error %T", err)
	assert.Equal(t, []string{"tag", "1.0.0", "no-such-branch"}, cmdErr.Args)
	assert.NotEmpty(t, cmdErr.Stderr)
	assert.Contains(t, err.Error(), "git tag 1.0.0 no-such-branch failed")
}

func TestIsPlainVersion(t *testing.T) {
	tests := []struct {
		tag      string
		expected bool
	}{
		{"1.2.3", true},
		{"0.0.0", true},
		{"v1.2.3", false},
		{"1.2", false},
		{"1.2.3-rc.1", false},
		{"1.2.3+meta", false},
		{"01.2.3", false},
		{"latest", false},
		{"1.2.9223372036854775807", true},
		{"1.2.9223372036854775808", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, isPlainVersion(tc.tag), tc.tag)
	}
}
