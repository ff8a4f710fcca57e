// Package git implements tagging.Driver on top of the git command line client.
package git

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"
)

// InitialVersion is reported by LatestTag when the remote has no version tag.
const InitialVersion = "0.0.0"

// CommandError is returned when a git invocation fails.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("git %s failed: %v, detail: %s",
		strings.Join(e.Args, " "), e.Err, strings.TrimSpace(e.Stderr))
}

func (e *CommandError) Unwrap() error { return e.Err }

// Driver runs git against a local checkout and pushes to URL.
// Binary is the git executable, "git" when empty.
type Driver struct {
	URL    string
	Binary string
	Log    logrus.FieldLogger
}

// New returns a Driver for the repository at url.
func New(url string, log logrus.FieldLogger) *Driver {
	return &Driver{URL: url, Log: log}
}

// Check verifies that git is available on the system.
func (d *Driver) Check() error {
	cmd := exec.Command(d.binary(), "--version")
	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "git is not available on the system")
	}
	return nil
}

// CheckoutBranch checks out branch in path and fast-forwards it from URL.
func (d *Driver) CheckoutBranch(branch, path string) error {
	if _, err := d.run(path, "checkout", branch); err != nil {
		return err
	}
	_, err := d.run(path, "pull", "--ff-only", d.URL, branch)
	return err
}

// LatestTag returns the highest MAJOR.MINOR.PATCH tag on the remote, or
// InitialVersion when there is none. Other tags are ignored.
func (d *Driver) LatestTag() (string, error) {
	out, err := d.run("", "ls-remote", "--tags", "--refs", d.URL)
	if err != nil {
		return "", err
	}

	var versions []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		name := strings.TrimPrefix(fields[1], "refs/tags/")
		if isPlainVersion(name) {
			versions = append(versions, "v"+name)
		}
	}
	if len(versions) == 0 {
		return InitialVersion, nil
	}
	semver.Sort(versions)
	return strings.TrimPrefix(versions[len(versions)-1], "v"), nil
}

// HasChangesSince fetches tags from URL and reports whether branch differs
// from the tag version. A tag that does not exist counts as changed.
func (d *Driver) HasChangesSince(version, branch, path string) (bool, error) {
	if _, err := d.run(path, "fetch", "--tags", d.URL); err != nil {
		return false, err
	}
	exists, err := d.tagExists(version, path)
	if err != nil {
		return false, err
	}
	if !exists {
		d.logger().Debugf("tag %q not found, treating %q as changed", version, branch)
		return true, nil
	}
	out, err := d.run(path, "diff", "--name-only", "refs/tags/"+version, branch, "--")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// Commit stages paths, commits them with message and pushes HEAD to URL.
// An empty message is allowed.
func (d *Driver) Commit(paths []string, path, message string) error {
	addArgs := append([]string{"add", "--"}, paths...)
	if _, err := d.run(path, addArgs...); err != nil {
		return err
	}
	if _, err := d.run(path, "commit", "--allow-empty-message", "-m", message); err != nil {
		return err
	}
	_, err := d.run(path, "push", d.URL, "HEAD")
	return err
}

// Tag creates the lightweight tag version on branch and pushes it to URL.
func (d *Driver) Tag(version, branch, path string) error {
	if _, err := d.run(path, "tag", version, branch); err != nil {
		return err
	}
	_, err := d.run(path, "push", d.URL, "refs/tags/"+version)
	return err
}

func (d *Driver) tagExists(version, path string) (bool, error) {
	cmd := exec.Command(d.binary(), "rev-parse", "--quiet", "--verify", "refs/tags/"+version)
	cmd.Dir = path
	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return false, nil
	}
	return false, errors.Wrapf(err, "checking tag %q", version)
}

// run executes git with args in dir and returns stdout.
func (d *Driver) run(dir string, args ...string) (string, error) {
	d.logger().Debugf("git %s", strings.Join(args, " "))

	cmd := exec.Command(d.binary(), args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", errors.WithStack(&CommandError{Args: args, Stderr: stderr.String(), Err: err})
	}
	return stdout.String(), nil
}

func (d *Driver) binary() string {
	if d.Binary != "" {
		return d.Binary
	}
	return "git"
}

func (d *Driver) logger() logrus.FieldLogger {
	if d.Log != nil {
		return d.Log
	}
	return logrus.StandardLogger()
}

// isPlainVersion reports whether tag is MAJOR.MINOR.PATCH with no prefix,
// pre-release or build metadata, and every component fits in an int64.
func isPlainVersion(tag string) bool {
	v := "v" + tag
	if !semver.IsValid(v) || semver.Canonical(v) != v || semver.Prerelease(v) != "" {
		return false
	}
	for _, field := range strings.Split(tag, ".") {
		if _, err := strconv.ParseInt(field, 10, 64); err != nil {
			return false
		}
	}
	return true
}
