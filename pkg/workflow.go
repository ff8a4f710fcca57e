package tagging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Driver is the version control collaborator used by Workflow. All side
// effects on the repository happen through it.
type Driver interface {
	// CheckoutBranch switches the checkout at path to branch.
	CheckoutBranch(branch, path string) error
	// LatestTag returns the most recent version tag of the repository.
	LatestTag() (string, error)
	// HasChangesSince reports whether branch at path differs from the tag version.
	HasChangesSince(version, branch, path string) (bool, error)
	// Commit commits and pushes paths of the checkout at path.
	Commit(paths []string, path, message string) error
	// Tag creates and pushes the tag version on branch.
	Tag(version, branch, path string) error
}

// Request holds the inputs of a single tagging run.
type Request struct {
	URL         string
	Path        string
	Branch      string
	Kind        IncrementKind
	FromVersion string // overrides the latest tag when set
	CommitPaths []string
	Message     string

	Evaluate     bool // only print the next version
	SwitchBranch bool // only check out Branch
}

// State is where a run ended.
type State int

const (
	StateBranchSwitch State = iota + 1
	StateEvaluate
	StateApply
	StateSkip
)

func (s State) String() string {
	switch s {
	case StateBranchSwitch:
		return "branch-switch"
	case StateEvaluate:
		return "evaluate"
	case StateApply:
		return "apply"
	case StateSkip:
		return "skip"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Outcome describes what a run decided and did.
type Outcome struct {
	State     State
	Latest    string
	Next      string
	Changed   bool
	Committed bool
	Tagged    bool
}

// Workflow decides whether a new tag is created and sequences the driver calls.
// Out receives the next version in evaluate mode; nil discards it.
type Workflow struct {
	Driver      Driver
	Incrementer Incrementer
	Out         io.Writer
	Log         logrus.FieldLogger
}

// route is the first transition: switch-branch wins over every other flag,
// then evaluate, then apply. Skip is only reachable from apply.
func route(req Request) State {
	switch {
	case req.SwitchBranch:
		return StateBranchSwitch
	case req.Evaluate:
		return StateEvaluate
	default:
		return StateApply
	}
}

// Run executes req. Errors from the driver are returned unchanged and abort
// the run; nothing already done is rolled back.
func (w *Workflow) Run(req Request) (Outcome, error) {
	log := w.logger().WithFields(logrus.Fields{
		"branch": req.Branch,
		"path":   req.Path,
	})

	state := route(req)
	if state == StateBranchSwitch {
		log.Debugf("switching to branch %q", req.Branch)
		if err := w.Driver.CheckoutBranch(req.Branch, req.Path); err != nil {
			return Outcome{}, err
		}
		return Outcome{State: StateBranchSwitch}, nil
	}

	if err := req.Kind.Validate(); err != nil {
		return Outcome{}, err
	}

	latest, err := w.latestVersion(req)
	if err != nil {
		return Outcome{}, err
	}
	next, err := w.Incrementer.Increase(latest, req.Kind)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{State: state, Latest: latest, Next: next}

	out.Changed, err = w.Driver.HasChangesSince(latest, req.Branch, req.Path)
	if err != nil {
		return out, err
	}

	if state == StateEvaluate {
		if out.Changed && w.Out != nil {
			if _, err := io.WriteString(w.Out, next); err != nil {
				return out, fmt.Errorf("writing next version: %w", err)
			}
		}
		return out, nil
	}

	if !out.Changed {
		out.State = StateSkip
		log.Infof("Skip creating tag %q because there are no changes since tag %q", next, latest)
		return out, nil
	}

	if len(req.CommitPaths) > 0 {
		log.Infof("commit and push: %q", strings.Join(req.CommitPaths, " "))
		if err := w.Driver.Commit(req.CommitPaths, req.Path, req.Message); err != nil {
			return out, err
		}
		out.Committed = true
	}

	log.Infof("Latest Tag number is %q", latest)
	log.Infof("Next Tag number is %q", next)
	if err := w.Driver.Tag(next, req.Branch, req.Path); err != nil {
		return out, err
	}
	out.Tagged = true
	return out, nil
}

func (w *Workflow) latestVersion(req Request) (string, error) {
	if req.FromVersion != "" {
		return req.FromVersion, nil
	}
	return w.Driver.LatestTag()
}

func (w *Workflow) logger() logrus.FieldLogger {
	if w.Log != nil {
		return w.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
