package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aoepeople/tagging/internal/logging"
	tagging "github.com/aoepeople/tagging/pkg"
)

type gitOptions struct {
	root *rootOptions

	versionType  string
	evaluate     bool
	commitPaths  []string
	message      string
	fromVersion  string
	branch       string
	switchBranch bool
	strict       bool
}

func newGitCommand(root *rootOptions) *cobra.Command {
	o := &gitOptions{root: root}

	cmd := &cobra.Command{
		Use:   "git <url> <path>",
		Short: "Tagging a GIT Repository",
		Long: `Creates the next version tag on a branch of a git repository when the
branch changed since the latest tag, and pushes it to <url>.

<path> is the local clone of the repository at <url>.`,
		Example: `  tagging git git@example.com:acme/app.git ./app
  tagging git -vt minor -b main git@example.com:acme/app.git ./app
  tagging git --evaluate git@example.com:acme/app.git ./app
  tagging git -cap CHANGELOG.md -m "release" git@example.com:acme/app.git ./app
  tagging git -swb -b develop git@example.com:acme/app.git ./app`,
		Args: cobra.ExactArgs(2),
		RunE: o.run,
	}

	flags := cmd.Flags()
	flags.StringVar(&o.versionType, "version-type", "patch", "Version component to increment: major, minor or patch (legacy: -vt)")
	flags.BoolVarP(&o.evaluate, "evaluate", "e", false, "Only print the next version; print nothing if there are no changes")
	flags.StringArrayVar(&o.commitPaths, "commit-and-push", nil, "File to commit and push before tagging. May be repeated (legacy: -cap)")
	flags.StringVarP(&o.message, "message", "m", "", "Commit message used with --commit-and-push")
	flags.StringVar(&o.fromVersion, "from-version", "", "Compute the next version from this version instead of the latest tag (legacy: -fm)")
	flags.StringVarP(&o.branch, "branch", "b", "master", "Branch to tag")
	flags.BoolVar(&o.switchBranch, "switch-branch", false, "Only check out --branch in <path> (legacy: -swb)")
	flags.BoolVar(&o.strict, "strict", false, "Fail on malformed versions instead of treating missing parts as 0")

	return cmd
}

// applyConfig fills flags that were not given on the command line.
func (o *gitOptions) applyConfig(cmd *cobra.Command) {
	cfg := o.root.cfg
	flags := cmd.Flags()
	if !flags.Changed("version-type") {
		o.versionType = cfg.VersionType
	}
	if !flags.Changed("branch") {
		o.branch = cfg.Branch
	}
	if !flags.Changed("message") {
		o.message = cfg.Message
	}
	if !flags.Changed("strict") {
		o.strict = cfg.Strict
	}
}

func (o *gitOptions) run(cmd *cobra.Command, args []string) error {
	o.applyConfig(cmd)
	url, path := args[0], args[1]

	// the version type is irrelevant when only switching branches
	kind, err := tagging.ParseIncrementKind(o.versionType)
	if err != nil && !o.switchBranch {
		return err
	}

	driver, err := o.root.NewDriver(url, logging.Logger.WithField("url", url))
	if err != nil {
		return err
	}

	wf := &tagging.Workflow{
		Driver:      driver,
		Incrementer: tagging.Incrementer{Strict: o.strict},
		Out:         cmd.OutOrStdout(),
		Log:         logging.Logger,
	}
	_, err = wf.Run(tagging.Request{
		URL:          url,
		Path:         path,
		Branch:       o.branch,
		Kind:         kind,
		FromVersion:  o.fromVersion,
		CommitPaths:  o.commitPaths,
		Message:      o.message,
		Evaluate:     o.evaluate,
		SwitchBranch: o.switchBranch,
	})
	return err
}
