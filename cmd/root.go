// Package cmd implements the tagging command line interface.
package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aoepeople/tagging/internal/config"
	"github.com/aoepeople/tagging/internal/logging"
	tagging "github.com/aoepeople/tagging/pkg"
	"github.com/aoepeople/tagging/pkg/git"
)

// DriverFactory returns the driver used for the repository at url.
type DriverFactory func(url string, log logrus.FieldLogger) (tagging.Driver, error)

// Options configures the root command.
type Options struct {
	Version   string
	NewDriver DriverFactory
	Stdout    io.Writer
	Stderr    io.Writer
}

type rootOptions struct {
	Options

	configFile string
	logLevel   string
	verbose    int

	cfg config.Config
}

// legacyShorthands maps the multi-letter single dash options of the original
// tool to their long names; pflag only supports one-letter shorthands.
var legacyShorthands = map[string]string{
	"-vt":  "--version-type",
	"-cap": "--commit-and-push",
	"-fm":  "--from-version",
	"-swb": "--switch-branch",
}

// valueFlags are the flags whose value is the next argument unless given
// with "=".
var valueFlags = map[string]bool{
	"--version-type":    true,
	"--commit-and-push": true,
	"--from-version":    true,
	"--message":         true,
	"-m":                true,
	"--branch":          true,
	"-b":                true,
	"--config":          true,
	"--log-level":       true,
}

// NormalizeArgs rewrites legacy shorthands such as "-vt minor" or
// "-vt=minor" into their long form. Flag values and arguments after "--"
// are left alone.
func NormalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	isValue := false
	for i, arg := range args {
		if isValue {
			out = append(out, arg)
			isValue = false
			continue
		}
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		name, value, hasValue := strings.Cut(arg, "=")
		if long, ok := legacyShorthands[name]; ok {
			name = long
			arg = long
			if hasValue {
				arg += "=" + value
			}
		}
		isValue = !hasValue && valueFlags[name]
		out = append(out, arg)
	}
	return out
}

func defaultDriver(url string, log logrus.FieldLogger) (tagging.Driver, error) {
	d := git.New(url, log)
	if err := d.Check(); err != nil {
		return nil, err
	}
	return d, nil
}

// NewRootCommand builds the command tree.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.NewDriver == nil {
		opts.NewDriver = defaultDriver
	}
	o := &rootOptions{Options: opts}

	root := &cobra.Command{
		Use:   "tagging",
		Short: "Automated version tagging of source code repositories",
		Long: `tagging inspects the tags of a repository, decides whether a new tag is
needed because something changed since the latest one, computes the next
semantic version and creates and pushes that tag.`,
		Version:       opts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			cfg, err := config.Load(o.configFile)
			if err != nil {
				return err
			}
			o.cfg = cfg

			level := o.logLevel
			if !cmd.Flags().Changed("log-level") && o.verbose == 0 {
				level = cfg.LogLevel
			}
			return logging.Configure(level, o.verbose)
		},
	}
	if opts.Stdout != nil {
		root.SetOut(opts.Stdout)
	}
	if opts.Stderr != nil {
		root.SetErr(opts.Stderr)
	}

	root.PersistentFlags().StringVar(&o.configFile, "config", "", "Path to a YAML config file (default "+config.DefaultFile+" if present)")
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", "", "Log level: panic, fatal, error, warn, info, debug, trace")
	root.PersistentFlags().CountVarP(&o.verbose, "verbose", "v", "Increase verbosity (-v info, -vv debug)")

	root.AddCommand(newGitCommand(o))
	return root
}

// Execute runs the tool with args, usually os.Args[1:].
func Execute(version string, args []string) error {
	root := NewRootCommand(Options{Version: version, Stdout: os.Stdout, Stderr: os.Stderr})
	root.SetArgs(NormalizeArgs(args))
	return root.Execute()
}
