package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"golang.org/x/term"

	"github.com/dhamidi/jurand/config"
	"github.com/dhamidi/jurand/rewrite"
	"github.com/dhamidi/jurand/strict"

	_ "github.com/tliron/commonlog/simple"
)

// Warnings and errors only, unless raised with -v.
const defaultVerbosity = -1

type rootOptions struct {
	names             []string
	patterns          []string
	configFile        string
	removeAnnotations bool
	inPlace           bool
	strict            bool
	diff              bool
	jobs              int
	color             string
	verbose           int
	logPath           string
}

func (o *rootOptions) configOptions(roots []string) config.Options {
	return config.Options{
		Names:             o.names,
		Patterns:          o.patterns,
		ConfigFile:        o.configFile,
		RemoveAnnotations: o.removeAnnotations,
		InPlace:           o.inPlace,
		Strict:            o.strict,
		Roots:             roots,
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "jurand [flags] [file path]...",
		Short: "Remove Java imports and annotations",
		Long: `Remove import statements and, optionally, annotations from Java source files.

Names given with -n are exact simple class names, patterns given with -p are
regular expressions searched anywhere in the fully qualified name.

Each file path may be a regular file or a directory, which is searched
recursively for .java files. Without file paths, standard input is read
and the result is written to standard output. A file path that is also the
name of a subcommand, such as "lsp", must follow "--" or be written as "./lsp".

Exit status is 0 on success, 1 on usage errors, 2 when some files could not
be processed and 3 when strict mode finds an option that had no effect.`,
		Args:          cobra.ArbitraryArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().NFlag() == 0 && len(args) == 0 {
				return cmd.Help()
			}
			return runRemove(cmd, opts, args)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringArrayVarP(&opts.names, "name", "n", nil, "simple (not fully-qualified) class name to remove, repeatable")
	flags.StringArrayVarP(&opts.patterns, "pattern", "p", nil, "regular expression matched against names, repeatable")
	flags.StringVar(&opts.configFile, "config", "", "TOML file with additional names and patterns")
	flags.BoolVarP(&opts.removeAnnotations, "remove-annotations", "a", false, "also remove annotations used in code")
	flags.StringVar(&opts.color, "color", "auto", "colorize diagnostics: auto, on or off")
	flags.CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity, repeatable")
	flags.StringVar(&opts.logPath, "log", "", "write logs to this file instead of standard error")

	cmd.Flags().BoolVarP(&opts.inPlace, "in-place", "i", false, "replace the contents of files")
	cmd.Flags().BoolVarP(&opts.strict, "strict", "s", false, "with -i, fail if any name, pattern or file root had no effect")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "print a unified diff instead of the rewritten content")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "number of files processed in parallel, 0 for one per CPU")

	cmd.AddCommand(newLSPCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func (o *rootOptions) setup() error {
	var path *string
	if o.logPath != "" {
		path = &o.logPath
	}
	commonlog.Configure(defaultVerbosity+o.verbose, path)

	switch o.color {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !term.IsTerminal(int(os.Stderr.Fd()))
	default:
		return &exitError{code: exitUsage, err: fmt.Errorf("invalid --color value %q, want auto, on or off", o.color)}
	}
	return nil
}

func runRemove(cmd *cobra.Command, opts *rootOptions, args []string) error {
	params, err := config.Build(opts.configOptions(args))
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}

	tasks := []rewrite.Task{{}}
	if len(args) > 0 {
		tasks, err = rewrite.Collect(args)
		if err != nil {
			return &exitError{code: exitFiles, err: err}
		}
		if len(tasks) == 0 {
			return &exitError{code: exitUsage, err: errNoValidInputFiles}
		}
	}

	runner := rewrite.NewRunner(params)
	runner.Stdin = cmd.InOrStdin()
	runner.Stdout = cmd.OutOrStdout()
	runner.Stderr = cmd.ErrOrStderr()
	runner.Diff = opts.diff && !params.InPlace
	runner.Jobs = opts.jobs

	if errs := runner.Run(cmd.Context(), tasks); len(errs) > 0 {
		reportFileErrors(cmd.ErrOrStderr(), errs)
		return &exitError{code: exitFiles, err: errFilesFailed, reported: true}
	}

	if params.Strict {
		tracker := params.Observer().(*strict.Tracker)
		if violations := tracker.Violations(params.RemoveAnnotations); len(violations) > 0 {
			reportViolations(cmd.ErrOrStderr(), violations)
			return &exitError{code: exitStrict, err: errStrictViolation, reported: true}
		}
	}
	return nil
}
