// Package cli implements the ghrelease command line.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jmgilman/go/releases/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries state shared by all commands.
type app struct {
	v      *viper.Viper
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		v:      viper.New(),
		stdout: stdout,
		stderr: stderr,
	}
}

// NewRootCommand builds the ghrelease command tree.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	return newApp(stdout, stderr).rootCommand()
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "ghrelease",
		Short:         "Manage GitHub releases and release assets.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.String(keyConfig, "", "config file (default ./ghrelease.yaml or $HOME/.config/ghrelease/ghrelease.yaml)")
	flags.String(keyToken, "", "GitHub token (default $GITHUB_TOKEN)")
	flags.String(keyAPIURL, "", "API host (default https://api.github.com)")
	flags.String(keyUploadURL, "", "upload host (default https://uploads.github.com)")
	flags.String(keyUserAgent, "", "User-Agent header")
	flags.Duration(keyTimeout, 0, "request timeout, 0 for none")
	flags.StringP(keyOutput, "o", formatJSON, "output format: json or yaml")
	flags.BoolP(keyVerbose, "v", false, "log requests to stderr")

	root.AddCommand(
		newLatestCmd(a),
		newReleaseCmd(a),
		newAssetCmd(a),
	)

	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	a := newApp(os.Stdout, os.Stderr)
	root := a.rootCommand()
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		a.printError(err)
		return 1
	}
	return 0
}

// printError writes err to stderr as JSON when the output format is json,
// otherwise as text.
func (a *app) printError(err error) {
	w := a.stderr
	if a.v.GetString(keyOutput) == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(errors.ToJSON(err)); encErr == nil {
			return
		}
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
