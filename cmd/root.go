package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/msalah0e/fastkey/internal/activity"
	"github.com/msalah0e/fastkey/internal/config"
	"github.com/msalah0e/fastkey/internal/logging"
	"github.com/msalah0e/fastkey/internal/ui"
	"github.com/msalah0e/fastkey/internal/vault"
	"github.com/spf13/cobra"
)

var version = "0.3.0"

// errReported marks failures whose message was already printed.
var errReported = errors.New("reported")

// app is the state shared by all subcommands after the root pre-run.
type app struct {
	cfg     *config.Config
	verbose bool
	noColor bool
	getenv  func(string) string
}

func (a *app) openVault() (vault.Vault, error) {
	return vault.New(a.cfg.Vault.Backend)
}

func (a *app) logActivity(e activity.Entry) {
	if err := activity.Log(e); err != nil {
		logging.Warnf("activity log: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default(), getenv: os.Getenv}

	root := &cobra.Command{
		Use:   "fastkey",
		Short: "fastkey — App Store Connect API keys for fastlane",
		Long: ui.Brand.Sprint(ui.Key+" fastkey") + " — turn AuthKey_<KEYID>.p8 files into fastlane api_key.json\n" +
			ui.Subtle.Sprint("Generate key files, manage signing profiles, and mint API tokens"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetOutput(cmd.ErrOrStderr())
			logging.SetVerbose(a.verbose)

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg

			ui.SetEmoji(cfg.UI.Emoji)
			ui.SetColor(cfg.UI.Color && !a.noColor)
			logging.Debugf("config %s, vault backend %q", config.Path(), cfg.Vault.Backend)
			return nil
		},
	}

	root.SetVersionTemplate("fastkey {{ .Version }}\n")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Print diagnostic logs to stderr")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		generateCmd(a),
		inspectCmd(a),
		tokenCmd(a),
		profileCmd(a),
		keysCmd(a),
		logCmd(),
		doctorCmd(a),
		envCmd(a),
		completionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return run(newRootCmd(), os.Args[1:], os.Stderr)
}

func run(root *cobra.Command, args []string, stderr io.Writer) error {
	root.SetArgs(args)
	err := root.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(stderr, "%s %v\n", ui.FailureMark(), err)
	}
	return err
}
