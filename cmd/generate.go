package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/msalah0e/fastkey/internal/activity"
	"github.com/msalah0e/fastkey/internal/apikey"
	"github.com/msalah0e/fastkey/internal/generate"
	"github.com/msalah0e/fastkey/internal/hooks"
	"github.com/msalah0e/fastkey/internal/parallel"
	"github.com/msalah0e/fastkey/internal/ui"
	"github.com/spf13/cobra"
)

func generateCmd(a *app) *cobra.Command {
	var (
		kf     keyFlags
		output string
		force  bool
		all    bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:     "generate [profile]",
		Aliases: []string{"gen"},
		Short:   "Write api_key.json from an App Store Connect .p8 key",
		Long: `Write the api_key.json file used by fastlane's app_store_connect_api_key action.

  fastkey generate -k ~/keys/AuthKey_7LK8SRK8KU.p8 --issuer-id <uuid>
  fastkey generate macos              # use a saved profile
  fastkey generate --all              # every saved profile`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := &generate.Generator{
				OpenVault:    a.openVault,
				Hooks:        hooks.NewRunner(a.cfg.Hooks),
				SkipValidate: kf.skipValidate,
				Force:        force,
				Record:       activity.Log,
			}
			g.Hooks.Stdout = cmd.OutOrStdout()
			g.Hooks.Stderr = cmd.ErrOrStderr()

			if all {
				if len(args) > 0 {
					return fmt.Errorf("--all does not take a profile name")
				}
				return generateAll(cmd, a, g)
			}

			req := kf.request(cmd, profileArg(args))
			req.Output = output
			plan, err := generate.Resolve(a.cfg, req, a.getenv)
			if err != nil {
				return reportGenerateError(cmd, g.Fail(plan, err))
			}

			if stdout {
				data, err := g.Render(plan)
				if err != nil {
					return reportGenerateError(cmd, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			if _, err := g.Generate(cmd.Context(), plan); err != nil {
				return reportGenerateError(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s API Key JSON generated successfully at %s\n", ui.SuccessMark(), plan.Output)
			return nil
		},
	}

	kf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default "+apikey.DefaultOutput+")")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing output file")
	cmd.Flags().BoolVar(&all, "all", false, "Generate every saved profile concurrently")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Print the JSON instead of writing a file")
	cmd.MarkFlagsMutuallyExclusive("all", "stdout")
	return cmd
}

func reportGenerateError(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s Error generating API Key JSON: %v\n", ui.FailureMark(), err)
	return errReported
}

func generateAll(cmd *cobra.Command, a *app, g *generate.Generator) error {
	names := a.cfg.ProfileNames()
	if len(names) == 0 {
		return reportGenerateError(cmd, g.Fail(generate.Plan{}, fmt.Errorf("no profiles configured; run `fastkey profile add`")))
	}

	w := cmd.OutOrStdout()
	ui.Banner(w, fmt.Sprintf("generating %d profiles", len(names)))

	tasks := make([]parallel.Task, 0, len(names))
	for _, name := range names {
		name := name
		tasks = append(tasks, parallel.Task{
			Name: name,
			Fn: func(ctx context.Context, out io.Writer) (string, error) {
				plan, err := generate.Resolve(a.cfg, generate.Request{Profile: name}, a.getenv)
				if err != nil {
					return "", g.Fail(plan, err)
				}
				tg := *g
				tg.Hooks = &hooks.Runner{Hooks: g.Hooks.Hooks, Stdout: out, Stderr: out}
				if _, err := tg.Generate(ctx, plan); err != nil {
					return "", err
				}
				return plan.Output, nil
			},
		})
	}

	results := parallel.Run(cmd.Context(), w, tasks, a.cfg.Parallel.Concurrency)

	failed := parallel.Failed(results)
	fmt.Fprintln(w)
	if len(failed) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s Error generating API Key JSON: %d of %d profiles failed\n",
			ui.FailureMark(), len(failed), len(results))
		return errReported
	}
	fmt.Fprintf(w, "%s API Key JSON generated successfully for %d profiles\n", ui.SuccessMark(), len(results))
	return nil
}
