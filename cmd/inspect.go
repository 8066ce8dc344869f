package cmd

import (
	"fmt"

	"github.com/msalah0e/fastkey/internal/apikey"
	"github.com/msalah0e/fastkey/internal/p8"
	"github.com/msalah0e/fastkey/internal/ui"
	"github.com/spf13/cobra"
)

func inspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [api_key.json]",
		Short: "Validate an api_key.json and show its contents (key masked)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.Defaults.Output
			if path == "" {
				path = apikey.DefaultOutput
			}
			if len(args) == 1 {
				path = args[0]
			}

			r, err := apikey.ReadFile(path)
			if err != nil {
				return err
			}
			key, err := p8.Parse([]byte(r.Key))
			if err != nil {
				return fmt.Errorf("%s: embedded key: %w", path, err)
			}

			w := cmd.OutOrStdout()
			ui.Banner(w, path)
			ui.Table(w, []string{"FIELD", "VALUE"}, [][]string{
				{"key_id", r.KeyID},
				{"issuer_id", r.IssuerID},
				{"in_house", fmt.Sprintf("%t", r.InHouse)},
				{"key", fmt.Sprintf("PKCS#8 P-256, %d bytes", len(r.Key))},
				{"fingerprint", "sha256:" + key.Fingerprint()},
			})
			fmt.Fprintf(w, "\n  %s valid\n", ui.StatusIcon(true))
			return nil
		},
	}
}
