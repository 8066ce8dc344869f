package cmd

import (
	"encoding/base64"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/msalah0e/fastkey/internal/generate"
	"github.com/spf13/cobra"
)

// fastlane reads these when app_store_connect_api_key is called without arguments.
const (
	envKeyID       = "APP_STORE_CONNECT_API_KEY_KEY_ID"
	envIssuerID    = "APP_STORE_CONNECT_API_KEY_ISSUER_ID"
	envKey         = "APP_STORE_CONNECT_API_KEY_KEY"
	envKeyIsBase64 = "APP_STORE_CONNECT_API_KEY_IS_KEY_CONTENT_BASE64"
	envInHouse     = "APP_STORE_CONNECT_API_KEY_IN_HOUSE"
	envKeyPath     = "APP_STORE_CONNECT_API_KEY_PATH"
)

func envCmd(a *app) *cobra.Command {
	var (
		kf       keyFlags
		pathOnly bool
	)

	cmd := &cobra.Command{
		Use:   "env [profile]",
		Short: "Print fastlane environment exports for a key",
		Long: `Print export statements for fastlane's APP_STORE_CONNECT_API_KEY_* variables.

  eval "$(fastkey env macos)"
  eval "$(fastkey env macos --path)"   # point fastlane at the generated api_key.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := generate.Resolve(a.cfg, kf.request(cmd, profileArg(args)), a.getenv)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "# fastkey env — eval \"$(fastkey env)\"")

			if pathOnly {
				abs, err := filepath.Abs(plan.Output)
				if err != nil {
					return err
				}
				export(w, envKeyPath, abs)
				return nil
			}

			g := &generate.Generator{OpenVault: a.openVault, SkipValidate: kf.skipValidate}
			r, err := g.Build(plan)
			if err != nil {
				return err
			}
			export(w, envKeyID, r.KeyID)
			export(w, envIssuerID, r.IssuerID)
			export(w, envKey, base64.StdEncoding.EncodeToString([]byte(r.Key)))
			export(w, envKeyIsBase64, "true")
			export(w, envInHouse, fmt.Sprintf("%t", r.InHouse))
			return nil
		},
	}

	kf.register(cmd)
	cmd.Flags().BoolVar(&pathOnly, "path", false, "Only export "+envKeyPath+" for the profile's output file")
	return cmd
}

func export(w io.Writer, name, value string) {
	fmt.Fprintf(w, "export %s=%s\n", name, shellQuote(value))
}

// shellQuote single-quotes s for POSIX shells; embedded quotes become '\''.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
