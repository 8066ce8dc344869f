package cmd

import (
	"fmt"
	"time"

	"github.com/msalah0e/fastkey/internal/activity"
	"github.com/msalah0e/fastkey/internal/apikey"
	"github.com/msalah0e/fastkey/internal/generate"
	"github.com/msalah0e/fastkey/internal/logging"
	"github.com/msalah0e/fastkey/internal/token"
	"github.com/spf13/cobra"
)

func tokenCmd(a *app) *cobra.Command {
	var (
		kf       keyFlags
		jsonPath string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token [profile]",
		Short: "Print a signed App Store Connect API token (ES256 JWT)",
		Long: `Print a short-lived App Store Connect API token.

  curl -H "Authorization: Bearer $(fastkey token macos)" https://api.appstoreconnect.apple.com/v1/apps`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				r   apikey.Record
				err error
			)
			profile := profileArg(args)

			if jsonPath != "" {
				if profile != "" {
					return fmt.Errorf("--json cannot be combined with a profile")
				}
				r, err = apikey.ReadFile(jsonPath)
			} else {
				var plan generate.Plan
				plan, err = generate.Resolve(a.cfg, kf.request(cmd, profile), a.getenv)
				if err == nil {
					g := &generate.Generator{OpenVault: a.openVault, SkipValidate: kf.skipValidate}
					r, err = g.Build(plan)
				}
			}
			if err != nil {
				return err
			}

			signed, expires, err := token.Sign(r, token.Options{TTL: ttl})
			if err != nil {
				return err
			}
			logging.Debugf("token for %s expires %s", r.KeyID, expires.Format(time.RFC3339))
			a.logActivity(activity.Entry{Action: "token", Profile: profile, KeyID: r.KeyID, OK: true})

			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}

	kf.register(cmd)
	cmd.Flags().StringVar(&jsonPath, "json", "", "Read key settings from an api_key.json file")
	cmd.Flags().DurationVar(&ttl, "ttl", token.DefaultTTL, "Token lifetime (max 20m)")
	return cmd
}
