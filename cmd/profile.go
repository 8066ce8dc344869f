package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/msalah0e/fastkey/internal/apikey"
	"github.com/msalah0e/fastkey/internal/config"
	"github.com/msalah0e/fastkey/internal/ui"
	"github.com/spf13/cobra"
)

func profileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profile",
		Aliases: []string{"profiles"},
		Short:   "Manage saved key profiles",
	}
	cmd.AddCommand(
		profileAddCmd(),
		profileListCmd(a),
		profileShowCmd(a),
		profileRmCmd(),
	)
	return cmd
}

func profileAddCmd() *cobra.Command {
	var (
		p       config.Profile
		inHouse bool
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Save a profile to the user config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			cfg, err := config.LoadUser()
			if err != nil {
				return err
			}
			if _, exists := cfg.Profiles[name]; exists && !force {
				return fmt.Errorf("profile %s already exists (use --force to replace)", name)
			}

			if p.KeyPath != "" {
				abs, err := filepath.Abs(p.KeyPath)
				if err != nil {
					return err
				}
				p.KeyPath = abs
				if p.KeyID == "" {
					p.KeyID, _ = apikey.KeyIDFromPath(abs)
				}
			}
			if p.KeyPath == "" && !p.Vault {
				return fmt.Errorf("profile needs --key or --vault")
			}
			if p.KeyID == "" {
				p.KeyID = strings.ToUpper(ask(cmd.InOrStdin(), cmd.OutOrStdout(), "Key ID"))
			}
			if p.IssuerID == "" {
				p.IssuerID = ask(cmd.InOrStdin(), cmd.OutOrStdout(), "Issuer ID")
			}
			if !apikey.ValidKeyID(p.KeyID) {
				return fmt.Errorf("invalid key id %q: expected 10 upper-case letters or digits", p.KeyID)
			}
			if !apikey.ValidIssuerID(p.IssuerID) {
				return fmt.Errorf("invalid issuer id %q: expected a UUID", p.IssuerID)
			}

			if cmd.Flags().Changed("in-house") {
				p.InHouse = &inHouse
			}

			cfg.Profiles[name] = p
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s profile %s saved to %s\n", ui.StatusIcon(true), ui.Brand.Sprint(name), config.Path())
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&p.KeyPath, "key", "k", "", "Path to the AuthKey_<KEYID>.p8 file")
	fl.StringVar(&p.KeyID, "key-id", "", "Key ID (inferred from the key file name when omitted)")
	fl.StringVar(&p.IssuerID, "issuer-id", "", "Issuer ID")
	fl.StringVarP(&p.Output, "output", "o", "", "Output path for this profile")
	fl.BoolVar(&inHouse, "in-house", false, "Enterprise (in-house) key (defaults.in_house when unset)")
	fl.BoolVar(&p.Vault, "vault", false, "Read the key from the vault (see `fastkey keys import`)")
	fl.BoolVarP(&force, "force", "f", false, "Replace an existing profile")
	return cmd
}

func profileListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			names := a.cfg.ProfileNames()
			if len(names) == 0 {
				fmt.Fprintln(w, "  No profiles saved.")
				fmt.Fprintln(w, "  Run `fastkey profile add <name> -k AuthKey_<KEYID>.p8 --issuer-id <uuid>` to add one")
				return nil
			}

			ui.Banner(w, "profiles")
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				p := a.cfg.Profiles[name]
				rows = append(rows, []string{name, p.KeyID, p.IssuerID, keySource(p), outputOrDefault(a.cfg, p)})
			}
			ui.Table(w, []string{"NAME", "KEY ID", "ISSUER ID", "KEY", "OUTPUT"}, rows)
			fmt.Fprintf(w, "\n  %d profiles\n", len(names))
			return nil
		},
	}
}

func profileShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.cfg.Profile(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			ui.Banner(w, "profile "+args[0])
			ui.Table(w, []string{"FIELD", "VALUE"}, [][]string{
				{"key_id", p.KeyID},
				{"issuer_id", p.IssuerID},
				{"key", keySource(p)},
				{"output", outputOrDefault(a.cfg, p)},
				{"in_house", inHouseSetting(a.cfg, p)},
			})
			return nil
		},
	}
}

func profileRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a profile from the user config",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadUser()
			if err != nil {
				return err
			}
			if _, err := cfg.Profile(args[0]); err != nil {
				return err
			}
			delete(cfg.Profiles, args[0])
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s profile %s removed\n", ui.StatusIcon(true), args[0])
			return nil
		},
	}
}

func keySource(p config.Profile) string {
	if p.Vault {
		return "vault:" + apikey.VaultName(p.KeyID)
	}
	return p.KeyPath
}

func inHouseSetting(cfg *config.Config, p config.Profile) string {
	if p.InHouse == nil {
		return fmt.Sprintf("%t (default)", cfg.Defaults.InHouse)
	}
	return fmt.Sprintf("%t", *p.InHouse)
}

func outputOrDefault(cfg *config.Config, p config.Profile) string {
	switch {
	case p.Output != "":
		return p.Output
	case cfg.Defaults.Output != "":
		return cfg.Defaults.Output
	default:
		return apikey.DefaultOutput
	}
}
