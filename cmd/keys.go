package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/msalah0e/fastkey/internal/activity"
	"github.com/msalah0e/fastkey/internal/apikey"
	"github.com/msalah0e/fastkey/internal/p8"
	"github.com/msalah0e/fastkey/internal/ui"
	"github.com/msalah0e/fastkey/internal/vault"
	"github.com/spf13/cobra"
)

func keysCmd(a *app) *cobra.Command {
	keysCmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage .p8 keys stored in the vault",
	}

	keysCmd.AddCommand(
		keysImportCmd(a),
		keysListCmd(a),
		keysRmCmd(a),
	)

	return keysCmd
}

func keysImportCmd(a *app) *cobra.Command {
	var (
		keyID      string
		deleteFile bool
	)

	cmd := &cobra.Command{
		Use:   "import <AuthKey_KEYID.p8 | ->",
		Short: "Store a .p8 key in the vault",
		Long: `Store a .p8 key in the vault so it can be used with --from-vault and
vault profiles. Pass "-" to read the key from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]

			var data []byte
			var err error
			if source == "-" {
				if stdinIsTerminal(cmd.InOrStdin()) {
					return fmt.Errorf("pipe the key into stdin, e.g. `fastkey keys import - --key-id <ID> < key.p8`")
				}
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(source)
			}
			if err != nil {
				return err
			}

			if keyID == "" {
				keyID, _ = apikey.KeyIDFromPath(source)
			}
			if !apikey.ValidKeyID(keyID) {
				return fmt.Errorf("key id unknown or invalid: pass --key-id")
			}

			key, err := p8.Parse(data)
			if err != nil {
				return fmt.Errorf("%s: %w", source, err)
			}

			v, err := a.openVault()
			if err != nil {
				return err
			}
			name := apikey.VaultName(keyID)
			if err := v.Set(name, key.Raw); err != nil {
				return fmt.Errorf("store %s: %w", name, err)
			}
			a.logActivity(activity.Entry{Action: "import", KeyID: keyID, OK: true})

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "  %s %s stored in vault %s\n", ui.StatusIcon(true), name, ui.Subtle.Sprint("sha256:"+key.ShortFingerprint()))

			if deleteFile && source != "-" {
				if err := os.Remove(source); err != nil {
					return err
				}
				fmt.Fprintf(w, "  %s removed %s\n", ui.StatusIcon(true), source)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&keyID, "key-id", "", "Key ID (inferred from the file name when omitted)")
	cmd.Flags().BoolVar(&deleteFile, "delete-file", false, "Delete the .p8 file after importing")
	return cmd
}

func keysListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored keys with their fingerprints",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.openVault()
			if err != nil {
				return err
			}
			names, err := v.List()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			var rows [][]string
			for _, name := range names {
				if !strings.HasPrefix(name, "AuthKey_") {
					continue
				}
				fp := "unreadable"
				if raw, err := v.Get(name); err == nil {
					if key, err := p8.Parse([]byte(raw)); err == nil {
						fp = vault.Mask(key.Fingerprint())
					}
				}
				rows = append(rows, []string{strings.TrimPrefix(name, "AuthKey_"), fp})
			}

			if len(rows) == 0 {
				fmt.Fprintln(w, "  No keys stored.")
				fmt.Fprintln(w, "  Run `fastkey keys import AuthKey_<KEYID>.p8` to add one")
				return nil
			}

			ui.Banner(w, "stored keys")
			ui.Table(w, []string{"KEY ID", "FINGERPRINT"}, rows)
			fmt.Fprintf(w, "\n  %d keys stored\n", len(rows))
			return nil
		},
	}
}

func keysRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <KEYID>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a key from the vault",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !strings.HasPrefix(name, "AuthKey_") {
				name = apikey.VaultName(name)
			}

			v, err := a.openVault()
			if err != nil {
				return err
			}
			if err := v.Delete(name); err != nil {
				return err
			}
			a.logActivity(activity.Entry{Action: "remove", KeyID: strings.TrimPrefix(name, "AuthKey_"), OK: true})
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %s removed from vault\n", ui.StatusIcon(true), name)
			return nil
		},
	}
}
