package cmd

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"

	"github.com/msalah0e/fastkey/internal/generate"
	"github.com/msalah0e/fastkey/internal/p8"
	"github.com/msalah0e/fastkey/internal/ui"
	"github.com/spf13/cobra"
)

var versionPattern = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

func doctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "doctor",
		Aliases: []string{"dr"},
		Short:   "Health check — verify profiles, keys, and fastlane",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			ui.Banner(w, "health check")

			names := a.cfg.ProfileNames()
			healthy := 0
			for _, name := range names {
				detail, err := checkProfile(a, name)
				if err != nil {
					fmt.Fprintf(w, "  %s %s — %v\n", ui.StatusIcon(false), name, err)
					continue
				}
				fmt.Fprintf(w, "  %s %s %s\n", ui.StatusIcon(true), name, ui.Subtle.Sprint(detail))
				healthy++
			}
			if len(names) == 0 {
				fmt.Fprintln(w, "  No profiles saved.")
			}

			fmt.Fprintln(w)
			checkRuntime(w, "fastlane", "fastlane", "--version")
			checkRuntime(w, "Ruby", "ruby", "--version")
			checkRuntime(w, "Bundler", "bundle", "--version")

			if len(names) > 0 {
				fmt.Fprintf(w, "\n  %d/%d profiles healthy\n", healthy, len(names))
			}
			if healthy < len(names) {
				return errReported
			}
			return nil
		},
	}
}

// checkProfile resolves and loads a profile's key without writing anything.
func checkProfile(a *app, name string) (string, error) {
	plan, err := generate.Resolve(a.cfg, generate.Request{Profile: name}, a.getenv)
	if err != nil {
		return "", err
	}
	g := &generate.Generator{OpenVault: a.openVault}
	r, err := g.Build(plan)
	if err != nil {
		return "", err
	}
	key, err := p8.Parse([]byte(r.Key))
	if err != nil {
		return "", err
	}
	if err := checkOutputDir(plan.Output); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s sha256:%s → %s", r.KeyID, key.ShortFingerprint(), plan.Output), nil
}

// checkOutputDir fails when the nearest existing ancestor of path's
// directory is not a directory.
func checkOutputDir(path string) error {
	dir := filepath.Dir(path)
	for {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("output directory %s is a file", dir)
			}
			return nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}
}

func checkRuntime(w io.Writer, name, bin string, args ...string) {
	path, err := exec.LookPath(bin)
	if err != nil {
		fmt.Fprintf(w, "  %s %s: not found\n", ui.WarnIcon(), name)
		return
	}
	out, _ := exec.Command(path, args...).Output()
	ver := versionPattern.FindString(string(out))
	if ver == "" {
		ver = "?"
	}
	fmt.Fprintf(w, "  %s %s: %s\n", ui.StatusIcon(true), name, ui.Info.Sprint(ver))
}
