package hooks

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/msalah0e/fastkey/internal/config"
)

const (
	PreGenerate  = "pre_generate"
	PostGenerate = "post_generate"
)

// Env describes the generation a hook runs for.
type Env struct {
	Profile string
	KeyID   string
	Output  string
}

// Runner executes configured hook scripts through sh -c.
type Runner struct {
	Hooks  config.HooksConfig
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner returns a runner writing to the process stdout and stderr.
func NewRunner(h config.HooksConfig) *Runner {
	return &Runner{Hooks: h, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes the hook script for the given phase, if configured.
func (r *Runner) Run(ctx context.Context, phase string, env Env) error {
	script := getHook(r.Hooks, phase)
	if script == "" {
		return nil
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", script)
	cmd.Env = append(os.Environ(),
		"FASTKEY_PHASE="+phase,
		"FASTKEY_PROFILE="+env.Profile,
		"FASTKEY_KEY_ID="+env.KeyID,
		"FASTKEY_OUTPUT="+env.Output,
	)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s hook: %w", phase, err)
	}
	return nil
}

func getHook(h config.HooksConfig, phase string) string {
	switch phase {
	case PreGenerate:
		return h.PreGenerate
	case PostGenerate:
		return h.PostGenerate
	default:
		return ""
	}
}
