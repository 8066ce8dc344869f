// Package generate resolves key settings from flags, profiles and config and
// writes api_key.json files.
package generate

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/msalah0e/fastkey/internal/activity"
	"github.com/msalah0e/fastkey/internal/apikey"
	"github.com/msalah0e/fastkey/internal/config"
	"github.com/msalah0e/fastkey/internal/hooks"
	"github.com/msalah0e/fastkey/internal/logging"
	"github.com/msalah0e/fastkey/internal/p8"
	"github.com/msalah0e/fastkey/internal/vault"
)

// IssuerEnv is consulted when neither a flag nor a profile sets the issuer id.
const IssuerEnv = "ASC_ISSUER_ID"

var (
	ErrOutputExists = errors.New("output already exists (use --force to overwrite)")
	ErrNoKeySource  = errors.New("no key source: pass --key, --from-vault, or a profile")
	ErrNoKeyID      = errors.New("key id unknown: pass --key-id or name the file AuthKey_<KEYID>.p8")
	ErrNoIssuerID   = errors.New("issuer id unknown: pass --issuer-id or set " + IssuerEnv)
)

// Request carries explicit values from the command line. Empty strings and
// nil pointers mean "not set".
type Request struct {
	Profile   string
	KeyPath   string
	KeyID     string
	IssuerID  string
	Output    string
	InHouse   *bool
	FromVault bool
}

// Plan is a fully resolved generation.
type Plan struct {
	Profile   string
	KeyPath   string
	KeyID     string
	IssuerID  string
	Output    string
	InHouse   bool
	FromVault bool
}

// Resolve merges req over the named profile, then config defaults, then
// inference from the key file name and environment.
func Resolve(cfg *config.Config, req Request, getenv func(string) string) (Plan, error) {
	var prof config.Profile
	if req.Profile != "" {
		p, err := cfg.Profile(req.Profile)
		if err != nil {
			return Plan{Profile: req.Profile}, err
		}
		prof = p
	}

	plan := Plan{
		Profile:   req.Profile,
		KeyPath:   first(req.KeyPath, prof.KeyPath),
		KeyID:     first(req.KeyID, prof.KeyID),
		IssuerID:  first(req.IssuerID, prof.IssuerID, getenv(IssuerEnv)),
		Output:    first(req.Output, prof.Output, cfg.Defaults.Output, apikey.DefaultOutput),
		InHouse:   cfg.Defaults.InHouse,
		FromVault: req.FromVault || (prof.Vault && req.KeyPath == ""),
	}
	if prof.InHouse != nil {
		plan.InHouse = *prof.InHouse
	}
	if req.InHouse != nil {
		plan.InHouse = *req.InHouse
	}

	if plan.KeyID == "" && plan.KeyPath != "" {
		if id, ok := apikey.KeyIDFromPath(plan.KeyPath); ok {
			plan.KeyID = id
		}
	}

	switch {
	case !plan.FromVault && plan.KeyPath == "":
		return plan, ErrNoKeySource
	case plan.KeyID == "":
		return plan, ErrNoKeyID
	case plan.IssuerID == "":
		return plan, ErrNoIssuerID
	}
	return plan, nil
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Generator turns plans into records and files.
type Generator struct {
	// OpenVault is called only for plans that read the key from the vault.
	OpenVault    func() (vault.Vault, error)
	Hooks        *hooks.Runner
	SkipValidate bool
	Force        bool
	// Record is called with every attempt; errors are logged and ignored.
	Record func(activity.Entry) error
}

// Build reads the key material and assembles the record without writing it.
func (g *Generator) Build(plan Plan) (apikey.Record, error) {
	raw, err := g.readKey(plan)
	if err != nil {
		return apikey.Record{}, err
	}

	if !g.SkipValidate {
		if _, err := p8.Parse([]byte(raw)); err != nil {
			return apikey.Record{}, fmt.Errorf("key %s: %w", plan.KeyID, err)
		}
	}

	r := apikey.Record{
		KeyID:    plan.KeyID,
		IssuerID: plan.IssuerID,
		Key:      raw,
		InHouse:  plan.InHouse,
	}
	return r, r.Validate()
}

func (g *Generator) readKey(plan Plan) (string, error) {
	if plan.FromVault {
		if g.OpenVault == nil {
			return "", fmt.Errorf("vault unavailable")
		}
		v, err := g.OpenVault()
		if err != nil {
			return "", err
		}
		logging.Debugf("reading %s from vault", apikey.VaultName(plan.KeyID))
		return v.Get(apikey.VaultName(plan.KeyID))
	}

	logging.Debugf("reading key file %s", plan.KeyPath)
	data, err := os.ReadFile(plan.KeyPath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Generate builds the record for plan and writes it to plan.Output, running
// the configured hooks around the write.
func (g *Generator) Generate(ctx context.Context, plan Plan) (apikey.Record, error) {
	r, err := g.generate(ctx, plan)
	g.record(plan, err)
	return r, err
}

// Render builds the record for plan and returns its JSON without touching
// plan.Output. The attempt is recorded with output "-".
func (g *Generator) Render(plan Plan) ([]byte, error) {
	plan.Output = "-"
	data, err := g.render(plan)
	g.record(plan, err)
	return data, err
}

func (g *Generator) render(plan Plan) ([]byte, error) {
	r, err := g.Build(plan)
	if err != nil {
		return nil, err
	}
	return apikey.Marshal(r)
}

// Fail records a generate attempt that failed before a record could be built,
// such as an unresolvable plan. It returns err unchanged.
func (g *Generator) Fail(plan Plan, err error) error {
	g.record(plan, err)
	return err
}

func (g *Generator) generate(ctx context.Context, plan Plan) (apikey.Record, error) {
	if !g.Force {
		if _, err := os.Stat(plan.Output); err == nil {
			return apikey.Record{}, fmt.Errorf("%s: %w", plan.Output, ErrOutputExists)
		}
	}

	r, err := g.Build(plan)
	if err != nil {
		return r, err
	}

	env := hooks.Env{Profile: plan.Profile, KeyID: plan.KeyID, Output: plan.Output}
	if g.Hooks != nil {
		if err := g.Hooks.Run(ctx, hooks.PreGenerate, env); err != nil {
			return r, err
		}
	}

	if err := apikey.WriteFile(plan.Output, r); err != nil {
		return r, err
	}
	logging.Infof("wrote %s for key %s", plan.Output, plan.KeyID)

	if g.Hooks != nil {
		if err := g.Hooks.Run(ctx, hooks.PostGenerate, env); err != nil {
			return r, err
		}
	}
	return r, nil
}

func (g *Generator) record(plan Plan, err error) {
	if g.Record == nil {
		return
	}
	e := activity.Entry{
		Action:  "generate",
		Profile: plan.Profile,
		KeyID:   plan.KeyID,
		Output:  plan.Output,
		OK:      err == nil,
	}
	if err != nil {
		e.Error = err.Error()
	}
	if lerr := g.Record(e); lerr != nil {
		logging.Warnf("activity log: %v", lerr)
	}
}
