package cmd

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msalah0e/fastkey/internal/activity"
	"github.com/msalah0e/fastkey/internal/apikey"
	"github.com/msalah0e/fastkey/internal/config"
)

const testIssuer = "714bd8a7-7a2b-4efb-893d-c5eb74b71125"

// setup isolates config, vault and working directory for one test.
func setup(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("ASC_ISSUER_ID", "")

	cfg := config.Default()
	cfg.Vault.Backend = "file"
	if err := config.Save(cfg); err != nil {
		t.Fatal(err)
	}

	work := t.TempDir()
	orig, _ := os.Getwd()
	if err := os.Chdir(work); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
	return work
}

func writeKey(t *testing.T, dir, keyID string) (string, string) {
	t.Helper()
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	der, _ := x509.MarshalPKCS8PrivateKey(priv)
	data := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	path := filepath.Join(dir, "AuthKey_"+keyID+".p8")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path, string(data)
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	err := run(root, args, &errOut)
	return out.String(), errOut.String(), err
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("invalid JSON in %s: %v", path, err)
	}
	return m
}

func TestGenerate_Success(t *testing.T) {
	work := setup(t)
	keyPath, contents := writeKey(t, work, "7LK8SRK8KU")
	out := filepath.Join("macos", "fastlane", "api_key.json")

	stdout, stderr, err := execute(t, "", "generate", "-k", keyPath, "--issuer-id", testIssuer, "-o", out)
	if err != nil {
		t.Fatalf("generate failed: %v\n%s", err, stderr)
	}
	if !strings.Contains(stdout, "API Key JSON generated successfully at "+out) {
		t.Errorf("missing success message: %q", stdout)
	}

	m := readJSON(t, out)
	if len(m) != 4 {
		t.Errorf("expected 4 fields, got %v", m)
	}
	if m["key_id"] != "7LK8SRK8KU" || m["issuer_id"] != testIssuer || m["in_house"] != false {
		t.Errorf("unexpected fields %v", m)
	}
	if m["key"] != contents {
		t.Error("key must be the literal file contents")
	}
}

func TestGenerate_DefaultOutput(t *testing.T) {
	work := setup(t)
	keyPath, _ := writeKey(t, work, "7LK8SRK8KU")
	t.Setenv("ASC_ISSUER_ID", testIssuer)

	if _, stderr, err := execute(t, "", "generate", "-k", keyPath, "--in-house"); err != nil {
		t.Fatalf("generate failed: %v\n%s", err, stderr)
	}
	m := readJSON(t, apikey.DefaultOutput)
	if m["in_house"] != true {
		t.Error("--in-house not applied")
	}
}

func TestGenerate_UnreadableKey(t *testing.T) {
	work := setup(t)

	stdout, stderr, err := execute(t, "", "generate",
		"-k", filepath.Join(work, "AuthKey_7LK8SRK8KU.p8"), "--issuer-id", testIssuer)
	if err == nil {
		t.Fatal("expected failure for a missing key file")
	}
	if !errors.Is(err, errReported) {
		t.Errorf("generate errors should be reported once, got %v", err)
	}
	if !strings.Contains(stderr, "Error generating API Key JSON:") {
		t.Errorf("missing error message: %q", stderr)
	}
	if strings.Count(stderr, "Error generating") != 1 {
		t.Errorf("error printed more than once: %q", stderr)
	}
	if strings.Contains(stdout, "successfully") {
		t.Error("success message printed on failure")
	}
	if _, err := os.Stat(apikey.DefaultOutput); !os.IsNotExist(err) {
		t.Error("no output should be written")
	}
}

func TestGenerate_RefusesOverwrite(t *testing.T) {
	work := setup(t)
	keyPath, _ := writeKey(t, work, "7LK8SRK8KU")
	args := []string{"generate", "-k", keyPath, "--issuer-id", testIssuer}

	if _, _, err := execute(t, "", args...); err != nil {
		t.Fatal(err)
	}
	_, stderr, err := execute(t, "", args...)
	if err == nil || !strings.Contains(stderr, "--force") {
		t.Errorf("expected overwrite refusal, got %v %q", err, stderr)
	}
	if _, _, err := execute(t, "", append(args, "--force")...); err != nil {
		t.Errorf("--force should overwrite: %v", err)
	}
}

func TestGenerate_Stdout(t *testing.T) {
	work := setup(t)
	keyPath, _ := writeKey(t, work, "7LK8SRK8KU")

	stdout, _, err := execute(t, "", "generate", "-k", keyPath, "--issuer-id", testIssuer, "--stdout")
	if err != nil {
		t.Fatal(err)
	}
	var r apikey.Record
	if err := json.Unmarshal([]byte(stdout), &r); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if r.KeyID != "7LK8SRK8KU" {
		t.Errorf("unexpected key id %q", r.KeyID)
	}
	if _, err := os.Stat(apikey.DefaultOutput); !os.IsNotExist(err) {
		t.Error("--stdout must not write a file")
	}
	entries, err := activity.Read(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !entries[0].OK || entries[0].Output != "-" {
		t.Errorf("--stdout should be logged: %+v", entries)
	}
}

func TestGenerate_ResolveFailureIsLogged(t *testing.T) {
	work := setup(t)
	keyPath, _ := writeKey(t, work, "7LK8SRK8KU")

	_, stderr, err := execute(t, "", "generate", "-k", keyPath)
	if err == nil {
		t.Fatal("expected failure without an issuer id")
	}
	if !strings.Contains(stderr, "Error generating API Key JSON: issuer id unknown") {
		t.Errorf("unexpected stderr %q", stderr)
	}

	execute(t, "", "generate", "nosuchprofile")

	entries, err := activity.Read(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 failed entries, got %+v", entries)
	}
	// newest first
	if entries[0].OK || entries[0].Profile != "nosuchprofile" {
		t.Errorf("unknown profile not logged: %+v", entries[0])
	}
	if entries[1].OK || entries[1].KeyID != "7LK8SRK8KU" || !strings.Contains(entries[1].Error, "issuer id") {
		t.Errorf("missing issuer not logged: %+v", entries[1])
	}
}

func TestProfiles_GenerateAll(t *testing.T) {
	work := setup(t)
	iosKey, _ := writeKey(t, work, "AAAAAAAAAA")
	macKey, _ := writeKey(t, work, "BBBBBBBBBB")

	if _, _, err := execute(t, "", "profile", "add", "ios", "-k", iosKey, "--issuer-id", testIssuer, "-o", "ios/fastlane/api_key.json"); err != nil {
		t.Fatalf("profile add ios: %v", err)
	}
	if _, _, err := execute(t, "", "profile", "add", "macos", "-k", macKey, "--issuer-id", testIssuer, "-o", "macos/fastlane/api_key.json", "--in-house"); err != nil {
		t.Fatalf("profile add macos: %v", err)
	}

	stdout, _, err := execute(t, "", "profile", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "AAAAAAAAAA") || !strings.Contains(stdout, "BBBBBBBBBB") {
		t.Errorf("profile list missing entries: %s", stdout)
	}

	if _, stderr, err := execute(t, "", "generate", "macos"); err != nil {
		t.Fatalf("generate macos: %v\n%s", err, stderr)
	}
	if m := readJSON(t, "macos/fastlane/api_key.json"); m["in_house"] != true || m["key_id"] != "BBBBBBBBBB" {
		t.Errorf("unexpected macos output %v", m)
	}

	stdout, stderr, err := execute(t, "", "generate", "--all", "--force")
	if err != nil {
		t.Fatalf("generate --all: %v\n%s", err, stderr)
	}
	if !strings.Contains(stdout, "for 2 profiles") {
		t.Errorf("unexpected --all output: %s", stdout)
	}
	readJSON(t, "ios/fastlane/api_key.json")
}

func TestGenerateAll_ReportsFailures(t *testing.T) {
	work := setup(t)
	keyPath, _ := writeKey(t, work, "AAAAAAAAAA")
	execute(t, "", "profile", "add", "good", "-k", keyPath, "--issuer-id", testIssuer, "-o", "good.json")
	execute(t, "", "profile", "add", "gone", "-k", filepath.Join(work, "AuthKey_CCCCCCCCCC.p8"), "--issuer-id", testIssuer, "-o", "gone.json")

	_, stderr, err := execute(t, "", "generate", "--all")
	if err == nil {
		t.Fatal("expected failure when one profile fails")
	}
	if !strings.Contains(stderr, "1 of 2 profiles failed") {
		t.Errorf("unexpected stderr %q", stderr)
	}
	readJSON(t, "good.json")
}

func TestProfile_InHouseFromDefaults(t *testing.T) {
	work := setup(t)
	keyPath, _ := writeKey(t, work, "AAAAAAAAAA")

	cfg, err := config.LoadUser()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Defaults.InHouse = true
	if err := config.Save(cfg); err != nil {
		t.Fatal(err)
	}

	if _, _, err := execute(t, "", "profile", "add", "ent", "-k", keyPath, "--issuer-id", testIssuer, "-o", "ent.json"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, "", "profile", "add", "std", "-k", keyPath, "--issuer-id", testIssuer, "-o", "std.json", "--in-house=false"); err != nil {
		t.Fatal(err)
	}
	stdout, _, _ := execute(t, "", "profile", "show", "ent")
	if !strings.Contains(stdout, "true (default)") {
		t.Errorf("show should mark the inherited value:\n%s", stdout)
	}

	if _, stderr, err := execute(t, "", "generate", "--all"); err != nil {
		t.Fatalf("generate --all: %v\n%s", err, stderr)
	}
	if m := readJSON(t, "ent.json"); m["in_house"] != true {
		t.Errorf("profile without --in-house should inherit defaults.in_house: %v", m)
	}
	if m := readJSON(t, "std.json"); m["in_house"] != false {
		t.Errorf("explicit --in-house=false should win: %v", m)
	}
}

func TestGenerateAll_HookOutputFollowsProgress(t *testing.T) {
	work := setup(t)
	names := []string{"ios", "macos", "tvos", "watchos"}
	for i, name := range names {
		id := strings.Repeat(string(rune('A'+i)), 10)
		keyPath, _ := writeKey(t, work, id)
		if _, _, err := execute(t, "", "profile", "add", name, "-k", keyPath, "--issuer-id", testIssuer, "-o", name+".json"); err != nil {
			t.Fatal(err)
		}
	}
	cfg, err := config.LoadUser()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Hooks.PostGenerate = `echo "hook:$FASTKEY_PROFILE"; sleep 0.01; echo "done:$FASTKEY_PROFILE"`
	if err := config.Save(cfg); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, err := execute(t, "", "generate", "--all")
	if err != nil {
		t.Fatalf("generate --all: %v\n%s", err, stderr)
	}
	lines := strings.Split(stdout, "\n")
	for _, name := range names {
		found := false
		for i, line := range lines {
			if strings.HasPrefix(line, "hook:"+name) {
				found = true
				if i == 0 || !strings.Contains(lines[i-1], " "+name+" ") || lines[i+1] != "done:"+name {
					t.Errorf("hook output for %s is not grouped with its progress line:\n%s", name, stdout)
				}
			}
		}
		if !found {
			t.Errorf("missing hook output for %s:\n%s", name, stdout)
		}
	}
}

func TestGenerateAll_NoProfiles(t *testing.T) {
	setup(t)
	if _, _, err := execute(t, "", "generate", "--all"); err == nil {
		t.Error("expected error without profiles")
	}
}

func TestProfile_AddValidation(t *testing.T) {
	work := setup(t)
	keyPath, _ := writeKey(t, work, "AAAAAAAAAA")

	if _, _, err := execute(t, "", "profile", "add", "x", "-k", keyPath, "--issuer-id", "nope"); err == nil {
		t.Error("expected invalid issuer error")
	}
	if _, _, err := execute(t, "", "profile", "add", "x", "--issuer-id", testIssuer); err == nil {
		t.Error("expected missing key source error")
	}
	if _, _, err := execute(t, "", "profile", "add", "x", "-k", keyPath, "--issuer-id", testIssuer); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, "", "profile", "add", "x", "-k", keyPath, "--issuer-id", testIssuer); err == nil {
		t.Error("expected duplicate profile error")
	}

	stdout, _, err := execute(t, "", "profile", "show", "x")
	if err != nil || !strings.Contains(stdout, keyPath) {
		t.Errorf("show failed: %v %s", err, stdout)
	}

	if _, _, err := execute(t, "", "profile", "rm", "x"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, "", "profile", "show", "x"); err == nil {
		t.Error("expected profile to be gone")
	}
}

func TestKeys_ImportAndGenerateFromVault(t *testing.T) {
	work := setup(t)
	keyPath, contents := writeKey(t, work, "AAAAAAAAAA")

	stdout, _, err := execute(t, "", "keys", "import", keyPath, "--delete-file")
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(stdout, "AuthKey_AAAAAAAAAA stored in vault") {
		t.Errorf("unexpected import output %q", stdout)
	}
	if _, err := os.Stat(keyPath); !os.IsNotExist(err) {
		t.Error("--delete-file should remove the source file")
	}

	stdout, _, err = execute(t, "", "keys", "list")
	if err != nil || !strings.Contains(stdout, "AAAAAAAAAA") {
		t.Errorf("keys list: %v %s", err, stdout)
	}

	if _, stderr, err := execute(t, "", "generate", "--from-vault", "--key-id", "AAAAAAAAAA", "--issuer-id", testIssuer); err != nil {
		t.Fatalf("generate from vault: %v\n%s", err, stderr)
	}
	if m := readJSON(t, apikey.DefaultOutput); m["key"] != contents {
		t.Error("vault contents not written")
	}

	if _, _, err := execute(t, "", "keys", "rm", "AAAAAAAAAA"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, "", "keys", "rm", "AAAAAAAAAA"); err == nil {
		t.Error("expected error removing a missing key")
	}
}

func TestKeys_ImportStdin(t *testing.T) {
	work := setup(t)
	_, contents := writeKey(t, work, "AAAAAAAAAA")

	if _, _, err := execute(t, contents, "keys", "import", "-"); err == nil {
		t.Error("stdin import without --key-id should fail")
	}
	if _, _, err := execute(t, contents, "keys", "import", "-", "--key-id", "AAAAAAAAAA"); err != nil {
		t.Fatalf("stdin import: %v", err)
	}
	if _, _, err := execute(t, "garbage", "keys", "import", "-", "--key-id", "BBBBBBBBBB"); err == nil {
		t.Error("invalid key should be rejected")
	}
}

func TestToken(t *testing.T) {
	work := setup(t)
	keyPath, _ := writeKey(t, work, "7LK8SRK8KU")

	stdout, stderr, err := execute(t, "", "token", "-k", keyPath, "--issuer-id", testIssuer, "--ttl", "5m")
	if err != nil {
		t.Fatalf("token failed: %v\n%s", err, stderr)
	}
	if parts := strings.Split(strings.TrimSpace(stdout), "."); len(parts) != 3 {
		t.Errorf("expected a JWT, got %q", stdout)
	}

	execute(t, "", "generate", "-k", keyPath, "--issuer-id", testIssuer)
	if _, _, err := execute(t, "", "token", "--json", apikey.DefaultOutput); err != nil {
		t.Errorf("token --json: %v", err)
	}
	if _, _, err := execute(t, "", "token", "--json", apikey.DefaultOutput, "--ttl", "1h"); err == nil {
		t.Error("expected ttl error")
	}
}

func TestInspect(t *testing.T) {
	work := setup(t)
	keyPath, _ := writeKey(t, work, "7LK8SRK8KU")
	execute(t, "", "generate", "-k", keyPath, "--issuer-id", testIssuer)

	stdout, _, err := execute(t, "", "inspect")
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	for _, want := range []string{"7LK8SRK8KU", testIssuer, "sha256:", "valid"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("inspect output missing %q:\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "BEGIN PRIVATE KEY") {
		t.Error("inspect must not print the key")
	}

	os.WriteFile("broken.json", []byte(`{"key_id":"7LK8SRK8KU"}`), 0o600)
	_, stderr, err := execute(t, "", "inspect", "broken.json")
	if err == nil || !strings.Contains(stderr, "issuer_id") {
		t.Errorf("expected validation error, got %v %q", err, stderr)
	}
}

func TestLog(t *testing.T) {
	work := setup(t)
	keyPath, _ := writeKey(t, work, "7LK8SRK8KU")
	execute(t, "", "generate", "-k", keyPath, "--issuer-id", testIssuer)
	execute(t, "", "generate", "-k", filepath.Join(work, "AuthKey_ZZZZZZZZZZ.p8"), "--issuer-id", testIssuer)

	stdout, _, err := execute(t, "", "log")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "7LK8SRK8KU") || !strings.Contains(stdout, "ZZZZZZZZZZ") {
		t.Errorf("log missing entries:\n%s", stdout)
	}

	stdout, _, _ = execute(t, "", "log", "--search", "zzzz")
	if strings.Contains(stdout, "7LK8SRK8KU") {
		t.Errorf("search should filter entries:\n%s", stdout)
	}

	execute(t, "", "log", "--clear")
	stdout, _, _ = execute(t, "", "log")
	if !strings.Contains(stdout, "No activity recorded") {
		t.Errorf("expected empty log, got %s", stdout)
	}
}

func TestCompletion(t *testing.T) {
	setup(t)
	stdout, _, err := execute(t, "", "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "fastkey") {
		t.Error("completion script should mention fastkey")
	}
}

func TestMalformedConfig(t *testing.T) {
	setup(t)
	os.WriteFile(config.Path(), []byte("[ui\n"), 0o644)
	_, stderr, err := execute(t, "", "profile", "list")
	if err == nil || !strings.Contains(stderr, "config") {
		t.Errorf("expected config error, got %v %q", err, stderr)
	}
}

func TestDoctor(t *testing.T) {
	work := setup(t)
	keyPath, _ := writeKey(t, work, "AAAAAAAAAA")
	execute(t, "", "profile", "add", "ios", "-k", keyPath, "--issuer-id", testIssuer)

	stdout, _, err := execute(t, "", "doctor")
	if err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "1/1 profiles healthy") {
		t.Errorf("unexpected doctor output:\n%s", stdout)
	}

	os.Remove(keyPath)
	stdout, _, err = execute(t, "", "doctor")
	if err == nil {
		t.Error("doctor should fail when a key file is missing")
	}
	if !strings.Contains(stdout, "0/1 profiles healthy") {
		t.Errorf("unexpected doctor output:\n%s", stdout)
	}
}

func TestCheckRuntime_Missing(t *testing.T) {
	var buf bytes.Buffer
	checkRuntime(&buf, "fastlane", "fastkey-no-such-binary")
	if !strings.Contains(buf.String(), "⚠") || !strings.Contains(buf.String(), "fastlane: not found") {
		t.Errorf("missing runtime should be flagged as a warning: %q", buf.String())
	}
}

func TestCheckOutputDir(t *testing.T) {
	dir := t.TempDir()
	if err := checkOutputDir(filepath.Join(dir, "a", "b", "api_key.json")); err != nil {
		t.Errorf("missing directories are fine: %v", err)
	}
	file := filepath.Join(dir, "file")
	os.WriteFile(file, nil, 0o600)
	if err := checkOutputDir(filepath.Join(file, "api_key.json")); err == nil {
		t.Error("expected error when the parent is a file")
	}
}

func TestEnv(t *testing.T) {
	work := setup(t)
	keyPath, contents := writeKey(t, work, "7LK8SRK8KU")

	stdout, _, err := execute(t, "", "env", "-k", keyPath, "--issuer-id", testIssuer)
	if err != nil {
		t.Fatal(err)
	}
	exports := map[string]string{}
	for _, line := range strings.Split(stdout, "\n") {
		if !strings.HasPrefix(line, "export ") {
			continue
		}
		name, value, _ := strings.Cut(strings.TrimPrefix(line, "export "), "=")
		exports[name] = strings.Trim(value, "'")
	}
	if exports[envKeyID] != "7LK8SRK8KU" || exports[envIssuerID] != testIssuer {
		t.Errorf("unexpected exports %v", exports)
	}
	decoded, err := base64.StdEncoding.DecodeString(exports[envKey])
	if err != nil || string(decoded) != contents {
		t.Errorf("key export does not round trip: %v", err)
	}

	stdout, _, err = execute(t, "", "env", "-k", keyPath, "--issuer-id", testIssuer, "--path")
	if err != nil || !strings.Contains(stdout, envKeyPath+"=") || !strings.Contains(stdout, apikey.DefaultOutput) {
		t.Errorf("unexpected --path output %v %q", err, stdout)
	}
}

func TestEnv_PathWithQuote(t *testing.T) {
	work := setup(t)
	keyPath, _ := writeKey(t, work, "7LK8SRK8KU")
	out := filepath.Join("it's; touch pwned", "api_key.json")

	if _, _, err := execute(t, "", "profile", "add", "quoted", "-k", keyPath, "--issuer-id", testIssuer, "-o", out); err != nil {
		t.Fatal(err)
	}
	stdout, _, err := execute(t, "", "env", "quoted", "--path")
	if err != nil {
		t.Fatal(err)
	}

	got, err := exec.Command("sh", "-c", `eval "$1" && printf %s "$`+envKeyPath+`"`, "sh", stdout).Output()
	if err != nil {
		t.Fatalf("exports do not eval cleanly: %v\n%s", err, stdout)
	}
	want, _ := filepath.Abs(out)
	if string(got) != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if _, err := os.Stat("pwned"); !os.IsNotExist(err) {
		t.Error("path must not be able to inject commands")
	}
}

func TestShellQuote(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "'plain'"},
		{"", "''"},
		{"it's", `'it'\''s'`},
		{"$HOME `id`", "'$HOME `id`'"},
	}
	for _, tt := range tests {
		if got := shellQuote(tt.in); got != tt.want {
			t.Errorf("shellQuote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
