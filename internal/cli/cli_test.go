package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takimoto3/apnscodec/internal/cli"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.RootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCheckValidFile(t *testing.T) {
	path := writeFile(t, "ok.json", `{"aps":{"alert":"Hi","badge":3,"sound":"default"},"acme":1}`)

	out, _, err := run(t, "", "check", path)
	require.NoError(t, err)
	assert.Equal(t, path+": ok\n", out)
}

func TestCheckReportsEveryViolation(t *testing.T) {
	path := writeFile(t, "bad.json", `{"aps":{"content-available":2,"sound":{"critical":1,"volume":1.5},"events":"start"}}`)

	out, _, err := run(t, "", "check", path)
	require.ErrorIs(t, err, cli.ErrInvalid)
	assert.Contains(t, out, "aps.content-available: invalid_value")
	assert.Contains(t, out, "aps.sound.volume: out_of_range")
	assert.Contains(t, out, "aps.events: invalid_enum")
	assert.Equal(t, 3, strings.Count(out, ": error: "))
}

func TestCheckWarningsDoNotFail(t *testing.T) {
	path := writeFile(t, "warn.json", `{"aps":{"alert":{"loc-args":["x"]}}}`)

	out, _, err := run(t, "", "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, ": warning: aps.alert.loc-args: orphan_loc_args")
}

func TestCheckStrict(t *testing.T) {
	path := writeFile(t, "warn.json", `{"aps":{"alert":{"loc-args":["x"]}}}`)

	t.Run("flag", func(t *testing.T) {
		_, _, err := run(t, "", "check", "--strict", path)
		assert.ErrorIs(t, err, cli.ErrInvalid)
	})
	t.Run("environment", func(t *testing.T) {
		t.Setenv("APNSLINT_STRICT", "true")
		_, _, err := run(t, "", "check", path)
		assert.ErrorIs(t, err, cli.ErrInvalid)
	})
	t.Run("config file", func(t *testing.T) {
		cfg := writeFile(t, "apnslint.yaml", "strict: true\n")
		_, _, err := run(t, "", "check", "--config", cfg, path)
		assert.ErrorIs(t, err, cli.ErrInvalid)
	})
}

func TestCheckLiveActivityRelevance(t *testing.T) {
	path := writeFile(t, "live.json", `{"aps":{"relevance-score":50,"content-state":{"progress":3}}}`)

	_, _, err := run(t, "", "check", path)
	assert.ErrorIs(t, err, cli.ErrInvalid)

	_, _, err = run(t, "", "check", "--live-activity-relevance", path)
	assert.NoError(t, err)
}

func TestCheckYAML(t *testing.T) {
	path := writeFile(t, "payload.yaml", `
aps:
  alert:
    title: Game Request
    body: Bob wants to play poker
  badge: 9
  sound:
    critical: 1
    name: siren.caf
    volume: 0.5
  interruption-level: time-sensitive
gameID: "12345678"
`)
	out, _, err := run(t, "", "check", path)
	require.NoError(t, err)
	assert.Equal(t, path+": ok\n", out)

	bad := writeFile(t, "bad.yml", "aps:\n  badge: many\n")
	out, _, err = run(t, "", "check", bad)
	require.ErrorIs(t, err, cli.ErrInvalid)
	assert.Contains(t, out, "aps.badge: invalid_type")
}

func TestCheckJSONFormat(t *testing.T) {
	ok := writeFile(t, "ok.json", `{"aps":{"alert":"Hi"}}`)
	bad := writeFile(t, "bad.json", `{"aps":{"badge":"1"}}`)
	broken := writeFile(t, "broken.json", `{"aps":`)

	out, _, err := run(t, "", "check", "--format", "json", ok, bad, broken)
	require.ErrorIs(t, err, cli.ErrInvalid)

	var got []struct {
		File       string `json:"file"`
		Valid      bool   `json:"valid"`
		Error      string `json:"error"`
		Violations []struct {
			Path     string `json:"path"`
			Code     string `json:"code"`
			Severity string `json:"severity"`
		} `json:"violations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 3)

	assert.True(t, got[0].Valid)
	assert.Empty(t, got[0].Violations)

	assert.False(t, got[1].Valid)
	require.Len(t, got[1].Violations, 1)
	assert.Equal(t, "aps.badge", got[1].Violations[0].Path)
	assert.Equal(t, "invalid_type", got[1].Violations[0].Code)
	assert.Equal(t, "error", got[1].Violations[0].Severity)

	assert.False(t, got[2].Valid)
	assert.Contains(t, got[2].Error, "malformed JSON")
}

func TestCheckStdin(t *testing.T) {
	out, _, err := run(t, `{"aps":{"badge":-1}}`, "check", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "-: warning: aps.badge: out_of_range")
}

func TestUnsupportedFormat(t *testing.T) {
	_, _, err := run(t, `{}`, "check", "--format", "xml", "-")
	assert.ErrorContains(t, err, "unsupported format")
}

func TestFmt(t *testing.T) {
	in := `{ "acme": {"b": 2, "a": 1},
	  "aps": {"sound": "default", "badge": 3, "alert": "Hi"} }`

	out, _, err := run(t, in, "fmt")
	require.NoError(t, err)
	assert.Equal(t, `{"aps":{"alert":"Hi","badge":3,"sound":"default"},"acme":{"a":1,"b":2}}`+"\n", out)
}

func TestFmtFromYAML(t *testing.T) {
	path := writeFile(t, "silent.yaml", "aps:\n  content-available: 1\nid: 7\n")

	out, _, err := run(t, "", "fmt", path)
	require.NoError(t, err)
	assert.Equal(t, `{"aps":{"content-available":1},"id":7}`+"\n", out)
}

func TestFmtRejectsInvalid(t *testing.T) {
	out, _, err := run(t, `{"aps":{"mutable-content":true}}`, "fmt")
	require.ErrorIs(t, err, cli.ErrInvalid)
	assert.ErrorContains(t, err, "aps.mutable-content")
	assert.Empty(t, out)
}

func TestFmtLogsWarnings(t *testing.T) {
	_, stderr, err := run(t, `{"aps":{"alert":{"body":"x","colour":"red"}}}`, "fmt")
	require.NoError(t, err)
	assert.Contains(t, stderr, "payload warning")
	assert.Contains(t, stderr, "path=aps.alert.colour")
}

func TestFmtLogsOversizedPayload(t *testing.T) {
	in := `{"aps":{"alert":"` + strings.Repeat("x", 5000) + `"}}`
	out, stderr, err := run(t, in, "fmt")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Contains(t, stderr, "payload exceeds APNs size limit")
}
