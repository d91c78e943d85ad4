package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/progdeck/internal/config"
	"github.com/ytget/progdeck/internal/platform"
)

type harness struct {
	t        *testing.T
	dir      string
	document string
}

func newHarness(t *testing.T, document string) *harness {
	t.Helper()
	for _, key := range []string{config.EnvDocument, config.EnvDurationUnit, config.EnvDefaultColor, config.EnvLogLevel, config.EnvIndent} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	return &harness{t: t, dir: dir, document: filepath.Join(dir, document)}
}

func (h *harness) write(content string) {
	h.t.Helper()
	require.NoError(h.t, os.WriteFile(h.document, []byte(content), 0o644))
}

func (h *harness) run(args ...string) (int, string, string) {
	h.t.Helper()
	var stdout, stderr bytes.Buffer
	base := []string{
		"-config", filepath.Join(h.dir, "settings.yaml"),
		"-env", filepath.Join(h.dir, "missing.env"),
		"-file", h.document,
	}
	code := run(append(base, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

const clockDoc = `{
  "active": "Clock",
  "programs": [
    {"name": "Clock", "text": ["12:00"], "color": "#FF0000", "duration": 5},
    {"name": "News", "text": ["Line one", "Line two"], "color": "navy", "duration": 10}
  ]
}`

func TestRunValidate(t *testing.T) {
	h := newHarness(t, "programs.json")
	h.write(clockDoc)

	code, out, _ := h.run("validate")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "ok: 2 programs, total 15s, active \"Clock\"\n", out)
}

func TestRunValidateDanglingActive(t *testing.T) {
	h := newHarness(t, "programs.json")
	h.write(`{"active":"Missing","programs":[]}`)

	code, _, errOut := h.run("validate")
	assert.Equal(t, ExitFailed, code)
	assert.Contains(t, errOut, `program "Missing" not found`)
}

func TestRunValidateMissingField(t *testing.T) {
	h := newHarness(t, "programs.yaml")
	h.write("active: Clock\nprograms:\n  - name: Clock\n    text: ['12:00']\n    color: red\n")

	code, _, errOut := h.run("validate")
	assert.Equal(t, ExitFailed, code)
	assert.Contains(t, errOut, "programs[0].duration: is required")
}

func TestRunActive(t *testing.T) {
	h := newHarness(t, "programs.json")
	h.write(clockDoc)

	code, out, _ := h.run("active")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "Clock (#FF0000, 5s)\n12:00\n", out)
}

func TestRunActiveNone(t *testing.T) {
	h := newHarness(t, "programs.json")
	h.write(`{"active":"","programs":[]}`)

	code, _, errOut := h.run("active")
	assert.Equal(t, ExitFailed, code)
	assert.Contains(t, errOut, "no active program")
}

func TestRunList(t *testing.T) {
	h := newHarness(t, "programs.json")
	h.write(clockDoc)

	code, out, _ := h.run("list")
	require.Equal(t, ExitOK, code)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "*"), "active program should be marked: %q", lines[1])
	assert.Contains(t, lines[2], "News")
	assert.Contains(t, lines[2], "10s")
}

func TestRunEditCommands(t *testing.T) {
	h := newHarness(t, "deck.toml")

	code, _, errOut := h.run("put", "-color", "#00ff00", "Clock", "5", "12:00")
	require.Equal(t, ExitOK, code, errOut)
	code, _, errOut = h.run("put", "News", "2.5", "Headline")
	require.Equal(t, ExitOK, code, errOut)
	code, _, errOut = h.run("select", "News")
	require.Equal(t, ExitOK, code, errOut)
	code, _, errOut = h.run("move", "News", "0")
	require.Equal(t, ExitOK, code, errOut)

	ps, err := platform.NewDocumentService().Load(h.document)
	require.NoError(t, err)
	assert.Equal(t, []string{"News", "Clock"}, ps.Names())
	assert.Equal(t, "News", ps.Active)
	assert.Equal(t, config.DefaultColor, ps.Programs[0].Color)
	assert.Equal(t, "#00ff00", ps.Programs[1].Color)

	code, _, errOut = h.run("remove", "News")
	require.Equal(t, ExitOK, code, errOut)
	ps, err = platform.NewDocumentService().Load(h.document)
	require.NoError(t, err)
	assert.Equal(t, []string{"Clock"}, ps.Names())
	assert.Empty(t, ps.Active)

	code, _, _ = h.run("remove", "News")
	assert.Equal(t, ExitFailed, code)
}

func TestRunSelectUsage(t *testing.T) {
	h := newHarness(t, "programs.json")
	h.write(clockDoc)

	code, _, _ := h.run("select")
	assert.Equal(t, ExitUsage, code)

	code, _, errOut := h.run("select", "-none")
	require.Equal(t, ExitOK, code, errOut)

	code, _, errOut = h.run("active")
	assert.Equal(t, ExitFailed, code)
	assert.Contains(t, errOut, "no active program")
}

func TestRunConvert(t *testing.T) {
	h := newHarness(t, "programs.json")
	h.write(clockDoc)
	out := filepath.Join(h.dir, "programs.yaml")

	code, _, errOut := h.run("convert", out)
	require.Equal(t, ExitOK, code, errOut)

	original, err := platform.NewDocumentService().Load(h.document)
	require.NoError(t, err)
	converted, err := platform.NewDocumentService().Load(out)
	require.NoError(t, err)
	assert.Equal(t, original, converted)
}

func TestRunConvertFormatFlag(t *testing.T) {
	h := newHarness(t, "programs.json")
	h.write(clockDoc)
	out := filepath.Join(h.dir, "programs.out")

	code, _, errOut := h.run("convert", "-format", "toml", out)
	require.Equal(t, ExitOK, code, errOut)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	converted, err := platform.NewDocumentService().DecodePrograms(f, platform.FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, []string{"Clock", "News"}, converted.Names())

	code, _, _ = h.run("convert", "-format", "xml", out)
	assert.Equal(t, ExitUsage, code)
}

func TestRunInitConfig(t *testing.T) {
	h := newHarness(t, "programs.json")
	settingsPath := filepath.Join(h.dir, "settings.yaml")

	code, out, errOut := h.run("init-config")
	require.Equal(t, ExitOK, code, errOut)
	assert.Equal(t, "wrote "+settingsPath+"\n", out)

	settings, err := config.LoadSettings(settingsPath)
	require.NoError(t, err)
	assert.Equal(t, h.document, settings.GetDocumentPath())
}

func TestRunUsage(t *testing.T) {
	h := newHarness(t, "programs.json")

	code, _, _ := h.run()
	assert.Equal(t, ExitUsage, code)

	code, _, errOut := h.run("dance")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, `unknown command "dance"`)

	code, _, _ = h.run("put", "OnlyName")
	assert.Equal(t, ExitUsage, code)

	code, _, _ = h.run("move", "A", "first")
	assert.Equal(t, ExitUsage, code)
}

func TestRunVersion(t *testing.T) {
	h := newHarness(t, "programs.json")

	code, out, _ := h.run("version")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, AppName+" "+version+"\n", out)
}
