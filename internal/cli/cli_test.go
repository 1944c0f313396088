package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/matzehuels/svgring/pkg/errors"
	"github.com/matzehuels/svgring/pkg/observability"
	"github.com/matzehuels/svgring/pkg/svgdoc"
)

const input = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" id="svg2" width="1500" height="1030">
  <defs id="defs4"><path id="star" d="M0 0L10 0L5 8Z"/></defs>
  <g id="layer1" transform="translate(100,100)">
    <g id="g16532" transform="translate(650,90)"><use xlink:href="#star"/></g>
    <g id="g16722"><use xlink:href="#star"/></g>
    <g id="g16712"><use xlink:href="#star"/></g>
  </g>
</svg>
`

// harness runs commands against a fresh CLI with captured output.
type harness struct {
	t      *testing.T
	dir    string
	stdout bytes.Buffer
	logs   bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Cleanup(observability.Reset)
	h := &harness{t: t, dir: t.TempDir()}
	h.write("in.svg", input)
	return h
}

func (h *harness) path(name string) string {
	return filepath.Join(h.dir, name)
}

func (h *harness) write(name, content string) string {
	h.t.Helper()
	p := h.path(name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		h.t.Fatal(err)
	}
	return p
}

func (h *harness) run(args ...string) error {
	h.t.Helper()
	h.stdout.Reset()
	c := New(&h.logs, LogInfo)
	c.Stdout = &h.stdout
	c.Stderr = io.Discard

	if args == nil {
		args = []string{} // nil makes cobra fall back to os.Args
	}
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&h.stdout)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRegenerate(t *testing.T) {
	h := newHarness(t)
	out := h.path("out.svg")

	if err := h.run(h.path("in.svg"), out); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	doc, err := svgdoc.Load(out)
	if err != nil {
		t.Fatalf("Load(output) error = %v", err)
	}
	layer := svgdoc.FindByID(doc.Root(), "layer1")
	if n := len(layer.ChildElements()); n != 27 {
		t.Errorf("layer1 has %d children, want 27", n)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.HasPrefix(text, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Errorf("output does not start with an XML declaration: %.60q", text)
	}
	if !strings.Contains(text, `xlink:href="#star"`) {
		t.Error("output lost the xlink prefix")
	}

	stdout := h.stdout.String()
	for _, want := range []string{
		"(650.000000, 415.000000)",
		"Wrote " + out,
		"If the order is reversed, set direction = -1",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
	if !strings.Contains(h.logs.String(), "Regenerated 27 copies of g16532") {
		t.Errorf("logs missing progress line:\n%s", h.logs.String())
	}
}

func TestRegenerateWithConfig(t *testing.T) {
	h := newHarness(t)
	cfg := h.write("ring.toml", "count = 6\ndirection = -1\n")
	out := h.path("out.svg")

	if err := h.run("-c", cfg, h.path("in.svg"), out); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	doc, err := svgdoc.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	w := svgdoc.FindByID(doc.Root(), "g16532_new01_wrap")
	if w == nil {
		t.Fatal("wrapper g16532_new01_wrap not found")
	}
	if got := svgdoc.TransformOf(w); got != "rotate(-60 650 415)" {
		t.Errorf("transform = %q, want %q", got, "rotate(-60 650 415)")
	}
	if n := len(svgdoc.FindByID(doc.Root(), "layer1").ChildElements()); n != 6 {
		t.Errorf("layer1 has %d children, want 6", n)
	}
	if !strings.Contains(h.stdout.String(), "set direction = 1") {
		t.Errorf("reversal hint should suggest direction = 1:\n%s", h.stdout.String())
	}
}

func TestRegenerateFailuresWriteNothing(t *testing.T) {
	tests := []struct {
		name   string
		config string
		input  string
		want   errs.Code
	}{
		{"template missing", `template_id = "g99999"`, input, errs.ErrCodeTemplateNotFound},
		{"unknown config key", `colour = "gold"`, input, errs.ErrCodeInvalidConfig},
		{"skew on ancestor", "", strings.Replace(input, "translate(100,100)", "skewX(5)", 1), errs.ErrCodeUnsupportedCommand},
		{"singular ancestor", "", strings.Replace(input, "translate(100,100)", "scale(0)", 1), errs.ErrCodeNonInvertible},
		{"malformed xml", "", "<svg><g></svg>", errs.ErrCodeInvalidDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			in := h.write("case.svg", tt.input)
			out := h.path("out.svg")

			args := []string{in, out}
			if tt.config != "" {
				args = append([]string{"--config", h.write("ring.toml", tt.config)}, args...)
			}
			err := h.run(args...)
			if got := errs.GetCode(err); got != tt.want {
				t.Fatalf("run() error = %v, want code %s", err, tt.want)
			}
			if code := errs.ExitCode(err); code != errs.ExitFatal {
				t.Errorf("ExitCode() = %d, want %d", code, errs.ExitFatal)
			}
			if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
				t.Errorf("output file exists after failure (stat err = %v)", statErr)
			}
		})
	}
}

func TestMissingInput(t *testing.T) {
	h := newHarness(t)
	err := h.run(h.path("nope.svg"), h.path("out.svg"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("run() error = %v, want %s", err, errs.ErrCodeFileNotFound)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"one arg", []string{"in.svg"}},
		{"three args", []string{"a.svg", "b.svg", "c.svg"}},
		{"unknown flag", []string{"--bogus", "a.svg", "b.svg"}},
		{"inspect missing id", []string{"inspect", "a.svg"}},
		{"tree png without output", []string{"tree", "--format", "png", "a.svg"}},
		{"tree unknown format", []string{"tree", "--format", "gif", "a.svg"}},
		{"completion unknown shell", []string{"completion", "tcsh"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			err := h.run(tt.args...)
			if code := errs.ExitCode(err); code != errs.ExitUsage {
				t.Errorf("ExitCode(%v) = %d, want %d", err, code, errs.ExitUsage)
			}
		})
	}
}

func TestDryRun(t *testing.T) {
	h := newHarness(t)
	out := h.path("out.svg")
	if err := h.run("--dry-run", h.path("in.svg"), out); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("--dry-run wrote the output file")
	}
	if !strings.Contains(h.stdout.String(), "Dry run") {
		t.Errorf("stdout missing dry run notice:\n%s", h.stdout.String())
	}
}

func TestInspect(t *testing.T) {
	h := newHarness(t)
	if err := h.run("inspect", h.path("in.svg"), "layer1"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	stdout := h.stdout.String()
	for _, want := range []string{
		`<g id="layer1">`,
		`<svg id="svg2">`,
		"translate(100,100)",
		"matrix(1 0 0 1 100 100)",
		"(750.000000, 515.000000)",
		"(650.000000, 415.000000)",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("inspect output missing %q:\n%s", want, stdout)
		}
	}

	err := h.run("inspect", h.path("in.svg"), "nope")
	if !errs.Is(err, errs.ErrCodeElementNotFound) {
		t.Errorf("inspect(nope) error = %v, want %s", err, errs.ErrCodeElementNotFound)
	}
}

func TestInspectSingular(t *testing.T) {
	h := newHarness(t)
	in := h.write("flat.svg", strings.Replace(input, "translate(100,100)", "scale(0)", 1))
	if err := h.run("inspect", in, "layer1"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(h.stdout.String(), "non-invertible") {
		t.Errorf("inspect output should warn about the singular matrix:\n%s", h.stdout.String())
	}
}

func TestTreeDOT(t *testing.T) {
	h := newHarness(t)
	if err := h.run("tree", "--root", "layer1", h.path("in.svg")); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	dot := h.stdout.String()
	for _, want := range []string{
		"digraph G {",
		`label="g#layer1\ntranslate(100,100)"`,
		`label="g#g16532\ntranslate(650,90)", fillcolor=gold`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("tree output missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "svg#svg2") {
		t.Error("tree --root drew elements outside the subtree")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestTreeStdoutWriteError(t *testing.T) {
	h := newHarness(t)
	c := New(&h.logs, LogInfo)
	c.Stdout = failingWriter{}
	c.Stderr = io.Discard

	root := c.RootCommand()
	root.SetArgs([]string{"tree", h.path("in.svg")})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	if !errs.Is(err, errs.ErrCodeIO) {
		t.Fatalf("tree error = %v, want %s", err, errs.ErrCodeIO)
	}
	if !strings.Contains(err.Error(), "broken pipe") {
		t.Errorf("tree error = %q, want underlying cause", err)
	}
}

func TestTreeToFile(t *testing.T) {
	h := newHarness(t)
	out := h.path("tree.dot")
	if err := h.run("tree", "-o", out, h.path("in.svg")); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "digraph G {") {
		t.Errorf("tree file = %.40q", data)
	}
}

func TestCompletion(t *testing.T) {
	h := newHarness(t)
	if err := h.run("completion", "bash"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(h.stdout.String(), "svgring") {
		t.Error("bash completion does not mention svgring")
	}
}
