package ring

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/svgring/pkg/affine"
	errs "github.com/matzehuels/svgring/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.TemplateID != "g16532" || cfg.Count != 27 || cfg.Direction != 1 {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
	if len(cfg.DeleteIDs) != 19 {
		t.Errorf("len(DeleteIDs) = %d, want 19", len(cfg.DeleteIDs))
	}

	cfg.DeleteIDs[0] = "changed"
	if DefaultDeleteIDs[0] != "g16722" {
		t.Error("DefaultConfig() shares DeleteIDs with the package default")
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(`
template_id = "star"
delete_ids = ["a", "b"]
count = 12
direction = -1

[center]
x = 10.5
y = -4
`)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	want := Config{
		TemplateID: "star",
		DeleteIDs:  []string{"a", "b"},
		Center:     affine.Point{X: 10.5, Y: -4},
		Count:      12,
		Direction:  -1,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("ParseConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfigKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig(`count = 9`)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	want := DefaultConfig()
	want.Count = 9
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("ParseConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", `colour = "red"`},
		{"syntax", `count = `},
		{"wrong type", `count = "many"`},
		{"zero count", `count = 0`},
		{"bad direction", `direction = 2`},
		{"bad template id", `template_id = "1abc"`},
		{"bad delete id", `delete_ids = ["ok", "has space"]`},
		{"nan center", "[center]\nx = nan\ny = 0"},
		{"infinite center", "[center]\nx = 0\ny = -inf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(tt.data)
			if !errs.Is(err, errs.ErrCodeInvalidConfig) {
				t.Errorf("ParseConfig(%q) error = %v, want %s", tt.data, err, errs.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ring.toml")
	if err := os.WriteFile(path, []byte("count = 6\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Count != 6 {
		t.Errorf("Count = %d, want 6", cfg.Count)
	}

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("LoadConfig(missing) error = %v, want %s", err, errs.ErrCodeFileNotFound)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("count = -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = LoadConfig(bad)
	if !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("LoadConfig(bad) error = %v, want %s", err, errs.ErrCodeInvalidConfig)
	}
}

func TestAngles(t *testing.T) {
	cfg := DefaultConfig()
	if got, want := cfg.Step(), 360.0/27; math.Abs(got-want) > tol {
		t.Errorf("Step() = %v, want %v", got, want)
	}
	if got := cfg.Angle(26); math.Abs(got-26*360.0/27) > tol {
		t.Errorf("Angle(26) = %v", got)
	}

	cfg.Direction = -1
	if got := cfg.Angle(3); math.Abs(got+40) > tol {
		t.Errorf("Angle(3) = %v, want -40", got)
	}
}

func TestObsoleteEndsWithTemplate(t *testing.T) {
	cfg := Config{TemplateID: "tpl", DeleteIDs: []string{"a", "b"}}
	if diff := cmp.Diff([]string{"a", "b", "tpl"}, cfg.obsolete()); diff != "" {
		t.Errorf("obsolete() mismatch (-want +got):\n%s", diff)
	}
	if len(cfg.DeleteIDs) != 2 {
		t.Error("obsolete() modified DeleteIDs")
	}
}
