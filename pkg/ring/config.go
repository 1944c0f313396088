package ring

import (
	"math"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/svgring/pkg/affine"
	errs "github.com/matzehuels/svgring/pkg/errors"
)

// Defaults describe the 27-star ring this tool was first written for.
const (
	DefaultTemplateID = "g16532"
	DefaultCount      = 27
	DefaultDirection  = 1
)

// DefaultCenter is the ring center in document-root coordinates.
var DefaultCenter = affine.Point{X: 750, Y: 515}

// DefaultDeleteIDs are the ring elements left over from the previous layout.
var DefaultDeleteIDs = []string{
	"g16722", "g16712", "g16702", "g16692", "g16682", "g16672", "g16662",
	"g16652", "g16642", "g16632", "g16622", "g16612", "g16602", "g16592",
	"g16582", "g16572", "g16562", "g16552", "g16542",
}

// Config controls a regeneration run.
type Config struct {
	// TemplateID names the element copied around the ring.
	TemplateID string `toml:"template_id"`

	// DeleteIDs are removed before stamping. The template is always removed too.
	DeleteIDs []string `toml:"delete_ids"`

	// Center is the rotation center in document-root coordinates.
	Center affine.Point `toml:"center"`

	// Count is the number of copies to generate.
	Count int `toml:"count"`

	// Direction is +1 or -1 and flips the winding order of the ring.
	Direction int `toml:"direction"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		TemplateID: DefaultTemplateID,
		DeleteIDs:  append([]string(nil), DefaultDeleteIDs...),
		Center:     DefaultCenter,
		Count:      DefaultCount,
		Direction:  DefaultDirection,
	}
}

// LoadConfig reads a TOML file over the defaults. Keys the file omits keep
// their default values; unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errs.Wrap(errs.ErrCodeIO, err, "read config %s", path)
	}
	cfg, err := ParseConfig(string(data))
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// ParseConfig decodes TOML text over the defaults and validates the result.
func ParseConfig(data string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errs.New(errs.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration can drive a run.
func (c Config) Validate() error {
	if err := errs.ValidateIdentifier(c.TemplateID); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "template_id")
	}
	for i, id := range c.DeleteIDs {
		if err := errs.ValidateIdentifier(id); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "delete_ids[%d]", i)
		}
	}
	if c.Count < 1 {
		return errs.New(errs.ErrCodeInvalidConfig, "count must be at least 1, got %d", c.Count)
	}
	if c.Direction != 1 && c.Direction != -1 {
		return errs.New(errs.ErrCodeInvalidConfig, "direction must be 1 or -1, got %d", c.Direction)
	}
	for _, v := range []float64{c.Center.X, c.Center.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errs.New(errs.ErrCodeInvalidConfig, "center must be finite, got %s", c.Center)
		}
	}
	return nil
}

// Step returns the angular increment between neighbouring copies, in degrees.
func (c Config) Step() float64 {
	return 360 / float64(c.Count)
}

// Angle returns the rotation of copy i, in degrees.
func (c Config) Angle(i int) float64 {
	return float64(c.Direction) * c.Step() * float64(i)
}

// obsolete returns the ids removed before stamping: DeleteIDs followed by the template.
func (c Config) obsolete() []string {
	out := make([]string, 0, len(c.DeleteIDs)+1)
	out = append(out, c.DeleteIDs...)
	return append(out, c.TemplateID)
}
