package transform

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/svgring/pkg/affine"
	errs "github.com/matzehuels/svgring/pkg/errors"
)

var (
	// commandRe matches one "name(args)" group.
	commandRe = regexp.MustCompile(`([A-Za-z]+)\s*\(([^()]*)\)`)

	// separatorRe splits argument lists on any mix of commas and whitespace.
	separatorRe = regexp.MustCompile(`[,\s]+`)
)

// Parse converts a transform attribute value into a single matrix equal to
// applying each command in textual order. Blank input yields the identity.
func Parse(s string) (affine.Matrix, error) {
	cmds, err := ParseCommands(s)
	if err != nil {
		return affine.Matrix{}, err
	}
	return Compose(cmds), nil
}

// ParseCommands splits a transform attribute value into validated commands.
// Anything between commands other than whitespace or commas is rejected.
func ParseCommands(s string) ([]Command, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var cmds []Command
	last := 0
	for _, loc := range commandRe.FindAllStringSubmatchIndex(s, -1) {
		if err := checkGap(s, last, loc[0]); err != nil {
			return nil, err
		}
		last = loc[1]

		name := s[loc[2]:loc[3]]
		args, err := parseNumbers(name, s[loc[4]:loc[5]])
		if err != nil {
			return nil, err
		}
		cmd, err := NewCommand(name, args)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	if err := checkGap(s, last, len(s)); err != nil {
		return nil, err
	}
	return cmds, nil
}

// Compose right-multiplies each command's matrix onto the identity in order,
// so the leftmost command is the outermost transform.
func Compose(cmds []Command) affine.Matrix {
	m := affine.Identity()
	for _, c := range cmds {
		m = m.Multiply(c.Matrix())
	}
	return m
}

func checkGap(s string, from, to int) error {
	if gap := strings.Trim(s[from:to], ", \t\r\n"); gap != "" {
		return errs.New(errs.ErrCodeInvalidTransform, "malformed transform %q near %q", s, gap)
	}
	return nil
}

func parseNumbers(name, list string) ([]float64, error) {
	fields := separatorRe.Split(strings.TrimSpace(list), -1)
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidArguments, err, "%s: invalid number %q", name, f)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errs.New(errs.ErrCodeInvalidArguments, "%s: non-finite number %q", name, f)
		}
		out = append(out, v)
	}
	return out, nil
}
