package transform

import (
	"fmt"
	"strings"

	"github.com/matzehuels/svgring/pkg/affine"
	errs "github.com/matzehuels/svgring/pkg/errors"
)

// Kind identifies a transform command.
type Kind int

// Supported transform commands.
const (
	KindMatrix Kind = iota
	KindTranslate
	KindRotate
	KindScale
)

var kindNames = map[Kind]string{
	KindMatrix:    "matrix",
	KindTranslate: "translate",
	KindRotate:    "rotate",
	KindScale:     "scale",
}

// arity lists the accepted argument counts per command.
var arity = map[Kind][]int{
	KindMatrix:    {6},
	KindTranslate: {1, 2},
	KindRotate:    {1, 3},
	KindScale:     {1, 2},
}

// String returns the command name as written in SVG.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// lookupKind resolves a command name case-insensitively.
func lookupKind(name string) (Kind, bool) {
	switch strings.ToLower(name) {
	case "matrix":
		return KindMatrix, true
	case "translate":
		return KindTranslate, true
	case "rotate":
		return KindRotate, true
	case "scale":
		return KindScale, true
	}
	return 0, false
}

// Command is one parsed transform command with validated arguments.
type Command struct {
	Kind Kind
	Args []float64
}

// NewCommand builds a Command by name, validating its argument count.
// Unknown names, including skewX and skewY, fail with ErrCodeUnsupportedCommand.
func NewCommand(name string, args []float64) (Command, error) {
	kind, ok := lookupKind(name)
	if !ok {
		return Command{}, errs.New(errs.ErrCodeUnsupportedCommand, "unsupported transform command %q", name)
	}

	for _, n := range arity[kind] {
		if len(args) == n {
			return Command{Kind: kind, Args: args}, nil
		}
	}
	return Command{}, errs.New(errs.ErrCodeInvalidArguments,
		"%s expects %s values, got %d", kind, expected(kind), len(args))
}

func expected(k Kind) string {
	counts := arity[k]
	parts := make([]string, len(counts))
	for i, n := range counts {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, " or ")
}

// Matrix returns the affine matrix for c.
func (c Command) Matrix() affine.Matrix {
	a := c.Args
	switch c.Kind {
	case KindMatrix:
		return affine.Matrix{A: a[0], B: a[1], C: a[2], D: a[3], E: a[4], F: a[5]}
	case KindTranslate:
		if len(a) == 1 {
			return affine.Translate(a[0], 0)
		}
		return affine.Translate(a[0], a[1])
	case KindRotate:
		if len(a) == 1 {
			return affine.Rotate(a[0])
		}
		return affine.RotateAbout(a[0], a[1], a[2])
	case KindScale:
		if len(a) == 1 {
			return affine.Scale(a[0], a[0])
		}
		return affine.Scale(a[0], a[1])
	}
	panic(fmt.Sprintf("transform: unhandled command kind %d", int(c.Kind)))
}

// String renders c in SVG syntax, e.g. "rotate(30 650 415)".
func (c Command) String() string {
	parts := make([]string, len(c.Args))
	for i, v := range c.Args {
		parts[i] = affine.FormatNumber(v)
	}
	return c.Kind.String() + "(" + strings.Join(parts, " ") + ")"
}

// Format renders a command sequence as a transform attribute value.
func Format(cmds []Command) string {
	parts := make([]string, len(cmds))
	for i, c := range cmds {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Rotation returns the command for a rotation of deg degrees about (cx, cy).
func Rotation(deg float64, center affine.Point) Command {
	return Command{Kind: KindRotate, Args: []float64{deg, center.X, center.Y}}
}
