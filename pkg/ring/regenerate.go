package ring

import (
	"context"
	"io"
	"time"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgring/pkg/affine"
	errs "github.com/matzehuels/svgring/pkg/errors"
	"github.com/matzehuels/svgring/pkg/observability"
	"github.com/matzehuels/svgring/pkg/svgdoc"
	"github.com/matzehuels/svgring/pkg/transform"
)

// Phase names reported to observability hooks.
const (
	PhaseLocate = "locate"
	PhaseCenter = "center"
	PhaseDelete = "delete"
	PhaseStamp  = "stamp"
)

// Stamp describes one generated copy.
type Stamp struct {
	Index     int
	Angle     float64 // degrees, about Result.LocalCenter
	CopyID    string
	WrapperID string
}

// Result summarizes a regeneration run.
type Result struct {
	// Parent describes the element the wrappers were appended to.
	Parent string

	// LocalCenter is the rotation center in Parent's coordinate space.
	LocalCenter affine.Point

	// Deleted lists removed ids in removal order; Skipped lists ids that were already absent.
	Deleted []string
	Skipped []string

	// Stamps lists the generated copies in insertion order.
	Stamps []Stamp
}

// Created returns the number of generated copies.
func (r *Result) Created() int {
	return len(r.Stamps)
}

// Regenerator rebuilds a ring of rotated copies around a template element.
// It mutates the document in place and performs no I/O.
type Regenerator struct {
	cfg    Config
	logger *log.Logger
}

// New returns a Regenerator for cfg. A nil logger discards output.
func New(cfg Config, logger *log.Logger) *Regenerator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Regenerator{cfg: cfg, logger: logger}
}

// run holds the state carried between phases.
type run struct {
	root     *etree.Element
	parent   *etree.Element
	snapshot *etree.Element
	result   *Result
}

// Run executes the locate, center, delete and stamp phases against doc.
// On error the document may be partially mutated and must not be saved;
// every error that can be detected before mutation is raised before it.
func (g *Regenerator) Run(ctx context.Context, doc *svgdoc.Document) (*Result, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}

	st := &run{root: doc.Root(), result: &Result{}}
	phases := []struct {
		name string
		fn   func(context.Context, *run) error
	}{
		{PhaseLocate, g.locate},
		{PhaseCenter, g.center},
		{PhaseDelete, g.delete},
		{PhaseStamp, g.stamp},
	}
	for _, p := range phases {
		if err := g.phase(ctx, p.name, func() error { return p.fn(ctx, st) }); err != nil {
			return nil, err
		}
	}
	return st.result, nil
}

func (g *Regenerator) phase(ctx context.Context, name string, fn func() error) error {
	hooks := observability.Ring()
	start := time.Now()
	hooks.OnPhaseStart(ctx, name)
	err := fn()
	hooks.OnPhaseComplete(ctx, name, time.Since(start), err)
	if err == nil {
		g.logger.Debug("phase complete", "phase", name, "elapsed", time.Since(start).Round(time.Microsecond))
	}
	return err
}

// locate finds the template and its parent and snapshots the template.
func (g *Regenerator) locate(_ context.Context, st *run) error {
	template := svgdoc.FindByID(st.root, g.cfg.TemplateID)
	if template == nil {
		return errs.New(errs.ErrCodeTemplateNotFound, "template %s not found", g.cfg.TemplateID)
	}

	idx := svgdoc.BuildParentIndex(st.root)
	parent := idx.Parent(template)
	if parent == nil {
		return errs.New(errs.ErrCodeInvalidDocument, "template %s is the document root and has no parent", g.cfg.TemplateID)
	}

	// Deleting the parent or one of its ancestors would orphan every new copy.
	doomed := make(map[string]bool, len(g.cfg.DeleteIDs))
	for _, id := range g.cfg.DeleteIDs {
		doomed[id] = true
	}
	for _, el := range svgdoc.Chain(parent, idx) {
		if id := svgdoc.ID(el); doomed[id] {
			return errs.New(errs.ErrCodeInvalidConfig, "delete_ids contains %s, which encloses the template", id)
		}
	}

	st.parent = parent
	st.snapshot = svgdoc.Clone(template)
	st.result.Parent = svgdoc.Describe(parent)
	g.logger.Debug("located template", "template", svgdoc.Describe(template), "parent", st.result.Parent)
	return nil
}

// center maps the global ring center into the parent's local coordinates.
func (g *Regenerator) center(_ context.Context, st *run) error {
	idx := svgdoc.BuildParentIndex(st.root)
	toRoot, err := svgdoc.CumulativeTransform(st.parent, idx)
	if err != nil {
		return err
	}
	fromRoot, err := affine.Invert(toRoot)
	if err != nil {
		return errs.Wrap(errs.ErrCodeNonInvertible, err, "coordinate system of %s", st.result.Parent)
	}
	st.result.LocalCenter = fromRoot.Apply(g.cfg.Center)
	g.logger.Debug("computed local center", "global", g.cfg.Center, "local", st.result.LocalCenter, "toRoot", toRoot)
	return nil
}

// delete removes the obsolete elements and the template. Missing ids are skipped.
func (g *Regenerator) delete(ctx context.Context, st *run) error {
	hooks := observability.Ring()
	for _, id := range g.cfg.obsolete() {
		if svgdoc.Remove(st.root, id) {
			st.result.Deleted = append(st.result.Deleted, id)
			hooks.OnElementDeleted(ctx, id)
			continue
		}
		st.result.Skipped = append(st.result.Skipped, id)
		hooks.OnElementSkipped(ctx, id)
	}
	g.logger.Debug("deleted obsolete elements", "deleted", len(st.result.Deleted), "skipped", len(st.result.Skipped))
	return nil
}

// stamp appends Count rotated wrapper+copy pairs to the parent.
func (g *Regenerator) stamp(ctx context.Context, st *run) error {
	hooks := observability.Ring()
	ids := svgdoc.CollectIDs(st.root)

	for i := 0; i < g.cfg.Count; i++ {
		angle := g.cfg.Angle(i)

		cp := svgdoc.Clone(st.snapshot)
		copyID := Mint(ids, CopyID(g.cfg.TemplateID, i))
		reidentify(cp, copyID, i, ids)

		wrapper := etree.NewElement("g")
		wrapper.Space = st.snapshot.Space
		wrapperID := Mint(ids, WrapperID(copyID))
		svgdoc.SetID(wrapper, wrapperID)
		svgdoc.SetTransform(wrapper, transform.Rotation(angle, st.result.LocalCenter).String())
		wrapper.AddChild(cp)
		st.parent.AddChild(wrapper)

		st.result.Stamps = append(st.result.Stamps, Stamp{
			Index:     i,
			Angle:     angle,
			CopyID:    copyID,
			WrapperID: wrapperID,
		})
		hooks.OnCopyStamped(ctx, copyID, wrapperID, angle)
	}
	g.logger.Debug("stamped copies", "count", g.cfg.Count, "step", g.cfg.Step(), "direction", g.cfg.Direction)
	return nil
}
