// Package xio: the X5-style interchange container.
//
// X5 is the module's own hierarchical container: a BSON document holding a
// "transform" dataset (one 4×4 matrix per series entry), the matching
// "inverse" dataset, an "affine" type tag, and optionally the reference
// grid serialized by the grid package itself. Unlike the text formats it
// stores the canonical RAS+ matrices directly, so no orientation
// conversion applies.

package xio

import (
	"fmt"
	"os"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/quantimage/voxform/affine"
	"github.com/quantimage/voxform/grid"
)

const x5TypeAffine = "affine"

// x5Doc is the on-disk layout of the container.
type x5Doc struct {
	Type      string       `bson:"type"`
	Transform [][]float64  `bson:"transform"` // 16 row-major values per entry
	Inverse   [][]float64  `bson:"inverse"`
	Reference *grid.RefDoc `bson:"reference,omitempty"`
}

type x5Format struct{}

func (x5Format) Name() string { return "x5" }

func (x5Format) FromCanonical(mats []affine.Mat4, ref, _ *grid.Grid) (Handle, error) {
	if len(mats) == 0 {
		return nil, ErrEmptyCanonical
	}

	h := &x5Handle{mats: mats, invs: make([]affine.Mat4, len(mats)), ref: ref}
	for i, m := range mats {
		x, err := affine.New(m)
		if err != nil {
			return nil, fmt.Errorf("x5: entry %d: %w", i, err)
		}
		h.invs[i] = x.Inverse()
	}

	return h, nil
}

func (x5Format) Read(path string) (Handle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc x5Doc
	if err = bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("x5: %v: %w", err, ErrMalformed)
	}
	if doc.Type != x5TypeAffine {
		return nil, fmt.Errorf("x5: type %q is not %q: %w", doc.Type, x5TypeAffine, ErrMalformed)
	}
	if len(doc.Transform) == 0 || len(doc.Inverse) != len(doc.Transform) {
		return nil, fmt.Errorf("x5: transform/inverse datasets disagree: %w", ErrMalformed)
	}

	h := &x5Handle{
		mats: make([]affine.Mat4, len(doc.Transform)),
		invs: make([]affine.Mat4, len(doc.Inverse)),
	}
	for i := range doc.Transform {
		if h.mats[i], err = grid.UnflattenMat(doc.Transform[i]); err != nil {
			return nil, fmt.Errorf("x5: entry %d: %w", i, ErrMalformed)
		}
		if h.invs[i], err = grid.UnflattenMat(doc.Inverse[i]); err != nil {
			return nil, fmt.Errorf("x5: entry %d: %w", i, ErrMalformed)
		}
	}
	if doc.Reference != nil {
		if h.ref, err = grid.FromDoc(*doc.Reference); err != nil {
			return nil, fmt.Errorf("x5: reference: %w", err)
		}
	}

	return h, nil
}

// x5Handle stages canonical matrices plus their inverses and an optional
// embedded reference grid.
type x5Handle struct {
	mats []affine.Mat4
	invs []affine.Mat4
	ref  *grid.Grid
}

func (h *x5Handle) ToCanonical(_, _ *grid.Grid) ([]affine.Mat4, error) {
	return h.mats, nil
}

// embeddedReference surfaces the container's nested reference grid, if any.
// Load consults it when the caller supplied no reference of their own.
func (h *x5Handle) embeddedReference() *grid.Grid { return h.ref }

func (h *x5Handle) Write(path string) error {
	doc := x5Doc{
		Type:      x5TypeAffine,
		Transform: make([][]float64, len(h.mats)),
		Inverse:   make([][]float64, len(h.invs)),
	}
	for i := range h.mats {
		doc.Transform[i] = grid.FlattenMat(h.mats[i])
		doc.Inverse[i] = grid.FlattenMat(h.invs[i])
	}
	if h.ref != nil {
		d := h.ref.Doc()
		doc.Reference = &d
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("x5: encode: %w", err)
	}

	return os.WriteFile(path, raw, 0o644)
}
