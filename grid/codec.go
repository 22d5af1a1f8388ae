// Package grid: on-disk containers.
//
// Image files and nested grid references are encoded as BSON documents. The
// image container is the default target of the path-based loading hooks in
// the resample package; richer medical formats plug in through the Loader
// type instead.

package grid

import (
	"fmt"
	"os"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/quantimage/voxform/affine"
)

// Loader resolves a file path into an in-memory image. The resample package
// consults a Loader whenever a source or reference is given as a path; the
// default is LoadImage.
type Loader func(path string) (*Image, error)

// RefDoc is the serialized form of a Grid, embedded by transform containers
// that persist their reference space.
type RefDoc struct {
	Shape  []int32   `bson:"shape"`
	Affine []float64 `bson:"affine"` // 16 values, row-major
}

// Doc serializes the grid for embedding in a transform container.
func (g *Grid) Doc() RefDoc {
	return RefDoc{
		Shape:  []int32{int32(g.shape[0]), int32(g.shape[1]), int32(g.shape[2])},
		Affine: FlattenMat(g.vox2ras.Matrix()),
	}
}

// FromDoc rebuilds a grid from its serialized form.
func FromDoc(d RefDoc) (*Grid, error) {
	if len(d.Shape) != 3 {
		return nil, fmt.Errorf("reference shape %v: %w", d.Shape, ErrBadContainer)
	}

	m, err := UnflattenMat(d.Affine)
	if err != nil {
		return nil, err
	}
	vox2ras, err := affine.New(m)
	if err != nil {
		return nil, fmt.Errorf("reference affine: %w", err)
	}

	return New([3]int{int(d.Shape[0]), int(d.Shape[1]), int(d.Shape[2])}, vox2ras)
}

// imageDoc is the on-disk layout of the image container.
type imageDoc struct {
	Shape    []int32   `bson:"shape"`
	Affine   []float64 `bson:"affine"`
	Channels int32     `bson:"channels"`
	DType    string    `bson:"dtype"`
	Data     []float64 `bson:"data"`
}

// SaveImage writes the image container to path.
func SaveImage(im *Image, path string) error {
	doc := imageDoc{
		Shape:    im.grid.Doc().Shape,
		Affine:   im.grid.Doc().Affine,
		Channels: int32(im.channels),
		DType:    im.dtype.String(),
		Data:     im.data,
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("grid: encode image container: %w", err)
	}

	return os.WriteFile(path, raw, 0o644)
}

// LoadImage reads an image container from path. It is the default Loader.
func LoadImage(path string) (*Image, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc imageDoc
	if err = bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrBadContainer)
	}

	g, err := FromDoc(RefDoc{Shape: doc.Shape, Affine: doc.Affine})
	if err != nil {
		return nil, err
	}
	dtype, err := ParseDType(doc.DType)
	if err != nil {
		return nil, err
	}

	return NewImage(g, doc.Data,
		WithChannels(int(doc.Channels)),
		WithDType(dtype),
	)
}

// FlattenMat lays a homogeneous matrix out row-major for serialization.
func FlattenMat(m affine.Mat4) []float64 {
	flat := make([]float64, 0, affine.HDim*affine.HDim)
	for i := 0; i < affine.HDim; i++ {
		flat = append(flat, m[i][:]...)
	}

	return flat
}

// UnflattenMat rebuilds a homogeneous matrix from its row-major layout.
func UnflattenMat(flat []float64) (affine.Mat4, error) {
	var m affine.Mat4
	if len(flat) != affine.HDim*affine.HDim {
		return m, fmt.Errorf("affine with %d values: %w", len(flat), ErrBadContainer)
	}
	for i := 0; i < affine.HDim; i++ {
		copy(m[i][:], flat[i*affine.HDim:(i+1)*affine.HDim])
	}

	return m, nil
}
