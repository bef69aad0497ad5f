package mesh

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexCount is returned when the index buffer is not a multiple of 3.
	ErrIndexCount = errors.New("mesh: index count is not a multiple of 3")
	// ErrInvalidIndex matches every *IndexError.
	ErrInvalidIndex = errors.New("mesh: index out of range")
	// ErrDegenerateGeometry matches every *DegenerateError.
	ErrDegenerateGeometry = errors.New("mesh: degenerate geometry")
	// ErrUVCount is returned when UVs are not index-aligned with positions.
	ErrUVCount = errors.New("mesh: uv count does not match vertex count")
	// ErrNormalCount is returned when normals are not index-aligned with positions.
	ErrNormalCount = errors.New("mesh: normal count does not match vertex count")
)

// IndexError reports an index buffer entry outside [0, VertexCount).
type IndexError struct {
	Position    int // offset in the index buffer
	Index       int
	VertexCount int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("mesh: index %d at position %d out of range [0, %d)", e.Index, e.Position, e.VertexCount)
}

func (e *IndexError) Is(target error) bool { return target == ErrInvalidIndex }

// DegenerateError reports a vertex whose accumulated normal or tangent has
// zero length.
type DegenerateError struct {
	Vertex int
	Kind   string // "normal" or "tangent"
}

func (e *DegenerateError) Error() string {
	return fmt.Sprintf("mesh: vertex %d has a zero-length %s", e.Vertex, e.Kind)
}

func (e *DegenerateError) Is(target error) bool { return target == ErrDegenerateGeometry }
