package progrock

import (
	"io"
	"sync"

	"github.com/vito/progrock"
)

// Vertex is the progress record of one compilation group.
// Completion is recorded once; later calls are ignored.
type Vertex struct {
	rec  *progrock.VertexRecorder
	once sync.Once
}

func newVertex(rec *progrock.VertexRecorder) *Vertex {
	return &Vertex{rec: rec}
}

// Stdout receives compiler output for the group.
func (v *Vertex) Stdout() io.Writer { return v.rec.Stdout() }

// Stderr receives compiler warnings and errors for the group.
func (v *Vertex) Stderr() io.Writer { return v.rec.Stderr() }

// Complete finishes the vertex, failed when err is non-nil.
func (v *Vertex) Complete(err error) {
	v.once.Do(func() { v.rec.Done(err) })
}

// Cached marks the group as reused from an earlier run.
func (v *Vertex) Cached() { v.rec.Cached() }
