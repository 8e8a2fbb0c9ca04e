package fs

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/soldeps/internal/core/ports"
)

var _ ports.ContentHasher = (*Hasher)(nil)

// scanSchema changes whenever the scanner output format changes, invalidating cached scans.
const scanSchema = "scan-v1"

// Hasher computes XXHash content keys.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashContent returns the hex xxhash of the scanner schema and data.
func (h *Hasher) HashContent(data []byte) string {
	d := xxhash.New()
	_, _ = d.WriteString(scanSchema)
	_, _ = d.Write([]byte{0})
	_, _ = d.Write(data)
	return fmt.Sprintf("%016x", d.Sum64())
}
