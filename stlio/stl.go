// Package stlio loads binary STL meshes (§6), the simulator's one
// external-collaborator file format. It follows the teacher's loader shape
// (io/obj.go: open, validate, decode into a typed return) adapted from text
// scanning to encoding/binary little-endian record decoding, since the STL
// binary layout is a fixed-size struct rather than a line-oriented format.
package stlio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mrigankad/raysim/vecmath"
)

// headerSize is the ignored preamble before the triangle count (§6).
const headerSize = 80

// recordSize is one facet's on-disk size: 12 little-endian float32s (normal
// + three vertices, 48 bytes) plus a 2-byte attribute count, ignored.
const recordSize = 4*12 + 2

var (
	// ErrTruncated is returned when the file ends before a declared header,
	// count, or facet record is fully read.
	ErrTruncated = errors.New("stlio: truncated file")
	// ErrTriangleCount is returned when the declared triangle count would
	// require more bytes than remain in the file.
	ErrTriangleCount = errors.New("stlio: declared triangle count exceeds file size")
)

// Triangle is one decoded STL facet: the stored normal and its three
// vertices, promoted from float32 to float64 on load (§6).
type Triangle struct {
	Normal  vecmath.Vector
	A, B, C vecmath.Point
}

// rawVec3 matches one little-endian float32 triple as it appears on disk;
// binary.Read decodes directly into it via reflection.
type rawVec3 struct {
	X, Y, Z float32
}

// Load reads a binary STL file: an ignored 80-byte header, a little-endian
// uint32 triangle count, then that many 50-byte facet records. It fails
// without returning any partial result if the file cannot be opened, ends
// before a declared record is fully read, or declares a triangle count
// inconsistent with the remaining file size.
func Load(path string) ([]Triangle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stlio: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stlio: stat %s: %w", path, err)
	}

	header := make([]byte, headerSize)
	if _, err := io.ReadFull(f, header); err != nil {
		return nil, fmt.Errorf("stlio: %s: header: %w", path, ErrTruncated)
	}

	var count uint32
	if err := binary.Read(f, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("stlio: %s: triangle count: %w", path, ErrTruncated)
	}

	remaining := info.Size() - headerSize - 4
	if int64(count)*recordSize > remaining {
		return nil, fmt.Errorf("stlio: %s: declares %d triangles: %w", path, count, ErrTriangleCount)
	}

	triangles := make([]Triangle, 0, count)
	for i := uint32(0); i < count; i++ {
		tri, err := readFacet(f)
		if err != nil {
			return nil, fmt.Errorf("stlio: %s: facet %d: %w", path, i, err)
		}
		triangles = append(triangles, tri)
	}
	return triangles, nil
}

func readFacet(r io.Reader) (Triangle, error) {
	var normal, a, b, c rawVec3
	for _, dst := range []*rawVec3{&normal, &a, &b, &c} {
		if err := binary.Read(r, binary.LittleEndian, dst); err != nil {
			return Triangle{}, ErrTruncated
		}
	}
	var attribute uint16
	if err := binary.Read(r, binary.LittleEndian, &attribute); err != nil {
		return Triangle{}, ErrTruncated
	}

	return Triangle{
		Normal: vecmath.NewVector(float64(normal.X), float64(normal.Y), float64(normal.Z)),
		A:      vecmath.NewPoint(float64(a.X), float64(a.Y), float64(a.Z)),
		B:      vecmath.NewPoint(float64(b.X), float64(b.Y), float64(b.Z)),
		C:      vecmath.NewPoint(float64(c.X), float64(c.Y), float64(c.Z)),
	}, nil
}
