// Package session implements the façade (§4.6): it owns the scene geometry,
// transmitter, receivers, and parameters, and orchestrates preprocess ->
// simulate -> read-out. It follows the teacher's scene.Scene shape (a
// struct owning a geometry collection behind Add*/Get* accessors) and
// core.Window's Config + New(config) (*T, error) constructor idiom.
package session

import (
	"errors"
	"fmt"

	"github.com/mrigankad/raysim/accel"
	"github.com/mrigankad/raysim/field"
	"github.com/mrigankad/raysim/geom"
	"github.com/mrigankad/raysim/launch"
	"github.com/mrigankad/raysim/stlio"
	"github.com/mrigankad/raysim/vecmath"
)

// AcceleratorVariant selects the spatial acceleration structure Simulate
// builds over the scene. Only the SAH k-d tree is implemented in this
// core; brute-force and uniform-grid variants are out-of-scope external
// collaborators (§1).
type AcceleratorVariant string

// AcceleratorKDTree is the only accelerator variant this core implements.
const AcceleratorKDTree AcceleratorVariant = "kdtree"

var (
	// ErrUnknownAccelerator is returned when SetPreprocessMethod is given a
	// variant this core doesn't implement.
	ErrUnknownAccelerator = errors.New("session: unknown accelerator variant")
	// ErrInvalidParameter is returned by SetParameters when a field fails
	// its §6/§7 validity check.
	ErrInvalidParameter = errors.New("session: invalid parameter")
	// ErrSceneFrozen is returned by every geometry/parameter mutator once
	// Simulate has run (§4.6: "after simulate starts, geometry is frozen").
	ErrSceneFrozen = errors.New("session: scene frozen after simulate")
)

// Session is the core's single stateful object: scene geometry, the
// transmitter and receivers, parameters, and (after Simulate) the
// per-receiver field buckets.
type Session struct {
	variant AcceleratorVariant
	params  Parameters

	triangles []*geom.Triangle
	txPoint   vecmath.Point
	txSet     bool
	rxPoints  []vecmath.Point

	buckets []*launch.RxFields
	started bool
}

// New creates a session with the given accelerator variant and default
// parameters (§A3), mirroring core.NewWindow(config) (*Window, error): it
// fails immediately rather than deferring a bad variant to first use.
func New(variant AcceleratorVariant) (*Session, error) {
	if variant != AcceleratorKDTree {
		return nil, fmt.Errorf("session: %s: %w", variant, ErrUnknownAccelerator)
	}
	return &Session{variant: variant, params: DefaultParameters()}, nil
}

// SetPreprocessMethod changes the accelerator variant used by a subsequent
// Simulate call (§4.6's "choose-accelerator-variant").
func (s *Session) SetPreprocessMethod(variant AcceleratorVariant) error {
	if s.started {
		return fmt.Errorf("session: preprocess method: %w", ErrSceneFrozen)
	}
	if variant != AcceleratorKDTree {
		return fmt.Errorf("session: %s: %w", variant, ErrUnknownAccelerator)
	}
	s.variant = variant
	return nil
}

// AddTriangle registers one occluder triangle (§4.6's "add-triangle").
func (s *Session) AddTriangle(a, b, c vecmath.Point, normal vecmath.Vector) error {
	if s.started {
		return fmt.Errorf("session: add triangle: %w", ErrSceneFrozen)
	}
	idx := len(s.triangles)
	s.triangles = append(s.triangles, geom.NewTriangle(a, b, c, normal, idx))
	return nil
}

// AddTriangles registers every facet of tris in order (§4.6's
// "add-triangle(s)").
func (s *Session) AddTriangles(tris []stlio.Triangle) error {
	if s.started {
		return fmt.Errorf("session: add triangles: %w", ErrSceneFrozen)
	}
	for _, t := range tris {
		idx := len(s.triangles)
		s.triangles = append(s.triangles, geom.NewTriangle(t.A, t.B, t.C, t.Normal, idx))
	}
	return nil
}

// LoadFromBinarySTL loads a binary STL file and registers every facet as a
// triangle (§4.6, §6). On any I/O failure the scene is left untouched.
func (s *Session) LoadFromBinarySTL(path string) error {
	if s.started {
		return fmt.Errorf("session: load stl: %w", ErrSceneFrozen)
	}
	tris, err := stlio.Load(path)
	if err != nil {
		return fmt.Errorf("session: load stl: %w", err)
	}
	return s.AddTriangles(tris)
}

// SetTx sets the transmitter position.
func (s *Session) SetTx(point vecmath.Point) error {
	if s.started {
		return fmt.Errorf("session: set tx: %w", ErrSceneFrozen)
	}
	s.txPoint = point
	s.txSet = true
	return nil
}

// SetRx appends receiver positions; the sphere radius is shared and comes
// from Parameters.RxRadius at Simulate time. Receivers keep the order they
// are registered in (§6: "GetRxPowers returns one dBm value per receiver in
// the order receivers were registered").
func (s *Session) SetRx(points ...vecmath.Point) error {
	if s.started {
		return fmt.Errorf("session: set rx: %w", ErrSceneFrozen)
	}
	s.rxPoints = append(s.rxPoints, points...)
	return nil
}

// SetParameters validates and installs p, rejecting the invalid
// combinations named in §6/§7: non-positive frequency/spacing/radius,
// negative maxReflections, or an unknown accelerator variant is never
// checked here (that lives in SetPreprocessMethod).
func (s *Session) SetParameters(p Parameters) error {
	if s.started {
		return fmt.Errorf("session: set parameters: %w", ErrSceneFrozen)
	}
	if err := p.validate(); err != nil {
		return err
	}
	s.params = p
	return nil
}

// Simulate builds the accelerator over the frozen scene and launches rays
// per §4.5, populating one RxFields bucket per registered receiver. It may
// be called only once; geometry and parameters are frozen immediately,
// even if Simulate itself fails.
func (s *Session) Simulate() error {
	if s.started {
		return fmt.Errorf("session: simulate: %w", ErrSceneFrozen)
	}
	s.started = true
	if !s.txSet {
		return fmt.Errorf("session: simulate: transmitter not set: %w", ErrInvalidParameter)
	}

	geoms := make([]geom.Geometry, 0, len(s.triangles)+len(s.rxPoints))
	for _, t := range s.triangles {
		geoms = append(geoms, t)
	}
	for i, p := range s.rxPoints {
		geoms = append(geoms, geom.NewRxSphere(p, s.params.RxRadius, i))
	}
	tree := accel.Build(geoms)

	wavelength := field.Wavelength(s.params.FrequencyMHz * 1e6)
	launchParams := launch.Params{
		Permittivity:   s.params.Permittivity,
		Conductivity:   s.params.Conductivity,
		Wavelength:     wavelength,
		WaveNumber:     field.WaveNumber(wavelength),
		TxPowerWatts:   field.TransmitPowerWatts(s.params.TxPowerDBm),
		MaxReflections: s.params.MaxReflections,
	}

	s.buckets = launch.Launch(tree, s.txPoint, s.params.RaySpacingDegrees, launchParams, len(s.rxPoints))
	return nil
}

// GetRxPowers returns one dBm value per receiver, in registration order
// (§6). It returns nil if Simulate has not yet run.
func (s *Session) GetRxPowers() []float64 {
	if !s.started {
		return nil
	}
	powers := make([]float64, len(s.buckets))
	for i, bucket := range s.buckets {
		powers[i] = field.PowerDBm(bucket.Sum(), field.Wavelength(s.params.FrequencyMHz*1e6), s.params.TxPowerDBm)
	}
	return powers
}
