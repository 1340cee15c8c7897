// Command raysim runs the ray-launching propagation simulator over a
// binary STL scene and prints received power per receiver, in the
// teacher's diagnostic style (fmt.Printf, no logging library).
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mrigankad/raysim/session"
	"github.com/mrigankad/raysim/vecmath"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "raysim: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	stlPath := flag.String("mesh", "", "path to a binary STL file (optional; empty scene if omitted)")
	txFlag := flag.String("tx", "0,0,0", "transmitter position as x,y,z in metres")
	rxFlag := flag.String("rx", "", "semicolon-separated receiver positions, e.g. \"10,0,0;20,0,0\"")
	frequency := flag.Float64("frequency", 900, "carrier frequency in MHz")
	txPower := flag.Float64("txpower", 0, "transmit power in dBm")
	permittivity := flag.Float64("permittivity", 5.0, "relative permittivity of reflecting surfaces")
	conductivity := flag.Float64("conductivity", 0.01, "conductivity of reflecting surfaces in S/m")
	maxReflections := flag.Int("reflections", 2, "maximum number of bounces")
	raySpacing := flag.Float64("rayspacing", 1.0, "angular ray spacing in degrees")
	rxRadius := flag.Float64("rxradius", 1.0, "receiver sphere radius in metres")
	flag.Parse()

	s, err := session.New(session.AcceleratorKDTree)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	params := session.DefaultParameters()
	params.FrequencyMHz = *frequency
	params.TxPowerDBm = *txPower
	params.Permittivity = *permittivity
	params.Conductivity = *conductivity
	params.MaxReflections = *maxReflections
	params.RaySpacingDegrees = *raySpacing
	params.RxRadius = *rxRadius
	if err := s.SetParameters(params); err != nil {
		return fmt.Errorf("set parameters: %w", err)
	}

	if *stlPath != "" {
		if err := s.LoadFromBinarySTL(*stlPath); err != nil {
			return fmt.Errorf("load mesh: %w", err)
		}
	}

	tx, err := parsePoint(*txFlag)
	if err != nil {
		return fmt.Errorf("parse tx: %w", err)
	}
	if err := s.SetTx(tx); err != nil {
		return fmt.Errorf("set tx: %w", err)
	}

	rxPoints, err := parsePoints(*rxFlag)
	if err != nil {
		return fmt.Errorf("parse rx: %w", err)
	}
	if err := s.SetRx(rxPoints...); err != nil {
		return fmt.Errorf("set rx: %w", err)
	}

	if err := s.Simulate(); err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	fmt.Printf("raysim: %d receiver(s)\n", len(rxPoints))
	for i, p := range s.GetRxPowers() {
		fmt.Printf("  rx[%d] at %v: %.2f dBm\n", i, rxPoints[i], p)
	}
	return nil
}

func parsePoint(s string) (vecmath.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return vecmath.Point{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return vecmath.Point{}, fmt.Errorf("invalid coordinate %q: %w", p, err)
		}
		v[i] = f
	}
	return vecmath.NewPoint(v[0], v[1], v[2]), nil
}

func parsePoints(s string) ([]vecmath.Point, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var points []vecmath.Point
	for _, chunk := range strings.Split(s, ";") {
		p, err := parsePoint(strings.TrimSpace(chunk))
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}
