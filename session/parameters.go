package session

import "fmt"

// Parameters are the scene-global simulation inputs (§6), validated as a
// whole by SetParameters.
type Parameters struct {
	// Permittivity is the relative permittivity of every reflecting
	// surface (e.g. 5.0 for concrete).
	Permittivity float64
	// Conductivity is in S/m.
	Conductivity float64
	// MaxReflections is the non-negative bounce limit; 0 means direct path
	// only.
	MaxReflections int
	// RaySpacingDegrees tiles the launch sphere; must be in (0, 180].
	RaySpacingDegrees float64
	// FrequencyMHz is the carrier frequency in MHz; must be > 0.
	FrequencyMHz float64
	// TxPowerDBm is the transmitter's output power.
	TxPowerDBm float64
	// RxRadius is the shared receiver-sphere radius in metres; must be > 0.
	RxRadius float64
}

// DefaultParameters mirrors core.DefaultWindowConfig(): a reasonable
// starting point a caller then customizes with SetParameters.
func DefaultParameters() Parameters {
	return Parameters{
		Permittivity:      5.0,
		Conductivity:      0.01,
		MaxReflections:    2,
		RaySpacingDegrees: 1.0,
		FrequencyMHz:      900,
		TxPowerDBm:        0,
		RxRadius:          1.0,
	}
}

// validate checks the field-level rules of §6/§7: non-positive
// frequency/spacing/radius or a negative bounce count are rejected.
func (p Parameters) validate() error {
	if p.FrequencyMHz <= 0 {
		return fmt.Errorf("session: frequency: %w", ErrInvalidParameter)
	}
	if p.RaySpacingDegrees <= 0 || p.RaySpacingDegrees > 180 {
		return fmt.Errorf("session: raySpacing: %w", ErrInvalidParameter)
	}
	if p.RxRadius <= 0 {
		return fmt.Errorf("session: rxRadius: %w", ErrInvalidParameter)
	}
	if p.MaxReflections < 0 {
		return fmt.Errorf("session: maxReflections: %w", ErrInvalidParameter)
	}
	return nil
}
