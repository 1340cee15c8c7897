package vecmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMatrixInverseOrthonormal checks the round-trip property from §8:
// Matrix * Matrix.Inverse ~= identity for every orthonormal basis the field
// kernels build.
func TestMatrixInverseOrthonormal(t *testing.T) {
	bases := []Matrix{
		MatrixFromColumns(AxisX, AxisY, AxisZ),
		MatrixFromColumns(AxisY, AxisZ, AxisX),
		MatrixFromColumns(
			NewVector(1, 1, 0).Normalize(),
			NewVector(-1, 1, 0).Normalize(),
			AxisZ,
		),
	}

	for _, h := range bases {
		inv := h.Inverse()
		prod := h.Mul(inv)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				want := 0.0
				if i == j {
					want = 1.0
				}
				require.InDelta(t, want, prod[i][j], 1e-9)
			}
		}
	}
}

func TestMatrixInversePanicsOnSingular(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on singular matrix")
		}
	}()
	singular := Matrix{{1, 2, 3}, {2, 4, 6}, {1, 1, 1}}
	singular.Inverse()
}

func TestEulerAndSqrt(t *testing.T) {
	z := Euler(2, math.Pi/2)
	require.InDelta(t, 0, real(z), 1e-9)
	require.InDelta(t, 2, imag(z), 1e-9)

	root := Sqrt(complex(-4, 0))
	require.InDelta(t, 0, real(root), 1e-9)
	require.InDelta(t, 2, imag(root), 1e-9)
}

func TestComplexVectorSumSqrMagnitude(t *testing.T) {
	v := ComplexVector{X: complex(3, 4), Y: 0, Z: 0}
	require.InDelta(t, 25, v.SumSqrMagnitude(), 1e-12)
	require.True(t, ComplexVector{}.IsZero())
	require.False(t, v.IsZero())
}
