package mp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/mpcalc/fp"
)

func TestNewContextDefaults(t *testing.T) {
	t.Parallel()
	c := NewContext()
	assert.Equal(t, uint(DefaultPrec), c.Prec())
	assert.Equal(t, uint(DefaultDps), c.Dps())
	assert.Equal(t, fp.DefaultRoundingMode, c.Mode())
	assert.False(t, c.TrapComplex())
}

func TestPrecDpsCoupling(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		setPrec uint
		setDps  uint
		wantP   uint
		wantD   uint
	}{
		{"53 bits is 15 digits", 53, 0, 53, 15},
		{"15 digits is 53 bits", 0, 15, 53, 15},
		{"100 bits", 100, 0, 100, 29},
		{"30 digits", 0, 30, 103, 30},
		{"1000 digits", 0, 1000, 3325, 1000},
		{"clamp zero bits", 1, 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := NewContext()
			if tt.setPrec > 0 {
				c.SetPrec(tt.setPrec)
			} else {
				c.SetDps(tt.setDps)
			}
			assert.Equal(t, tt.wantP, c.Prec())
			assert.Equal(t, tt.wantD, c.Dps())
		})
	}
}

func TestExtraPrecRestoresExactPair(t *testing.T) {
	t.Parallel()
	c := NewContext().SetDps(40)
	prec, dps := c.Prec(), c.Dps()

	restore := c.ExtraPrec(20)
	assert.Equal(t, prec+20, c.Prec())
	restore()
	assert.Equal(t, prec, c.Prec())
	assert.Equal(t, dps, c.Dps())

	// Repeated elevation round trips must not drift.
	for i := 0; i < 50; i++ {
		c.ExtraPrec(7)()
	}
	assert.Equal(t, prec, c.Prec())
	assert.Equal(t, dps, c.Dps())
}

func TestExtraPrecNestedScopes(t *testing.T) {
	t.Parallel()
	c := NewContext()
	outer := c.ExtraPrec(10)
	inner := c.ExtraPrec(5)
	assert.Equal(t, uint(DefaultPrec+15), c.Prec())
	inner()
	assert.Equal(t, uint(DefaultPrec+10), c.Prec())
	outer()
	assert.Equal(t, uint(DefaultPrec), c.Prec())
}

func TestSettersChain(t *testing.T) {
	t.Parallel()
	c := NewContext().SetMode(fp.RoundFloor).SetTrapComplex(true).SetParallelThreshold(128)
	assert.Equal(t, fp.RoundFloor, c.Mode())
	assert.True(t, c.TrapComplex())
	assert.Equal(t, uint(128), c.parallelThreshold())

	c.SetParallelThreshold(0)
	assert.Equal(t, uint(DefaultParallelMulThreshold), c.parallelThreshold())
}

func TestEps(t *testing.T) {
	t.Parallel()
	c := NewContext().SetPrec(50)
	e := c.eps(4)
	// 2^(-50+4)
	require.Equal(t, 1, e.Sign())
	assert.Equal(t, -46, int(e.BitCount())+e.Exp()-1)
}
