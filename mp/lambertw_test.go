package mp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireDefiningIdentity checks w*e^w = z to the context's tolerance.
func requireDefiningIdentity(t *testing.T, c *Context, w, z Number) {
	t.Helper()
	ew, err := c.Exp(w)
	require.NoError(t, err)
	back, err := c.Mul(w, ew)
	require.NoError(t, err)
	ok, err := c.AlmostEqual(back, z)
	require.NoError(t, err)
	assert.True(t, ok, "w*e^w = %s, want %s", c.Format(back), c.Format(z))
}

func TestLambertWZero(t *testing.T) {
	t.Parallel()
	c := NewContext()

	got := evalReal(t)(c.LambertW(Integer(0)))
	assert.True(t, got.IsZero())
}

func TestLambertWZeroNonPrincipalBranch(t *testing.T) {
	t.Parallel()
	c := NewContext()

	_, err := c.LambertWBranch(Integer(0), -1)
	var de DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "lambertw", de.Op)

	_, err = c.LambertWBranch(Integer(0), 2)
	require.ErrorAs(t, err, &de)
}

func TestLambertWOmega(t *testing.T) {
	t.Parallel()
	c := NewContext()

	got := evalReal(t)(c.LambertW(Integer(1)))
	assert.InDelta(t, 0.5671432904097838, got.Float64(), 1e-15)
}

func TestLambertWAtE(t *testing.T) {
	t.Parallel()
	c := NewContext()

	// W(e) = 1.
	got := evalReal(t)(c.LambertW(c.E()))
	assert.InDelta(t, 1, got.Float64(), 1e-15)
}

func TestLambertWIdentityReal(t *testing.T) {
	t.Parallel()
	c := NewContext()

	for _, z := range []Number{Decimal("0.25"), Integer(2), Integer(5), Integer(100)} {
		w, err := c.LambertW(z)
		require.NoError(t, err, "z = %v", z)
		requireDefiningIdentity(t, c, w, z)
	}
}

func TestLambertWNegativeRealBranches(t *testing.T) {
	t.Parallel()
	c := NewContext()
	z := Decimal("-0.2")

	// Both real branches exist on (-1/e, 0); the principal branch sits
	// above -1, the k = -1 branch below.
	w0 := evalReal(t)(c.LambertW(z))
	assert.InDelta(t, -0.2591711018190738, w0.Float64(), 1e-14)
	requireDefiningIdentity(t, c, w0, z)

	wm1 := evalReal(t)(c.LambertWBranch(z, -1))
	assert.InDelta(t, -2.542641357773526, wm1.Float64(), 1e-14)
	requireDefiningIdentity(t, c, wm1, z)
}

func TestLambertWComplexArgument(t *testing.T) {
	t.Parallel()
	c := NewContext()
	z, err := c.NewComplex(1, 1)
	require.NoError(t, err)

	w, err := c.LambertW(z)
	require.NoError(t, err)
	wc, ok := w.(Complex)
	require.True(t, ok, "W(1+i) should be complex, got %T", w)
	assert.InDelta(t, 0.6569660692304127, wc.Re().Float64(), 1e-13)
	assert.InDelta(t, 0.3254503394134150, wc.Im().Float64(), 1e-13)
	requireDefiningIdentity(t, c, w, z)
}

func TestLambertWNonPrincipalComplexBranch(t *testing.T) {
	t.Parallel()
	c := NewContext()

	// W_1(1) lies off the real line; the identity still holds.
	w, err := c.LambertWBranch(Integer(1), 1)
	require.NoError(t, err)
	_, ok := w.(Complex)
	require.True(t, ok, "branch 1 should leave the real line, got %T", w)
	requireDefiningIdentity(t, c, w, Integer(1))
}

func TestLambertWHighPrecision(t *testing.T) {
	t.Parallel()
	c := NewContext().SetDps(40)

	w, err := c.LambertW(Integer(1))
	require.NoError(t, err)
	requireDefiningIdentity(t, c, w, Integer(1))
}
