package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ready-trade-go/order"
)

func testArb() *Arbitrage {
	return NewArbitrage(ArbConfig{Enabled: true, Cap: 50, Tiers: DefaultTiers()})
}

func TestSignalsBuyDirection(t *testing.T) {
	a := testArb()
	// tracked ask 9900 vs hedge bid 10300: edge 400, top tier
	tracked := depth(9800, 40, 9900, 40)
	hedge := depth(10300, 40, 10500, 40)

	sigs := a.Signals(tracked, hedge)
	require.Len(t, sigs, 1)
	assert.Equal(t, order.Buy, sigs[0].Side)
	assert.Equal(t, int64(9900), sigs[0].Price)
	assert.Equal(t, int64(30), sigs[0].Size)
	assert.Equal(t, int64(400), sigs[0].Edge)
}

func TestSignalsSellDirection(t *testing.T) {
	a := testArb()
	tracked := depth(10500, 15, 10600, 15)
	hedge := depth(10100, 15, 10250, 15)

	sigs := a.Signals(tracked, hedge)
	require.Len(t, sigs, 1)
	assert.Equal(t, order.Sell, sigs[0].Side)
	assert.Equal(t, int64(10500), sigs[0].Price)
	// edge 250 -> tier size 20, capped by touch volume 15
	assert.Equal(t, int64(15), sigs[0].Size)
}

func TestSignalsCappedByTouchVolume(t *testing.T) {
	a := testArb()
	tracked := depth(9800, 40, 9900, 7)
	hedge := depth(10300, 40, 10500, 40)

	sigs := a.Signals(tracked, hedge)
	require.Len(t, sigs, 1)
	assert.Equal(t, int64(7), sigs[0].Size)
}

func TestSignalsBelowThreshold(t *testing.T) {
	a := testArb()
	tracked := depth(10100, 10, 10300, 10)
	hedge := depth(10000, 10, 10200, 10)
	assert.Empty(t, a.Signals(tracked, hedge))
}

func TestSignalsIgnoreEmptySides(t *testing.T) {
	a := testArb()
	tracked := depth(0, 0, 9900, 40)
	hedge := depth(0, 0, 10500, 40)
	// hedge bid missing: no buy signal even though tracked ask quotes
	assert.Empty(t, a.Signals(tracked, hedge))
}

func TestSignalsDisabled(t *testing.T) {
	a := NewArbitrage(ArbConfig{Enabled: false, Cap: 50, Tiers: DefaultTiers()})
	tracked := depth(9800, 40, 9900, 40)
	hedge := depth(10300, 40, 10500, 40)
	assert.Empty(t, a.Signals(tracked, hedge))
}
