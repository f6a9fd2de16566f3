package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkewTableLookup(t *testing.T) {
	tbl := DefaultSkewTable()
	cases := []struct {
		position int64
		want     int64
	}{
		{-100, 200},
		{-81, 200},
		{-80, 100},
		{-50, 100},
		{-49, 0},
		{0, 0},
		{49, 0},
		{50, -100},
		{80, -100},
		{81, -200},
		{100, -200},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, tbl.Lookup(c.position), "position %d", c.position)
	}
}

func TestSizeTableLookup(t *testing.T) {
	tbl := DefaultSizeTable()
	cases := []struct {
		position  int64
		buy, sell int64
	}{
		{95, 0, 50},
		{90, 0, 50},
		{85, 5, 45},
		{80, 5, 45},
		{40, 15, 35},
		{0, 20, 20},
		{-39, 20, 20},
		{-40, 35, 15},
		{-79, 35, 15},
		{-80, 45, 5},
		{-89, 45, 5},
		{-90, 50, 0},
		{-100, 50, 0},
	}
	for _, c := range cases {
		buy, sell := tbl.Lookup(c.position)
		assert.Equal(t, c.buy, buy, "buy at position %d", c.position)
		assert.Equal(t, c.sell, sell, "sell at position %d", c.position)
	}
}

func TestTierTableLookup(t *testing.T) {
	tiers := DefaultTiers()
	assert.Equal(t, int64(30), tiers.Lookup(400))
	assert.Equal(t, int64(30), tiers.Lookup(300))
	assert.Equal(t, int64(20), tiers.Lookup(250))
	assert.Equal(t, int64(10), tiers.Lookup(100))
	assert.Equal(t, int64(0), tiers.Lookup(99))
}
