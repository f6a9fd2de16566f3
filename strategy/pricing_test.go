package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ready-trade-go/market"
)

func testPricer() *Pricer {
	return NewPricer(PricerConfig{
		LotSize:       20,
		PositionLimit: 100,
		TickSize:      100,
		HalfSpread:    200,
		SpreadFloor:   200,
		Sizing:        ModeBanded,
		PriceSkew:     ModeBanded,
		SkewTable:     DefaultSkewTable(),
		SizeTable:     DefaultSizeTable(),
	})
}

func depth(bid, bidVol, ask, askVol int64) market.Depth {
	var d market.Depth
	d.BidPrices[0] = bid
	d.BidVolumes[0] = bidVol
	d.AskPrices[0] = ask
	d.AskVolumes[0] = askVol
	return d
}

func TestQuotesFlatPosition(t *testing.T) {
	p := testPricer()
	tracked := depth(10100, 10, 10300, 10)
	hedge := depth(10000, 10, 10200, 10)

	q, err := p.Quotes(tracked, hedge, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(9800), q.BidPrice)
	assert.Equal(t, int64(10400), q.AskPrice)
	assert.Equal(t, int64(20), q.BuySize)
	assert.Equal(t, int64(20), q.SellSize)
}

func TestQuotesTightenInsideWideTrackedTouch(t *testing.T) {
	p := testPricer()
	// tracked is 500 wide; the base ask would sit deep inside it
	tracked := depth(10000, 10, 10500, 10)
	hedge := depth(9900, 10, 10000, 10)

	q, err := p.Quotes(tracked, hedge, 0)
	require.NoError(t, err)
	// base ask 10200 < tracked ask-200 = 10300, so lifted to 10300
	assert.Equal(t, int64(10300), q.AskPrice)
	// base bid 9700 is not above tracked bid+200, left alone
	assert.Equal(t, int64(9700), q.BidPrice)
}

func TestQuotesLongPositionSkew(t *testing.T) {
	p := testPricer()
	tracked := depth(10100, 10, 10300, 10)
	hedge := depth(10000, 10, 10200, 10)

	q, err := p.Quotes(tracked, hedge, 90)
	require.NoError(t, err)
	// long 90: both prices shifted down 200, buy side shut off
	assert.Equal(t, int64(9600), q.BidPrice)
	assert.Equal(t, int64(10200), q.AskPrice)
	assert.Equal(t, int64(0), q.BuySize)
	assert.Equal(t, int64(50), q.SellSize)
}

func TestQuotesSizeClampedAtLimit(t *testing.T) {
	p := testPricer()
	p.Reconfigure(PricerConfig{
		LotSize: 20, PositionLimit: 100, TickSize: 100,
		HalfSpread: 200, SpreadFloor: 200,
		Sizing: ModeBanded, PriceSkew: ModeBanded,
		SkewTable: DefaultSkewTable(),
		// a table that would request more than the remaining headroom
		SizeTable: SizeTable{FallbackBuy: 50, FallbackSell: 50},
	})
	q, err := p.Quotes(depth(10100, 10, 10300, 10), depth(10000, 10, 10200, 10), 95)
	require.NoError(t, err)
	assert.Equal(t, int64(5), q.BuySize, "buy size must not alone breach the limit")
	assert.Equal(t, int64(50), q.SellSize)
}

func TestQuotesEmptyHedgeSide(t *testing.T) {
	p := testPricer()
	tracked := depth(10100, 10, 10300, 10)

	q, err := p.Quotes(tracked, depth(0, 0, 10200, 10), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), q.BidPrice)
	assert.Equal(t, int64(0), q.BuySize)
	assert.NotEqual(t, int64(0), q.AskPrice)

	q, err = p.Quotes(tracked, depth(10000, 10, 0, 0), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), q.AskPrice)
	assert.Equal(t, int64(0), q.SellSize)
}

func TestQuotesCrossedIsFault(t *testing.T) {
	p := testPricer()
	// hedge bid far above hedge ask after tightening produces a crossed pair
	tracked := depth(10100, 10, 10300, 10)
	hedge := depth(11000, 10, 10000, 10)

	_, err := p.Quotes(tracked, hedge, 0)
	assert.ErrorIs(t, err, ErrCrossedQuote)
}

func TestContinuousSizing(t *testing.T) {
	p := testPricer()
	cfg := p.cfg
	cfg.Sizing = ModeContinuous
	p.Reconfigure(cfg)

	q, err := p.Quotes(depth(10100, 10, 10300, 10), depth(10000, 10, 10200, 10), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(20), q.BuySize)
	assert.Equal(t, int64(20), q.SellSize)

	q, err = p.Quotes(depth(10100, 10, 10300, 10), depth(10000, 10, 10200, 10), 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), q.BuySize, "at the limit the widening side is shut")
	assert.Equal(t, int64(50), q.SellSize)
}

func TestContinuousPriceSkew(t *testing.T) {
	p := testPricer()
	cfg := p.cfg
	cfg.PriceSkew = ModeContinuous
	p.Reconfigure(cfg)

	q, err := p.Quotes(depth(10100, 10, 10300, 10), depth(10000, 10, 10200, 10), 60)
	require.NoError(t, err)
	// -(60/50 floored)*100 = -100
	assert.Equal(t, int64(9700), q.BidPrice)
	assert.Equal(t, int64(10300), q.AskPrice)

	q, err = p.Quotes(depth(10100, 10, 10300, 10), depth(10000, 10, 10200, 10), -60)
	require.NoError(t, err)
	// -(-60/50 floored)*100 = +200
	assert.Equal(t, int64(10000), q.BidPrice)
	assert.Equal(t, int64(10600), q.AskPrice)
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, int64(1), floorDiv(60, 50))
	assert.Equal(t, int64(-2), floorDiv(-60, 50))
	assert.Equal(t, int64(0), floorDiv(30, 50))
	assert.Equal(t, int64(-1), floorDiv(-30, 50))
}
