// Command replay runs the strategy over a recorded book-update stream
// using the in-memory exchange, then prints a session summary. Input is
// one JSON object per line:
//
//	{"instrument":0,"sequence":12,"bidPrices":[...],"bidVolumes":[...],"askPrices":[...],"askVolumes":[...]}
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"ready-trade-go/config"
	"ready-trade-go/engine"
	"ready-trade-go/infrastructure/logger"
	"ready-trade-go/inventory"
	"ready-trade-go/market"
	"ready-trade-go/sim"
	"ready-trade-go/strategy"
)

type record struct {
	Instrument int     `json:"instrument"`
	Sequence   uint64  `json:"sequence"`
	BidPrices  []int64 `json:"bidPrices"`
	BidVolumes []int64 `json:"bidVolumes"`
	AskPrices  []int64 `json:"askPrices"`
	AskVolumes []int64 `json:"askVolumes"`
}

func main() {
	input := flag.String("input", "", "JSONL book-update file, - for stdin")
	cfgPath := flag.String("config", "", "optional config file, defaults apply when empty")
	verbose := flag.Bool("verbose", false, "log every engine decision")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}

	zl := logger.NewNop()
	if *verbose {
		lc := cfg.Logger
		lc.Format = "console"
		lc.Level = "debug"
		var err error
		zl, err = logger.New(lc)
		if err != nil {
			log.Fatalf("init logger: %v", err)
		}
		defer zl.Close()
	}

	in := os.Stdin
	if *input != "" && *input != "-" {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatalf("open input: %v", err)
		}
		defer f.Close()
		in = f
	}

	x := sim.NewExchange(zl)
	inv := inventory.NewTracker(cfg.Strategy.PositionLimit)
	eng, err := engine.New(engine.DefaultConfig(), engine.Components{
		Venue:     x,
		Inventory: inv,
		Pricer:    strategy.NewPricer(cfg.Strategy.PricerConfig()),
		Arbitrage: strategy.NewArbitrage(cfg.Strategy.ArbConfig()),
		Logger:    zl,
	})
	if err != nil {
		log.Fatalf("build engine: %v", err)
	}

	lines := 0
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		lines++
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			zl.Warn("bad input line", zap.Int("line", lines), zap.Error(err))
			continue
		}
		inst := market.Tracked
		if rec.Instrument == 1 {
			inst = market.Hedge
		}
		x.Feed(inst, depthOf(rec))
		pump(eng, x)
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read input: %v", err)
	}

	st := eng.Stats()
	fmt.Printf("replayed %d updates\n", lines)
	fmt.Printf("  quotes:       %d\n", st.Quotes)
	fmt.Printf("  inserts:      %d\n", st.Inserts)
	fmt.Printf("  cancels:      %d\n", st.Cancels)
	fmt.Printf("  fills:        %d\n", st.Fills)
	fmt.Printf("  hedge orders: %d\n", st.HedgeOrders)
	fmt.Printf("  arb orders:   %d\n", st.ArbOrders)
	fmt.Printf("  data faults:  %d\n", st.DataFaults)
	fmt.Printf("  position:     %d\n", inv.Position())
}

// pump feeds exchange responses back through the engine until no more
// events are produced.
func pump(eng *engine.Engine, x *sim.Exchange) {
	for {
		evs := x.Drain()
		if len(evs) == 0 {
			return
		}
		for _, ev := range evs {
			eng.Handle(ev)
		}
	}
}

func depthOf(rec record) market.Depth {
	d := market.Depth{Sequence: rec.Sequence}
	copyLevels(d.BidPrices[:], rec.BidPrices)
	copyLevels(d.BidVolumes[:], rec.BidVolumes)
	copyLevels(d.AskPrices[:], rec.AskPrices)
	copyLevels(d.AskVolumes[:], rec.AskVolumes)
	return d
}

func copyLevels(dst, src []int64) {
	for i := 0; i < len(dst) && i < len(src); i++ {
		dst[i] = src[i]
	}
}
