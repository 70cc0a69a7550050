package folio

import (
	"fmt"
	"sort"
)

// TradeAction is the direction of a trade instruction.
type TradeAction string

const (
	Buy  TradeAction = "BUY"
	Sell TradeAction = "SELL"
)

// Trade is a single rebalancing instruction: buy or sell a value of a
// ticker, expressed in the reporting currency.
type Trade struct {
	Action TradeAction `json:"action"`
	Value  Money       `json:"value"`
	Ticker string      `json:"ticker"`
}

func (t Trade) String() string {
	return fmt.Sprintf("%-4s %s of %s", t.Action, t.Value, t.Ticker)
}

// planWeightThreshold is the allocation-weight delta (0.01 percentage
// points) under which a ticker is considered already balanced. It is a
// weight, not a currency amount: a large portfolio can still trade on tiny
// weight deltas, and a small one suppresses trades below it regardless of
// the currency magnitude.
const planWeightThreshold = 0.0001

// BuildPlan converts allocation deltas between current and target into
// discrete trade instructions over the active portfolio value. Tickers are
// visited in sorted order so the plan is reproducible.
func BuildPlan(current, target map[string]float64, active Money) []Trade {
	union := make(map[string]bool, len(current)+len(target))
	for t := range current {
		union[t] = true
	}
	for t := range target {
		union[t] = true
	}
	tickers := make([]string, 0, len(union))
	for t := range union {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	var plan []Trade
	for _, ticker := range tickers {
		delta := target[ticker] - current[ticker]
		if abs(delta) <= planWeightThreshold {
			continue
		}
		value := active.Mul(Q(delta))
		action := Buy
		if value.IsNegative() {
			action = Sell
		}
		plan = append(plan, Trade{Action: action, Value: value.Abs(), Ticker: ticker})
	}
	return plan
}
