package engine

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/esopx/exchange/internal/models"
)

// FeeLedger is the process-wide accumulator of collected platform fees.
// The total only ever grows.
type FeeLedger struct {
	mu    sync.Mutex
	total uint64
}

func NewFeeLedger() *FeeLedger {
	return &FeeLedger{}
}

// Collect adds a fee to the running total. A negative fee is a contract
// violation and panics.
func (l *FeeLedger) Collect(fee int64) {
	if fee < 0 {
		panic("fee ledger: platform fee cannot be less than zero")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.total += uint64(fee)
}

// Total returns the fees collected so far.
func (l *FeeLedger) Total() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// feeFor computes the platform commission on a trade. Performance-class
// sales are fee-exempt; the rest pay rate * value, rounded half away from
// zero to the nearest whole unit.
func feeFor(class models.Class, tradeValue uint64, rate decimal.Decimal) int64 {
	if class != models.NonPerformance {
		return 0
	}
	return decimal.NewFromInt(int64(tradeValue)).Mul(rate).Round(0).IntPart()
}
