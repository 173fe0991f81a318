package models

import (
	"fmt"
	"time"
)

// FillRecord captures one execution against an order. The seller-side
// record carries the class of the equity sold; the buyer-side record
// leaves it unset. Records are never mutated after creation.
type FillRecord struct {
	Quantity     uint64 `json:"quantity"`
	Price        uint64 `json:"price"`
	Counterparty string `json:"counterparty"`
	Class        Class  `json:"esopClass,omitempty"`
}

// Order is an immutable trade request plus its mutable execution state.
// Identity, side, quantity, price, owner, class and timestamp are fixed at
// creation; remaining quantity only ever decreases and status is derived
// from it.
type Order struct {
	ID        uint64
	Side      Side
	Quantity  uint64
	Price     uint64
	Owner     string
	Class     Class // set for SELL orders only; buys settle into NON_PERFORMANCE
	Timestamp time.Time

	remaining uint64
	status    Status
	fills     []FillRecord
}

func NewOrder(id uint64, side Side, quantity, price uint64, owner string, class Class) *Order {
	return &Order{
		ID:        id,
		Side:      side,
		Quantity:  quantity,
		Price:     price,
		Owner:     owner,
		Class:     class,
		Timestamp: time.Now(),
		remaining: quantity,
		status:    Pending,
	}
}

func (o *Order) Remaining() uint64 {
	return o.remaining
}

func (o *Order) Status() Status {
	return o.status
}

// Value is the order's total limit value, price * quantity.
func (o *Order) Value() uint64 {
	return o.Price * o.Quantity
}

// Fill reduces the remaining quantity and recomputes status. Filling a
// completed order or more than remains is a contract violation.
func (o *Order) Fill(quantity uint64) {
	if o.status == Completed {
		panic(fmt.Sprintf("order %d: fill on completed order", o.ID))
	}
	if quantity > o.remaining {
		panic(fmt.Sprintf("order %d: fill %d exceeds remaining %d", o.ID, quantity, o.remaining))
	}
	o.remaining -= quantity
	switch {
	case o.remaining == 0:
		o.status = Completed
	case o.remaining < o.Quantity:
		o.status = Partial
	}
}

// AddFill appends an execution record to the order's fill log.
func (o *Order) AddFill(rec FillRecord) {
	o.fills = append(o.fills, rec)
}

// Fills returns the fill log in execution order.
func (o *Order) Fills() []FillRecord {
	recs := make([]FillRecord, len(o.fills))
	copy(recs, o.fills)
	return recs
}
