package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrder_StatusTransitions(t *testing.T) {
	order := NewOrder(1, Buy, 10, 20, "alice", ClassNone)

	assert.Equal(t, Pending, order.Status())
	assert.Equal(t, uint64(10), order.Remaining())

	order.Fill(4)
	assert.Equal(t, Partial, order.Status())
	assert.Equal(t, uint64(6), order.Remaining())

	order.Fill(6)
	assert.Equal(t, Completed, order.Status())
	assert.Equal(t, uint64(0), order.Remaining())
}

func TestOrder_FillContract(t *testing.T) {
	order := NewOrder(1, Sell, 10, 20, "bob", NonPerformance)

	assert.Panics(t, func() { order.Fill(11) }, "filling more than remaining must panic")

	order.Fill(10)
	assert.Panics(t, func() { order.Fill(1) }, "filling a completed order must panic")
}

func TestOrder_Value(t *testing.T) {
	order := NewOrder(1, Buy, 10, 20, "alice", ClassNone)
	assert.Equal(t, uint64(200), order.Value())
}

func TestOrder_FillLog(t *testing.T) {
	order := NewOrder(1, Sell, 10, 20, "bob", Performance)

	order.AddFill(FillRecord{Quantity: 4, Price: 20, Counterparty: "alice", Class: Performance})
	order.AddFill(FillRecord{Quantity: 6, Price: 20, Counterparty: "carol", Class: Performance})

	fills := order.Fills()
	assert.Len(t, fills, 2)
	assert.Equal(t, "alice", fills[0].Counterparty)
	assert.Equal(t, "carol", fills[1].Counterparty)

	// The returned slice is a copy
	fills[0].Counterparty = "mallory"
	assert.Equal(t, "alice", order.Fills()[0].Counterparty)
}

func TestParseSide(t *testing.T) {
	tests := []struct {
		input   string
		want    Side
		wantErr bool
	}{
		{"BUY", Buy, false},
		{"buy", Buy, false},
		{"SELL", Sell, false},
		{"sell", Sell, false},
		{"HOLD", SideUnknown, true},
		{"", SideUnknown, true},
	}
	for _, tt := range tests {
		got, err := ParseSide(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
		} else {
			assert.NoError(t, err, tt.input)
			assert.Equal(t, tt.want, got, tt.input)
		}
	}
}

func TestClassPriority(t *testing.T) {
	assert.Less(t, Performance.Priority(), NonPerformance.Priority(),
		"performance equity must rank ahead of non-performance")
	assert.Equal(t, 0, ClassNone.Priority())
}
