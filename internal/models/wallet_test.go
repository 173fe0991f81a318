package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWallet_LockAndSettle(t *testing.T) {
	w := &Wallet{}
	w.Add(100)

	assert.True(t, w.HasFree(100))
	assert.False(t, w.HasFree(101))

	w.Lock(60)
	assert.Equal(t, uint64(40), w.Free())
	assert.Equal(t, uint64(60), w.Locked())
	assert.Equal(t, uint64(100), w.Total())

	w.DebitLocked(50)
	assert.Equal(t, uint64(10), w.Locked())

	w.ReleaseLocked(10)
	assert.Equal(t, uint64(50), w.Free())
	assert.Equal(t, uint64(0), w.Locked())
}

func TestWallet_CapacityCheck(t *testing.T) {
	w := &Wallet{}
	w.Add(90)
	w.Lock(30)

	// Ceiling applies to free+locked
	assert.True(t, w.CanAdd(10, 100))
	assert.False(t, w.CanAdd(11, 100))
}

func TestWallet_ContractViolations(t *testing.T) {
	w := &Wallet{}
	w.Add(10)

	assert.Panics(t, func() { w.Lock(11) })
	assert.Panics(t, func() { w.DebitLocked(1) })
}

func TestInventory_LockAndSettle(t *testing.T) {
	inv := NewInventory(NonPerformance)
	inv.Add(50)

	assert.Equal(t, NonPerformance, inv.Class())
	assert.True(t, inv.HasFree(50))

	inv.Lock(10)
	assert.Equal(t, uint64(40), inv.Free())
	assert.Equal(t, uint64(10), inv.Locked())

	inv.DebitLocked(10)
	assert.Equal(t, uint64(0), inv.Locked())
	assert.Equal(t, uint64(40), inv.Total())
}

func TestInventory_CapacityCheck(t *testing.T) {
	inv := NewInventory(Performance)
	inv.Add(95)

	assert.True(t, inv.CanAdd(5, 100))
	assert.False(t, inv.CanAdd(6, 100))
}

func TestInventory_ContractViolations(t *testing.T) {
	inv := NewInventory(Performance)
	inv.Add(5)

	assert.Panics(t, func() { inv.Lock(6) })
	assert.Panics(t, func() { inv.DebitLocked(1) })
}

func TestUser_Inventories(t *testing.T) {
	u := NewUser("Alice", "Smith", "+14155552671", "alice@example.com", "alice")

	assert.Equal(t, Performance, u.Inventory(Performance).Class())
	assert.Equal(t, NonPerformance, u.Inventory(NonPerformance).Class())
	assert.Panics(t, func() { u.Inventory(ClassNone) })
}

func TestUser_OrderHistoryIDs(t *testing.T) {
	u := NewUser("Alice", "Smith", "+14155552671", "alice@example.com", "alice")

	u.RecordOrder(3)
	u.RecordOrder(7)
	assert.Equal(t, []uint64{3, 7}, u.OrderIDs())
}
