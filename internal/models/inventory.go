package models

import "fmt"

// Inventory is a per-user equity ledger for a single ESOP class, split into
// free and locked quantities with the same discipline as Wallet.
type Inventory struct {
	class  Class
	free   uint64
	locked uint64
}

func NewInventory(class Class) *Inventory {
	return &Inventory{class: class}
}

func (i *Inventory) Class() Class {
	return i.class
}

func (i *Inventory) Free() uint64 {
	return i.free
}

func (i *Inventory) Locked() uint64 {
	return i.locked
}

func (i *Inventory) Total() uint64 {
	return i.free + i.locked
}

// CanAdd reports whether crediting quantity would keep the inventory within max.
func (i *Inventory) CanAdd(quantity, max uint64) bool {
	return i.Total()+quantity <= max
}

// Add credits quantity to the free balance.
func (i *Inventory) Add(quantity uint64) {
	i.free += quantity
}

// HasFree reports whether at least quantity is free to sell.
func (i *Inventory) HasFree(quantity uint64) bool {
	return i.free >= quantity
}

// Lock moves quantity from free to locked.
func (i *Inventory) Lock(quantity uint64) {
	if quantity > i.free {
		panic(fmt.Sprintf("inventory(%s): locking %d exceeds free quantity %d", i.class, quantity, i.free))
	}
	i.free -= quantity
	i.locked += quantity
}

// DebitLocked removes quantity from the locked balance.
func (i *Inventory) DebitLocked(quantity uint64) {
	if quantity > i.locked {
		panic(fmt.Sprintf("inventory(%s): debiting %d exceeds locked quantity %d", i.class, quantity, i.locked))
	}
	i.locked -= quantity
}
