package models

import "fmt"

// Wallet is a per-user money ledger split into free and locked balances.
// Free money can be spent or locked against a resting buy order; locked
// money is reserved and settles on execution. Only the owning user's
// operations may mutate it.
//
// Callers must validate balances before locking or debiting: moving more
// than is available is a contract violation and panics.
type Wallet struct {
	free   uint64
	locked uint64
}

func (w *Wallet) Free() uint64 {
	return w.free
}

func (w *Wallet) Locked() uint64 {
	return w.locked
}

func (w *Wallet) Total() uint64 {
	return w.free + w.locked
}

// CanAdd reports whether crediting amount would keep the wallet within max.
func (w *Wallet) CanAdd(amount, max uint64) bool {
	return w.Total()+amount <= max
}

// Add credits amount to the free balance.
func (w *Wallet) Add(amount uint64) {
	w.free += amount
}

// HasFree reports whether at least amount is free to spend.
func (w *Wallet) HasFree(amount uint64) bool {
	return w.free >= amount
}

// Lock moves amount from free to locked.
func (w *Wallet) Lock(amount uint64) {
	if amount > w.free {
		panic(fmt.Sprintf("wallet: locking %d exceeds free balance %d", amount, w.free))
	}
	w.free -= amount
	w.locked += amount
}

// ReleaseLocked moves amount back from locked to free.
func (w *Wallet) ReleaseLocked(amount uint64) {
	w.DebitLocked(amount)
	w.Add(amount)
}

// DebitLocked removes amount from the locked balance.
func (w *Wallet) DebitLocked(amount uint64) {
	if amount > w.locked {
		panic(fmt.Sprintf("wallet: debiting %d exceeds locked balance %d", amount, w.locked))
	}
	w.locked -= amount
}
