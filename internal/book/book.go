package book

import (
	"sort"

	"github.com/esopx/exchange/internal/models"
)

// Book holds all resting orders, partitioned into buy and sell sets, and
// owns the order id sequence. Every order ever created stays reachable by
// id for history reads even after it leaves the resting sets.
//
// The book itself is not goroutine-safe; the matching engine serializes
// access.
type Book struct {
	nextID uint64

	buyOrders  []*models.Order
	sellOrders []*models.Order
	orders     map[uint64]*models.Order
}

func New() *Book {
	return &Book{
		nextID: 1,
		orders: make(map[uint64]*models.Order),
	}
}

// NextOrderID returns a strictly increasing id, starting at 1. Ids are
// never reused, even after orders are removed.
func (b *Book) NextOrderID() uint64 {
	id := b.nextID
	b.nextID++
	return id
}

// Add inserts an order into the buy or sell set per its side and keeps the
// set in matching-priority order.
func (b *Book) Add(order *models.Order) {
	b.orders[order.ID] = order
	switch order.Side {
	case models.Buy:
		b.buyOrders = append(b.buyOrders, order)
		// Highest price first, then earliest order.
		sort.Slice(b.buyOrders, func(i, j int) bool {
			if b.buyOrders[i].Price != b.buyOrders[j].Price {
				return b.buyOrders[i].Price > b.buyOrders[j].Price
			}
			return before(b.buyOrders[i], b.buyOrders[j])
		})
	case models.Sell:
		b.sellOrders = append(b.sellOrders, order)
		// Performance class first, then lowest price, then earliest order.
		sort.Slice(b.sellOrders, func(i, j int) bool {
			oi, oj := b.sellOrders[i], b.sellOrders[j]
			if oi.Class.Priority() != oj.Class.Priority() {
				return oi.Class.Priority() < oj.Class.Priority()
			}
			if oi.Price != oj.Price {
				return oi.Price < oj.Price
			}
			return before(oi, oj)
		})
	}
}

// Get looks up any order ever added, resting or completed.
func (b *Book) Get(id uint64) (*models.Order, bool) {
	order, ok := b.orders[id]
	return order, ok
}

// RemoveIfFilled drops the order from its resting set iff it is completed.
// Calling it again for the same order is a no-op.
func (b *Book) RemoveIfFilled(order *models.Order) {
	if order.Status() != models.Completed {
		return
	}
	switch order.Side {
	case models.Buy:
		b.buyOrders = remove(b.buyOrders, order.ID)
	case models.Sell:
		b.sellOrders = remove(b.sellOrders, order.ID)
	}
}

// MatchBuy returns the resting buy order with the highest price (earliest
// first on ties), or nil if none is priced at or above the sell's limit.
func (b *Book) MatchBuy(sellOrder *models.Order) *models.Order {
	if len(b.buyOrders) == 0 {
		return nil
	}
	best := b.buyOrders[0]
	if best.Price < sellOrder.Price {
		return nil
	}
	return best
}

// MatchSell returns the best eligible resting sell order: performance
// class ranks ahead of non-performance, then lower price, then earlier
// order. Returns nil if the best candidate's price exceeds the buy limit.
func (b *Book) MatchSell(buyOrder *models.Order) *models.Order {
	if len(b.sellOrders) == 0 {
		return nil
	}
	best := b.sellOrders[0]
	if best.Price > buyOrder.Price {
		return nil
	}
	return best
}

// Snapshot returns copies of the resting sets in matching-priority order.
func (b *Book) Snapshot() (buyOrders, sellOrders []*models.Order) {
	buyOrders = make([]*models.Order, len(b.buyOrders))
	copy(buyOrders, b.buyOrders)
	sellOrders = make([]*models.Order, len(b.sellOrders))
	copy(sellOrders, b.sellOrders)
	return buyOrders, sellOrders
}

// before orders two entries by creation time, falling back to id when the
// clock gives identical instants.
func before(a, b *models.Order) bool {
	if a.Timestamp.Equal(b.Timestamp) {
		return a.ID < b.ID
	}
	return a.Timestamp.Before(b.Timestamp)
}

func remove(orders []*models.Order, id uint64) []*models.Order {
	for i, o := range orders {
		if o.ID == id {
			return append(orders[:i], orders[i+1:]...)
		}
	}
	return orders
}
