package engine

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/esopx/exchange/internal/book"
	"github.com/esopx/exchange/internal/config"
	"github.com/esopx/exchange/internal/models"
	"github.com/esopx/exchange/internal/users"
)

// OrderRequest is a validated order submission. Class is meaningful for
// SELL orders only; buys always settle into non-performance inventory.
type OrderRequest struct {
	Side     models.Side
	Quantity uint64
	Price    uint64
	Class    models.Class
}

// OrderSummary is the read-only order projection returned by OrderHistory.
type OrderSummary struct {
	OrderID  uint64              `json:"orderId"`
	Quantity uint64              `json:"quantity"`
	Type     models.Side         `json:"type"`
	Price    uint64              `json:"price"`
	Status   models.Status       `json:"status"`
	Fills    []models.FillRecord `json:"fills"`
}

// Engine validates order requests, locks the placing user's resources,
// runs the matching loop and settles every trade atomically.
//
// All mutation of the book and of user ledgers happens under the
// exchange-wide trading lock: one order's full validate-place-execute
// sequence runs to completion before the next begins. Matching crosses
// several orders and users at once, so per-order locking would be unsafe.
type Engine struct {
	mu        *sync.Mutex
	book      *book.Book
	directory *users.Directory
	fees      *FeeLedger

	feeRate      decimal.Decimal
	maxWallet    uint64
	maxInventory uint64

	log *zap.Logger
}

func New(b *book.Book, d *users.Directory, fees *FeeLedger, cfg config.Config, trading *sync.Mutex, log *zap.Logger) *Engine {
	return &Engine{
		mu:           trading,
		book:         b,
		directory:    d,
		fees:         fees,
		feeRate:      cfg.FeeRate,
		maxWallet:    cfg.MaxWalletCapacity,
		maxInventory: cfg.MaxInventoryCapacity,
		log:          log,
	}
}

// Fees exposes the platform fee ledger.
func (e *Engine) Fees() *FeeLedger {
	return e.fees
}

// Snapshot returns the resting sets under the trading lock.
func (e *Engine) Snapshot() (buyOrders, sellOrders []*models.Order) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.Snapshot()
}

// Submit runs the full validate, place and execute sequence for one order
// without letting another submission interleave. On validation failure the
// error list is returned and nothing is mutated.
func (e *Engine) Submit(username string, req OrderRequest) (*models.Order, []string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if errs := e.validate(username, req); len(errs) > 0 {
		return nil, errs
	}
	order := e.place(username, req)
	e.execute(order)
	return order, nil
}

// ValidateOrderRequest returns the user-facing errors for an order
// submission. An empty list means the order may be placed. An unknown
// user short-circuits all other checks.
func (e *Engine) ValidateOrderRequest(username string, req OrderRequest) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.validate(username, req)
}

// PlaceOrder creates the order, inserts it into the book and the user's
// history, and locks the backing resource: the order's full value from the
// buyer's wallet, or the declared quantity from the seller's inventory.
//
// Must only be called after validation returned no errors; it does not
// re-validate, and locking unvalidated resources panics.
func (e *Engine) PlaceOrder(username string, req OrderRequest) *models.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.place(username, req)
}

// ExecuteOrder repeatedly matches the order against the best eligible
// counter-order until it is fully filled or none remains, settling each
// pairing as one atomic unit. Unfilled remainder rests in the book.
func (e *Engine) ExecuteOrder(order *models.Order) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.execute(order)
}

func (e *Engine) validate(username string, req OrderRequest) []string {
	user, err := e.directory.Get(username)
	if err != nil {
		return []string{users.MsgUserNotFound}
	}

	orderValue := req.Price * req.Quantity
	var errs []string
	switch req.Side {
	case models.Buy:
		if !user.Wallet().HasFree(orderValue) {
			errs = append(errs, "Insufficient funds")
		}
		// A completed buy settles into non-performance inventory.
		if !user.Inventory(models.NonPerformance).CanAdd(req.Quantity, e.maxInventory) {
			errs = append(errs, "Inventory Limit exceeded")
		}
	case models.Sell:
		if !user.Inventory(req.Class).HasFree(req.Quantity) {
			errs = append(errs, fmt.Sprintf("Insufficient %s inventory.", strings.ToLower(req.Class.String())))
		}
		if !user.Wallet().CanAdd(orderValue, e.maxWallet) {
			errs = append(errs, "Wallet Limit exceeded")
		}
	}
	return errs
}

func (e *Engine) place(username string, req OrderRequest) *models.Order {
	user, err := e.directory.Get(username)
	if err != nil {
		panic(fmt.Sprintf("engine: placing order for unknown user %q", username))
	}

	class := models.ClassNone
	if req.Side == models.Sell {
		class = req.Class
	}
	order := models.NewOrder(e.book.NextOrderID(), req.Side, req.Quantity, req.Price, username, class)
	e.book.Add(order)
	user.RecordOrder(order.ID)

	switch order.Side {
	case models.Buy:
		user.Wallet().Lock(order.Value())
	case models.Sell:
		user.Inventory(class).Lock(order.Quantity)
	}

	e.log.Info("order placed",
		zap.Uint64("orderId", order.ID),
		zap.Stringer("side", order.Side),
		zap.Uint64("quantity", order.Quantity),
		zap.Uint64("price", order.Price),
		zap.String("user", username))
	return order
}

func (e *Engine) execute(order *models.Order) string {
	for order.Status() != models.Completed {
		var buyOrder, sellOrder *models.Order
		if order.Side == models.Buy {
			buyOrder, sellOrder = order, e.book.MatchSell(order)
		} else {
			buyOrder, sellOrder = e.book.MatchBuy(order), order
		}
		if buyOrder == nil || sellOrder == nil {
			break
		}

		e.settle(buyOrder, sellOrder)
		e.book.RemoveIfFilled(buyOrder)
		e.book.RemoveIfFilled(sellOrder)
	}
	return "Order placed successfully."
}

// settle applies one buy/sell pairing: wallet transfer with fee deduction,
// inventory transfer, surplus release, fill accounting. All amounts are
// computed up front so the ledgers are never left partially applied.
func (e *Engine) settle(buyOrder, sellOrder *models.Order) {
	tradeQty := min(buyOrder.Remaining(), sellOrder.Remaining())
	// The resting-priority side's price wins; the buyer keeps the
	// difference to their own limit.
	price := sellOrder.Price
	tradeValue := tradeQty * price
	fee := feeFor(sellOrder.Class, tradeValue, e.feeRate)
	surplus := (buyOrder.Price - price) * tradeQty

	buyer := e.mustGet(buyOrder.Owner)
	seller := e.mustGet(sellOrder.Owner)

	buyer.Wallet().DebitLocked(tradeValue)
	seller.Wallet().Add(tradeValue - uint64(fee))
	e.fees.Collect(fee)

	seller.Inventory(sellOrder.Class).DebitLocked(tradeQty)
	buyer.Inventory(models.NonPerformance).Add(tradeQty)

	buyer.Wallet().ReleaseLocked(surplus)

	buyOrder.Fill(tradeQty)
	sellOrder.Fill(tradeQty)
	buyOrder.AddFill(models.FillRecord{
		Quantity:     tradeQty,
		Price:        price,
		Counterparty: sellOrder.Owner,
	})
	sellOrder.AddFill(models.FillRecord{
		Quantity:     tradeQty,
		Price:        price,
		Counterparty: buyOrder.Owner,
		Class:        sellOrder.Class,
	})

	e.log.Info("trade executed",
		zap.Uint64("buyOrderId", buyOrder.ID),
		zap.Uint64("sellOrderId", sellOrder.ID),
		zap.Uint64("quantity", tradeQty),
		zap.Uint64("price", price),
		zap.Int64("platformFee", fee),
		zap.Stringer("esopClass", sellOrder.Class))
}

// OrderHistory returns the user's orders in placement order, or
// users.ErrNotFound for an unknown username.
func (e *Engine) OrderHistory(username string) ([]OrderSummary, error) {
	user, err := e.directory.Get(username)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ids := user.OrderIDs()
	history := make([]OrderSummary, 0, len(ids))
	for _, id := range ids {
		order, ok := e.book.Get(id)
		if !ok {
			continue
		}
		history = append(history, OrderSummary{
			OrderID:  order.ID,
			Quantity: order.Quantity,
			Type:     order.Side,
			Price:    order.Price,
			Status:   order.Status(),
			Fills:    order.Fills(),
		})
	}
	return history, nil
}

func (e *Engine) mustGet(username string) *models.User {
	user, err := e.directory.Get(username)
	if err != nil {
		panic(fmt.Sprintf("engine: order owned by unknown user %q", username))
	}
	return user
}
