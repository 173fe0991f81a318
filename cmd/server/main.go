package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/esopx/exchange/internal/api"
	"github.com/esopx/exchange/internal/book"
	"github.com/esopx/exchange/internal/config"
	"github.com/esopx/exchange/internal/engine"
	"github.com/esopx/exchange/internal/models"
	"github.com/esopx/exchange/internal/users"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

var (
	clients   = make(map[*wsClient]bool)
	clientsMu sync.RWMutex
)

// bookEntry is the wire view of a resting order.
type bookEntry struct {
	OrderID   uint64       `json:"orderId"`
	Type      models.Side  `json:"type"`
	Price     uint64       `json:"price"`
	Remaining uint64       `json:"remainingQuantity"`
	EsopClass models.Class `json:"esopClass,omitempty"`
}

func bookView(orders []*models.Order) []bookEntry {
	entries := make([]bookEntry, 0, len(orders))
	for _, o := range orders {
		entries = append(entries, bookEntry{
			OrderID:   o.ID,
			Type:      o.Side,
			Price:     o.Price,
			Remaining: o.Remaining(),
			EsopClass: o.Class,
		})
	}
	return entries
}

func broadcastOrderBook(eng *engine.Engine, log *zap.Logger) {
	buyOrders, sellOrders := eng.Snapshot()
	payload := struct {
		BuyOrders  []bookEntry `json:"buy_orders"`
		SellOrders []bookEntry `json:"sell_orders"`
	}{
		BuyOrders:  bookView(buyOrders),
		SellOrders: bookView(sellOrders),
	}

	clientsMu.RLock()
	defer clientsMu.RUnlock()
	for client := range clients {
		client.mu.Lock()
		err := client.conn.WriteJSON(payload)
		client.mu.Unlock()
		if err != nil {
			log.Warn("failed to send order book", zap.Error(err))
		}
	}
}

func handleWebSocket(eng *engine.Engine, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("failed to upgrade connection", zap.Error(err))
			return
		}

		client := &wsClient{conn: conn}
		clientsMu.Lock()
		clients[client] = true
		clientsMu.Unlock()

		// Send initial order book
		broadcastOrderBook(eng, log)

		// Keep connection alive and handle disconnection
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				clientsMu.Lock()
				delete(clients, client)
				clientsMu.Unlock()
				break
			}
		}
	}
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// Main entry point: wires the directory, order book, matching engine and
// HTTP server together.
func main() {
	cfg := config.Load("")

	logger, err := newLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// One lock serializes all book and ledger mutation across the exchange.
	trading := &sync.Mutex{}

	directory := users.NewDirectory(cfg, trading)
	orderBook := book.New()
	fees := engine.NewFeeLedger()
	eng := engine.New(orderBook, directory, fees, cfg, trading, logger)

	handler := api.NewHandler(eng, directory, cfg, logger)

	r := chi.NewRouter()

	// Enable CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// WebSocket order book feed
	r.Get("/ws", handleWebSocket(eng, logger))

	r.Mount("/", handler.Routes())

	// Start periodic order book broadcast
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		for range ticker.C {
			broadcastOrderBook(eng, logger)
		}
	}()

	logger.Info("starting server", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
