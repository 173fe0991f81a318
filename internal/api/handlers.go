package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/esopx/exchange/internal/config"
	"github.com/esopx/exchange/internal/engine"
	"github.com/esopx/exchange/internal/models"
	"github.com/esopx/exchange/internal/users"
)

// Handler contains dependencies for HTTP handlers.
type Handler struct {
	Engine    *engine.Engine
	Directory *users.Directory
	Config    config.Config
	Log       *zap.Logger
}

func NewHandler(e *engine.Engine, d *users.Directory, cfg config.Config, log *zap.Logger) *Handler {
	return &Handler{Engine: e, Directory: d, Config: cfg, Log: log}
}

// Routes mounts the user-facing endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(h.Log))

	r.Route("/user", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/{username}/order", h.PlaceOrder)
		r.Post("/{username}/wallet", h.AddWallet)
		r.Post("/{username}/inventory", h.AddInventory)
		r.Get("/{username}/accountInformation", h.AccountInformation)
		r.Get("/{username}/orderHistory", h.OrderHistory)
	})
	return r
}

type registerRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Username    string `json:"username"`
}

type orderRequest struct {
	Type     string  `json:"type"`
	Quantity *uint64 `json:"quantity"`
	Price    *uint64 `json:"price"`
	EsopType string  `json:"esopType"`
}

type walletRequest struct {
	Amount *uint64 `json:"amount"`
}

type inventoryRequest struct {
	Quantity *uint64 `json:"quantity"`
	EsopType string  `json:"esopType"`
}

// Register handles user registration.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrors(w, http.StatusBadRequest, []string{"Invalid JSON format"})
		return
	}

	user, errs := h.Directory.Register(users.Profile{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Username:    req.Username,
	})
	if len(errs) > 0 {
		respondErrors(w, http.StatusBadRequest, errs)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"firstName":   user.FirstName,
		"lastName":    user.LastName,
		"phoneNumber": user.PhoneNumber,
		"email":       user.Email,
		"username":    user.Username,
	})
}

// PlaceOrder validates, places and executes an order for the user.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrors(w, http.StatusBadRequest, []string{"Invalid JSON format"})
		return
	}

	orderReq, errs := h.parseOrderRequest(req)
	if len(errs) > 0 {
		respondErrors(w, http.StatusBadRequest, errs)
		return
	}

	_, errs = h.Engine.Submit(username, orderReq)
	if len(errs) > 0 {
		respondErrors(w, http.StatusBadRequest, errs)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Order placed successfully."})
}

// parseOrderRequest applies the wire-level bounds checks before the engine
// sees the request.
func (h *Handler) parseOrderRequest(req orderRequest) (engine.OrderRequest, []string) {
	var errs []string

	side, err := models.ParseSide(req.Type)
	if req.Type == "" {
		errs = append(errs, "Order Type can not be missing or empty.")
	} else if err != nil {
		errs = append(errs, "Invalid Type: should be one of BUY or SELL")
	}

	switch {
	case req.Quantity == nil:
		errs = append(errs, "Quantity can not be missing.")
	case *req.Quantity < 1:
		errs = append(errs, "Quantity has to be greater than zero")
	case *req.Quantity > h.Config.MaxInventoryCapacity:
		errs = append(errs, fmt.Sprintf("quantity can't exceed maximum inventory capacity of %d", h.Config.MaxInventoryCapacity))
	}

	switch {
	case req.Price == nil:
		errs = append(errs, "Price can not be missing.")
	case *req.Price < 1:
		errs = append(errs, "Price can not be less than zero")
	case *req.Price > h.Config.MaxWalletCapacity:
		errs = append(errs, fmt.Sprintf("amount can't exceed maximum wallet capacity of %d", h.Config.MaxWalletCapacity))
	}

	class := models.NonPerformance
	if req.EsopType != "" {
		class, err = models.ParseClass(req.EsopType)
		if err != nil {
			errs = append(errs, "esopType should be one of NON_PERFORMANCE or PERFORMANCE")
		}
	}

	if len(errs) > 0 {
		return engine.OrderRequest{}, errs
	}
	return engine.OrderRequest{
		Side:     side,
		Quantity: *req.Quantity,
		Price:    *req.Price,
		Class:    class,
	}, nil
}

// AddWallet credits money to the user's free wallet balance.
func (h *Handler) AddWallet(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var req walletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrors(w, http.StatusBadRequest, []string{"Invalid JSON format"})
		return
	}

	switch {
	case req.Amount == nil:
		respondErrors(w, http.StatusBadRequest, []string{"Amount can not be missing."})
		return
	case *req.Amount < 1:
		respondErrors(w, http.StatusBadRequest, []string{"Amount can not be less than zero"})
		return
	case *req.Amount > h.Config.MaxWalletCapacity:
		respondErrors(w, http.StatusBadRequest, []string{fmt.Sprintf("amount can't exceed maximum wallet capacity of %d", h.Config.MaxWalletCapacity)})
		return
	}

	if errs := h.Directory.ValidateFundsTopUp(username, *req.Amount); len(errs) > 0 {
		respondErrors(w, http.StatusBadRequest, errs)
		return
	}
	msg, err := h.Directory.AddFunds(username, *req.Amount)
	if err != nil {
		respondNotFound(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": msg})
}

// AddInventory credits ESOPs to the user's free inventory.
func (h *Handler) AddInventory(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var req inventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrors(w, http.StatusBadRequest, []string{"Invalid JSON format"})
		return
	}

	switch {
	case req.Quantity == nil:
		respondErrors(w, http.StatusBadRequest, []string{"Quantity can not be missing."})
		return
	case *req.Quantity < 1:
		respondErrors(w, http.StatusBadRequest, []string{"Quantity has to be greater than zero"})
		return
	case *req.Quantity > h.Config.MaxInventoryCapacity:
		respondErrors(w, http.StatusBadRequest, []string{fmt.Sprintf("quantity can't exceed maximum inventory capacity of %d", h.Config.MaxInventoryCapacity)})
		return
	}

	class := models.NonPerformance
	if req.EsopType != "" {
		var err error
		class, err = models.ParseClass(req.EsopType)
		if err != nil {
			respondErrors(w, http.StatusBadRequest, []string{"esopType should be one of NON_PERFORMANCE or PERFORMANCE"})
			return
		}
	}

	if errs := h.Directory.ValidateInventoryTopUp(username, class, *req.Quantity); len(errs) > 0 {
		respondErrors(w, http.StatusBadRequest, errs)
		return
	}
	msg, err := h.Directory.AddInventory(username, class, *req.Quantity)
	if err != nil {
		respondNotFound(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": msg})
}

// AccountInformation returns wallet and inventory balances.
func (h *Handler) AccountInformation(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	info, err := h.Directory.AccountInformation(username)
	if err != nil {
		respondNotFound(w, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

// OrderHistory returns the user's orders in placement order.
func (h *Handler) OrderHistory(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	history, err := h.Engine.OrderHistory(username)
	if err != nil {
		respondNotFound(w, err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondErrors(w http.ResponseWriter, status int, errs []string) {
	respondJSON(w, status, map[string][]string{"errors": errs})
}

func respondNotFound(w http.ResponseWriter, err error) {
	if errors.Is(err, users.ErrNotFound) {
		respondErrors(w, http.StatusBadRequest, []string{users.MsgUserNotFound})
		return
	}
	respondErrors(w, http.StatusInternalServerError, []string{err.Error()})
}
