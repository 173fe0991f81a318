package users

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/esopx/exchange/internal/config"
	"github.com/esopx/exchange/internal/models"
)

// MsgUserNotFound is the user-facing message for lookups of unknown users.
const MsgUserNotFound = "User doesn't exist."

// ErrNotFound distinguishes "no such user" from an empty result.
var ErrNotFound = errors.New("user not found")

// Profile is the registration request.
type Profile struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
	Username    string
}

// Directory is the process-wide user registry. Username, email and phone
// number are unique forever: once registered they are never released.
//
// Registration and lookups are guarded by the directory's own lock;
// wallet and inventory mutations are serialized by the exchange-wide
// trading lock shared with the matching engine.
type Directory struct {
	mu      sync.RWMutex
	trading *sync.Mutex

	users  map[string]*models.User
	emails map[string]struct{}
	phones map[string]struct{}

	maxWallet    uint64
	maxInventory uint64
}

func NewDirectory(cfg config.Config, trading *sync.Mutex) *Directory {
	return &Directory{
		trading:      trading,
		users:        make(map[string]*models.User),
		emails:       make(map[string]struct{}),
		phones:       make(map[string]struct{}),
		maxWallet:    cfg.MaxWalletCapacity,
		maxInventory: cfg.MaxInventoryCapacity,
	}
}

// Register creates a user after format and uniqueness checks. The returned
// error list is empty iff the user was created.
func (d *Directory) Register(p Profile) (*models.User, []string) {
	if errs := ValidateProfile(p); len(errs) > 0 {
		return nil, errs
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []string
	if _, taken := d.users[p.Username]; taken {
		errs = append(errs, "Username already exists")
	}
	if _, taken := d.emails[p.Email]; taken {
		errs = append(errs, "Email already exists")
	}
	if _, taken := d.phones[p.PhoneNumber]; taken {
		errs = append(errs, "Phone number already exists")
	}
	if len(errs) > 0 {
		return nil, errs
	}

	user := models.NewUser(
		strings.TrimSpace(p.FirstName),
		strings.TrimSpace(p.LastName),
		p.PhoneNumber,
		p.Email,
		p.Username,
	)
	d.users[p.Username] = user
	d.emails[p.Email] = struct{}{}
	d.phones[p.PhoneNumber] = struct{}{}
	return user, nil
}

// Exists reports whether username is registered.
func (d *Directory) Exists(username string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.users[username]
	return ok
}

// Get returns the user for username, or ErrNotFound.
func (d *Directory) Get(username string) (*models.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	user, ok := d.users[username]
	if !ok {
		return nil, fmt.Errorf("%q: %w", username, ErrNotFound)
	}
	return user, nil
}

// ValidateFundsTopUp checks that amount fits under the wallet ceiling.
func (d *Directory) ValidateFundsTopUp(username string, amount uint64) []string {
	user, err := d.Get(username)
	if err != nil {
		return []string{MsgUserNotFound}
	}

	d.trading.Lock()
	defer d.trading.Unlock()
	if !user.Wallet().CanAdd(amount, d.maxWallet) {
		return []string{"Wallet Limit exceeded"}
	}
	return nil
}

// AddFunds credits amount to the user's free balance. Callers validate first.
func (d *Directory) AddFunds(username string, amount uint64) (string, error) {
	user, err := d.Get(username)
	if err != nil {
		return "", err
	}

	d.trading.Lock()
	defer d.trading.Unlock()
	user.Wallet().Add(amount)
	return fmt.Sprintf("%d amount added to account.", amount), nil
}

// ValidateInventoryTopUp checks that quantity fits under the inventory ceiling.
func (d *Directory) ValidateInventoryTopUp(username string, class models.Class, quantity uint64) []string {
	user, err := d.Get(username)
	if err != nil {
		return []string{MsgUserNotFound}
	}

	d.trading.Lock()
	defer d.trading.Unlock()
	if !user.Inventory(class).CanAdd(quantity, d.maxInventory) {
		return []string{"Inventory Limit exceeded"}
	}
	return nil
}

// AddInventory credits quantity ESOPs of the given class. Callers validate first.
func (d *Directory) AddInventory(username string, class models.Class, quantity uint64) (string, error) {
	user, err := d.Get(username)
	if err != nil {
		return "", err
	}

	d.trading.Lock()
	defer d.trading.Unlock()
	user.Inventory(class).Add(quantity)
	return fmt.Sprintf("%d %s esops added to account.", quantity, strings.ToLower(class.String())), nil
}

// BalanceInfo is a read-only wallet projection.
type BalanceInfo struct {
	Free   uint64 `json:"free"`
	Locked uint64 `json:"locked"`
}

// InventoryInfo is a read-only inventory projection.
type InventoryInfo struct {
	Type   string `json:"type"`
	Free   uint64 `json:"free"`
	Locked uint64 `json:"locked"`
}

// AccountInfo is the full account projection returned to callers.
type AccountInfo struct {
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	PhoneNumber string          `json:"phoneNumber"`
	Email       string          `json:"email"`
	Wallet      BalanceInfo     `json:"wallet"`
	Inventory   []InventoryInfo `json:"inventory"`
}

// AccountInformation returns a snapshot of the user's balances.
func (d *Directory) AccountInformation(username string) (AccountInfo, error) {
	user, err := d.Get(username)
	if err != nil {
		return AccountInfo{}, err
	}

	d.trading.Lock()
	defer d.trading.Unlock()
	return AccountInfo{
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		PhoneNumber: user.PhoneNumber,
		Email:       user.Email,
		Wallet: BalanceInfo{
			Free:   user.Wallet().Free(),
			Locked: user.Wallet().Locked(),
		},
		Inventory: []InventoryInfo{
			{
				Type:   models.Performance.String(),
				Free:   user.Inventory(models.Performance).Free(),
				Locked: user.Inventory(models.Performance).Locked(),
			},
			{
				Type:   models.NonPerformance.String(),
				Free:   user.Inventory(models.NonPerformance).Free(),
				Locked: user.Inventory(models.NonPerformance).Locked(),
			},
		},
	}, nil
}
