package models

// User aggregates one wallet and the two per-class inventories, plus the
// ids of every order the user has placed. History holds ids rather than
// order pointers; current order state is looked up through the book.
type User struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
	Username    string

	wallet         *Wallet
	performance    *Inventory
	nonPerformance *Inventory
	orderIDs       []uint64
}

func NewUser(firstName, lastName, phoneNumber, email, username string) *User {
	return &User{
		FirstName:      firstName,
		LastName:       lastName,
		PhoneNumber:    phoneNumber,
		Email:          email,
		Username:       username,
		wallet:         &Wallet{},
		performance:    NewInventory(Performance),
		nonPerformance: NewInventory(NonPerformance),
	}
}

func (u *User) Wallet() *Wallet {
	return u.wallet
}

// Inventory returns the ledger for the given class. Asking for ClassNone
// is a programming error.
func (u *User) Inventory(class Class) *Inventory {
	switch class {
	case Performance:
		return u.performance
	case NonPerformance:
		return u.nonPerformance
	}
	panic("user: no inventory for class NONE")
}

// RecordOrder appends an order id to the user's history.
func (u *User) RecordOrder(id uint64) {
	u.orderIDs = append(u.orderIDs, id)
}

// OrderIDs returns the user's order ids in placement order.
func (u *User) OrderIDs() []uint64 {
	ids := make([]uint64, len(u.orderIDs))
	copy(ids, u.orderIDs)
	return ids
}
