package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Side is the direction of an order.
type Side uint8

const (
	SideUnknown Side = iota
	Buy
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	}
	return "UNKNOWN"
}

func (s Side) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ParseSide accepts BUY or SELL, case-insensitively.
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(s) {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	}
	return SideUnknown, fmt.Errorf("invalid order side %q", s)
}

// Class is the ESOP inventory category. Performance equity ranks ahead of
// non-performance in sell-side matching and its sale is fee-exempt.
type Class uint8

const (
	ClassNone Class = iota
	Performance
	NonPerformance
)

func (c Class) String() string {
	switch c {
	case Performance:
		return "PERFORMANCE"
	case NonPerformance:
		return "NON_PERFORMANCE"
	}
	return "NONE"
}

func (c Class) MarshalJSON() ([]byte, error) {
	if c == ClassNone {
		return json.Marshal(nil)
	}
	return json.Marshal(c.String())
}

// Priority returns the sell-side matching rank: lower matches first.
func (c Class) Priority() int {
	switch c {
	case Performance:
		return 1
	case NonPerformance:
		return 2
	}
	return 0
}

func ParseClass(s string) (Class, error) {
	switch strings.ToUpper(s) {
	case "PERFORMANCE":
		return Performance, nil
	case "NON_PERFORMANCE":
		return NonPerformance, nil
	}
	return ClassNone, fmt.Errorf("invalid esop class %q", s)
}

// Status is the fill state of an order, derived from its remaining quantity.
type Status uint8

const (
	Pending Status = iota
	Partial
	Completed
)

func (s Status) String() string {
	switch s {
	case Partial:
		return "PARTIAL"
	case Completed:
		return "COMPLETED"
	}
	return "PENDING"
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
