package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
)

// Seed a running server with demo users, balances and a few crossing
// orders so the book has something to show.
func main() {
	base := flag.String("addr", "http://localhost:8080", "server base URL")
	flag.Parse()

	traders := []map[string]string{
		{
			"firstName":   "Priya",
			"lastName":    "Sharma",
			"phoneNumber": "+919876543210",
			"email":       "priya@example.com",
			"username":    "priya",
		},
		{
			"firstName":   "Rahul",
			"lastName":    "Verma",
			"phoneNumber": "+919876543211",
			"email":       "rahul@example.com",
			"username":    "rahul",
		},
	}

	for _, t := range traders {
		if err := post(*base+"/user/register", t); err != nil {
			log.Fatalf("Failed to register %s: %v", t["username"], err)
		}
	}

	// Buyer funds and seller inventory
	if err := post(*base+"/user/priya/wallet", map[string]uint64{"amount": 10_000}); err != nil {
		log.Fatalf("Failed to add funds: %v", err)
	}
	if err := post(*base+"/user/rahul/inventory", map[string]interface{}{
		"quantity": 500,
		"esopType": "NON_PERFORMANCE",
	}); err != nil {
		log.Fatalf("Failed to add inventory: %v", err)
	}
	if err := post(*base+"/user/rahul/inventory", map[string]interface{}{
		"quantity": 100,
		"esopType": "PERFORMANCE",
	}); err != nil {
		log.Fatalf("Failed to add inventory: %v", err)
	}

	orders := []struct {
		user string
		body map[string]interface{}
	}{
		{"rahul", map[string]interface{}{"type": "SELL", "quantity": 50, "price": 20, "esopType": "NON_PERFORMANCE"}},
		{"rahul", map[string]interface{}{"type": "SELL", "quantity": 20, "price": 19, "esopType": "PERFORMANCE"}},
		{"priya", map[string]interface{}{"type": "BUY", "quantity": 30, "price": 20}},
	}
	for _, o := range orders {
		if err := post(fmt.Sprintf("%s/user/%s/order", *base, o.user), o.body); err != nil {
			log.Fatalf("Failed to place order for %s: %v", o.user, err)
		}
	}

	fmt.Println("Seeded 2 users and 3 orders.")
}

func post(url string, body interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var e struct {
			Errors []string `json:"errors"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return fmt.Errorf("%s: %v", resp.Status, e.Errors)
	}
	return nil
}
