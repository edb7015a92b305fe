package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Checkout load generator: floods POST /api/orders for a single item and
// verifies that exactly initialStock orders succeed and the item ends at
// zero inventory.
const (
	baseURL       = "http://localhost:8080"
	initialStock  = 20
	totalRequests = 50
)

func main() {
	client := &http.Client{Timeout: 10 * time.Second}

	// Setup: an admin to stock the shelf, a customer to buy it out
	adminToken := register(client, "loadgen-admin", "admin")
	customerToken := register(client, "loadgen-customer", "customer")

	itemID := createItem(client, adminToken, initialStock)
	log.Printf("created item %d with inventory %d", itemID, initialStock)

	var successCount atomic.Int32
	var failCount atomic.Int32

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			body, _ := json.Marshal(map[string]interface{}{
				"request_id": uuid.NewString(),
				"items":      []map[string]int64{{"itemId": itemID, "quantity": 1}},
			})
			resp, err := doJSON(client, http.MethodPost, "/api/orders", customerToken, body)
			if err == nil && resp == http.StatusCreated {
				successCount.Add(1)
			} else {
				failCount.Add(1)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	success := successCount.Load()
	fail := failCount.Load()

	fmt.Println("========== CHECKOUT LOAD RESULTS ==========")
	fmt.Printf("Initial Stock:    %d\n", initialStock)
	fmt.Printf("Total Requests:   %d\n", totalRequests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("===========================================")

	if success == int32(initialStock) && fail == int32(totalRequests-initialStock) {
		fmt.Printf("PASS: Exactly %d orders succeeded, %d failed\n", initialStock, totalRequests-initialStock)
	} else {
		fmt.Printf("FAIL: Expected %d success/%d fail, got %d/%d\n",
			initialStock, totalRequests-initialStock, success, fail)
	}

	final := fetchInventory(client, itemID)
	fmt.Printf("Final Inventory:  %d\n", final)
	if final == 0 {
		fmt.Println("PASS: Inventory depleted to 0")
	} else {
		fmt.Printf("FAIL: Expected inventory 0, got %d\n", final)
	}
}

func register(client *http.Client, prefix, role string) string {
	body, _ := json.Marshal(map[string]string{
		"name":     prefix,
		"email":    fmt.Sprintf("%s-%s@example.com", prefix, uuid.NewString()[:8]),
		"password": "loadgen-password",
		"role":     role,
	})
	resp, err := client.Post(baseURL+"/api/auth/register", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("register %s: %v", prefix, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("register %s: unexpected status %d", prefix, resp.StatusCode)
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Fatalf("decode register response: %v", err)
	}
	return out.Token
}

func createItem(client *http.Client, token string, inventory int) int64 {
	body, _ := json.Marshal(map[string]interface{}{
		"name":      "loadgen-item",
		"price":     1.50,
		"inventory": inventory,
	})
	req, _ := http.NewRequest(http.MethodPost, baseURL+"/api/groceries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("create item: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("create item: unexpected status %d", resp.StatusCode)
	}

	var out struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Fatalf("decode item response: %v", err)
	}
	return out.ID
}

func fetchInventory(client *http.Client, itemID int64) int {
	resp, err := client.Get(fmt.Sprintf("%s/api/groceries/%d", baseURL, itemID))
	if err != nil {
		log.Fatalf("fetch item: %v", err)
	}
	defer resp.Body.Close()

	var out struct {
		Inventory int `json:"inventory"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Fatalf("decode item: %v", err)
	}
	return out.Inventory
}

func doJSON(client *http.Client, method, path, token string, body []byte) (int, error) {
	req, err := http.NewRequest(method, baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
