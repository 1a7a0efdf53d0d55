//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"
)

// firstCustomerID looks up a seeded customer to place orders against.
func firstCustomerID(t *testing.T) int64 {
	t.Helper()

	resp := doGet(t, "/api/customer")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list customers: expected 200, got %d", resp.StatusCode)
	}

	customers := decodeJSON[[]customerResponse](t, resp)
	if len(customers) == 0 {
		t.Fatal("no seeded customers")
	}

	return customers[0].ID
}

func TestPlaceOrder(t *testing.T) {
	customerID := firstCustomerID(t)

	resp := doPost(t, "/api/order", orderRequest{
		CustomerID: customerID,
		Lines: []orderLineRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	order := decodeJSON[orderResponse](t, resp)
	if order.ID <= 0 {
		t.Errorf("id: got %d, want > 0", order.ID)
	}
	if order.CustomerID != customerID {
		t.Errorf("customer_id: got %d, want %d", order.CustomerID, customerID)
	}
	if order.Quantity != 3 {
		t.Errorf("quantity: got %d, want 3", order.Quantity)
	}
	if len(order.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(order.Lines))
	}
	if order.Total <= 0 {
		t.Errorf("total: got %v, want > 0", order.Total)
	}
	if order.CreatedAt.IsZero() {
		t.Error("created_at is zero")
	}

	// Each line carries the unit price charged when the order was placed.
	var sum float64
	for _, line := range order.Lines {
		if line.UnitPrice <= 0 {
			t.Errorf("line %d unit_price: got %v, want > 0", line.ProductID, line.UnitPrice)
		}
		sum += line.UnitPrice * float64(line.Quantity)
	}
	if diff := order.Total - sum; diff > 0.01 || diff < -0.01 {
		t.Errorf("total %v does not match line sum %v", order.Total, sum)
	}
}

func TestPlaceOrder_ThenGet(t *testing.T) {
	customerID := firstCustomerID(t)

	resp := doPost(t, "/api/order", orderRequest{
		CustomerID: customerID,
		Lines:      []orderLineRequest{{ProductID: 3, Quantity: 1}},
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	placed := decodeJSON[orderResponse](t, resp)

	got := doGet(t, fmt.Sprintf("/api/order/%d", placed.ID))
	defer got.Body.Close()

	if got.StatusCode != http.StatusOK {
		t.Fatalf("get order: expected 200, got %d", got.StatusCode)
	}

	fetched := decodeJSON[orderResponse](t, got)
	if fetched.Total != placed.Total {
		t.Errorf("total: got %v, want %v", fetched.Total, placed.Total)
	}
	if len(fetched.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(fetched.Lines))
	}
}

func TestPlaceOrder_EmptyLines(t *testing.T) {
	resp := doPost(t, "/api/order", orderRequest{
		CustomerID: firstCustomerID(t),
		Lines:      []orderLineRequest{},
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestPlaceOrder_UnknownCustomer(t *testing.T) {
	resp := doPost(t, "/api/order", orderRequest{
		CustomerID: 99999,
		Lines:      []orderLineRequest{{ProductID: 1, Quantity: 1}},
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	resp := doPost(t, "/api/order", orderRequest{
		CustomerID: firstCustomerID(t),
		Lines:      []orderLineRequest{{ProductID: 99999, Quantity: 1}},
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestPlaceOrder_ZeroQuantity(t *testing.T) {
	resp := doPost(t, "/api/order", orderRequest{
		CustomerID: firstCustomerID(t),
		Lines:      []orderLineRequest{{ProductID: 1, Quantity: 0}},
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestReplaceOrder(t *testing.T) {
	customerID := firstCustomerID(t)

	resp := doPost(t, "/api/order", orderRequest{
		CustomerID: customerID,
		Lines:      []orderLineRequest{{ProductID: 1, Quantity: 1}},
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("place order: expected 200, got %d", resp.StatusCode)
	}
	placed := decodeJSON[orderResponse](t, resp)

	put := doPut(t, fmt.Sprintf("/api/order/%d", placed.ID), orderRequest{
		CustomerID: customerID,
		Lines:      []orderLineRequest{{ProductID: 2, Quantity: 4}},
	})
	defer put.Body.Close()

	if put.StatusCode != http.StatusOK {
		t.Fatalf("replace order: expected 200, got %d", put.StatusCode)
	}

	replaced := decodeJSON[orderResponse](t, put)
	if replaced.ID != placed.ID {
		t.Errorf("id: got %d, want %d", replaced.ID, placed.ID)
	}
	if replaced.Quantity != 4 {
		t.Errorf("quantity: got %d, want 4", replaced.Quantity)
	}
	if len(replaced.Lines) != 1 || replaced.Lines[0].ProductID != 2 {
		t.Fatalf("lines not replaced: %+v", replaced.Lines)
	}
}

func TestDeleteOrder(t *testing.T) {
	resp := doPost(t, "/api/order", orderRequest{
		CustomerID: firstCustomerID(t),
		Lines:      []orderLineRequest{{ProductID: 1, Quantity: 1}},
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("place order: expected 200, got %d", resp.StatusCode)
	}
	placed := decodeJSON[orderResponse](t, resp)

	del := doDelete(t, fmt.Sprintf("/api/order/%d", placed.ID))
	del.Body.Close()
	if del.StatusCode != http.StatusOK {
		t.Fatalf("delete order: expected 200, got %d", del.StatusCode)
	}

	got := doGet(t, fmt.Sprintf("/api/order/%d", placed.ID))
	defer got.Body.Close()
	if got.StatusCode != http.StatusNotFound {
		t.Fatalf("get deleted order: expected 404, got %d", got.StatusCode)
	}
}
