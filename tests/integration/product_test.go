//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestListProducts(t *testing.T) {
	resp := doGet(t, "/api/product")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	products := decodeJSON[[]productResponse](t, resp)
	if len(products) != 8 {
		t.Fatalf("expected 8 products, got %d", len(products))
	}
}

func TestListProducts_Fields(t *testing.T) {
	resp := doGet(t, "/api/product")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	products := decodeJSON[[]productResponse](t, resp)

	var mouse *productResponse
	for i := range products {
		if products[i].Name == "Wireless Mouse" {
			mouse = &products[i]
			break
		}
	}

	if mouse == nil {
		t.Fatal("product \"Wireless Mouse\" not found")
	}
	if mouse.ID <= 0 {
		t.Errorf("id: got %d, want > 0", mouse.ID)
	}
	if mouse.ListPrice != 29.99 {
		t.Errorf("list_price: got %v, want 29.99", mouse.ListPrice)
	}
	if mouse.Price <= 0 || mouse.Price > mouse.ListPrice {
		t.Errorf("price: got %v, want in (0, %v]", mouse.Price, mouse.ListPrice)
	}
	if mouse.Stock != 340 {
		t.Errorf("stock: got %d, want 340", mouse.Stock)
	}
}

func TestGetProduct(t *testing.T) {
	resp := doGet(t, "/api/product/1")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	product := decodeJSON[productResponse](t, resp)
	if product.ID != 1 {
		t.Errorf("id: got %d, want 1", product.ID)
	}
	if product.Name == "" {
		t.Error("name is empty")
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	resp := doGet(t, "/api/product/99999")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	errResp := decodeJSON[errorResponse](t, resp)
	if errResp.Code != 404 {
		t.Errorf("error code: got %d, want 404", errResp.Code)
	}
}

func TestCreateProduct(t *testing.T) {
	resp := doPost(t, "/api/product", productRequest{
		Name:  "Integration Test Widget",
		Price: 42.00,
		Stock: 10,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	created := decodeJSON[productResponse](t, resp)
	if created.ID <= 0 {
		t.Fatalf("id: got %d, want > 0", created.ID)
	}
	if created.ListPrice != 42.00 {
		t.Errorf("list_price: got %v, want 42", created.ListPrice)
	}

	// Clean up so the catalog count stays stable for other tests.
	del := doDelete(t, fmt.Sprintf("/api/product/%d", created.ID))
	del.Body.Close()
	if del.StatusCode != http.StatusOK {
		t.Fatalf("cleanup delete: expected 200, got %d", del.StatusCode)
	}
}

func TestCreateProduct_NameTooShort(t *testing.T) {
	resp := doPost(t, "/api/product", productRequest{
		Name:  "ab",
		Price: 5.00,
		Stock: 1,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	resp := doPut(t, "/api/product/99999", productRequest{
		Name:  "Ghost Product",
		Price: 1.00,
		Stock: 1,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
