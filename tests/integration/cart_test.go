//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func TestCarrito_RoundTrip(t *testing.T) {
	const cartID = "integration-cart-1"

	put := doCart(t, http.MethodPut, cartID, []cartItem{
		{ID: 1, Title: "Mochila", PrecioOriginal: 109.95, PrecioDescuento: 87.96, EnOferta: true, Quantity: 2},
	})
	put.Body.Close()
	if put.StatusCode != http.StatusNoContent {
		t.Fatalf("PUT: expected 204, got %d", put.StatusCode)
	}

	get := doCart(t, http.MethodGet, cartID, nil)
	defer get.Body.Close()
	if get.StatusCode != http.StatusOK {
		t.Fatalf("GET: expected 200, got %d", get.StatusCode)
	}

	items := decodeJSON[[]cartItem](t, get)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].ID != 1 || items[0].Quantity != 2 {
		t.Errorf("item: got id %d quantity %d, want 1 and 2", items[0].ID, items[0].Quantity)
	}
}

func TestCarrito_Clear(t *testing.T) {
	const cartID = "integration-cart-2"

	put := doCart(t, http.MethodPut, cartID, []cartItem{
		{ID: 2, Title: "Camiseta", Quantity: 1},
	})
	put.Body.Close()
	if put.StatusCode != http.StatusNoContent {
		t.Fatalf("PUT: expected 204, got %d", put.StatusCode)
	}

	del := doCart(t, http.MethodDelete, cartID, nil)
	del.Body.Close()
	if del.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE: expected 204, got %d", del.StatusCode)
	}

	get := doCart(t, http.MethodGet, cartID, nil)
	defer get.Body.Close()
	items := decodeJSON[[]cartItem](t, get)
	if len(items) != 0 {
		t.Errorf("cleared cart should be empty, got %d items", len(items))
	}
}

func TestCarrito_UnknownIsEmpty(t *testing.T) {
	get := doCart(t, http.MethodGet, "never-seen-cart", nil)
	defer get.Body.Close()

	if get.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", get.StatusCode)
	}
	items := decodeJSON[[]cartItem](t, get)
	if len(items) != 0 {
		t.Errorf("unknown cart should read empty, got %d items", len(items))
	}
}

func TestCarrito_Isolation(t *testing.T) {
	putA := doCart(t, http.MethodPut, "cart-a", []cartItem{{ID: 1, Quantity: 1}})
	putA.Body.Close()
	if putA.StatusCode != http.StatusNoContent {
		t.Fatalf("PUT cart-a: expected 204, got %d", putA.StatusCode)
	}

	getB := doCart(t, http.MethodGet, "cart-b", nil)
	defer getB.Body.Close()
	items := decodeJSON[[]cartItem](t, getB)
	if len(items) != 0 {
		t.Errorf("cart-b should be empty, got %d items", len(items))
	}
}

func TestCarrito_MissingHeader(t *testing.T) {
	resp := doGet(t, "/carrito")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
