package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/tiendaverde/storefront/internal/cart"
)

// cartIDHeader carries the opaque cart identifier chosen by the client.
const cartIDHeader = "X-Cart-ID"

// GetCarrito returns the stored cart. An unknown or expired cart is an
// empty array, matching the local-storage behaviour the client expects.
func (h *Handler) GetCarrito(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	items, err := h.carts.Get(r.Context(), cartID)
	if err != nil && !errors.Is(err, cart.ErrNotFound) {
		zctx.From(r.Context()).Error("Cart lookup failed", zap.Error(err))
		http.Error(w, "Error en el servidor al procesar el carrito", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []cart.Item{}
	}

	body, err := json.Marshal(items)
	if err != nil {
		http.Error(w, "Error en el servidor al procesar el carrito", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

// PutCarrito replaces the stored cart with the submitted items.
func (h *Handler) PutCarrito(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	var items []cart.Item
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			http.Error(w, "quantity must be greater than 0", http.StatusUnprocessableEntity)
			return
		}
	}

	if err := h.carts.Set(r.Context(), cartID, items); err != nil {
		zctx.From(r.Context()).Error("Cart update failed", zap.Error(err))
		http.Error(w, "Error en el servidor al procesar el carrito", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteCarrito clears the stored cart.
func (h *Handler) DeleteCarrito(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	if err := h.carts.Clear(r.Context(), cartID); err != nil {
		zctx.From(r.Context()).Error("Cart clear failed", zap.Error(err))
		http.Error(w, "Error en el servidor al procesar el carrito", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) cartID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get(cartIDHeader)
	if id == "" || len(id) > 128 {
		http.Error(w, "missing or invalid "+cartIDHeader+" header", http.StatusBadRequest)
		return "", false
	}
	return id, true
}
