package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tiendaverde/storefront/internal/domain/purchase"
)

type lineItemRequest struct {
	ID       int64   `json:"id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Comprar records a purchase from the submitted line items and responds
// with the assigned purchase id.
func (h *Handler) Comprar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var items []lineItemRequest
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	lineItems := make([]purchase.LineItem, len(items))
	for i, item := range items {
		lineItems[i] = purchase.LineItem{
			ID:       item.ID,
			Quantity: item.Quantity,
			Price:    decimal.NewFromFloat(item.Price),
		}
	}

	p, err := h.purchases.Record(ctx, lineItems)
	if err != nil {
		h.comprarError(w, r, err)
		return
	}

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("message")
	e.Str("Compra realizada con éxito")
	e.FieldStart("idCompra")
	e.Int64(p.ID)
	e.ObjEnd()

	writeJSON(w, http.StatusOK, e.Bytes())
}

// comprarError maps domain errors to HTTP statuses. Validation problems get
// 400/422; everything else stays a plain-text 500 per the original protocol.
func (h *Handler) comprarError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, purchase.ErrEmptyItems) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var (
		iqErr *purchase.InvalidQuantityError
		upErr *purchase.UnknownProductError
	)
	switch {
	case errors.As(err, &iqErr), errors.As(err, &upErr), errors.Is(err, purchase.ErrNegativePrice):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	zctx.From(r.Context()).Error("Purchase failed", zap.Error(err))
	http.Error(w, "Error en el servidor al procesar la compra", http.StatusInternalServerError)
}
