package handler

import (
	"net/http"

	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/tiendaverde/storefront/internal/domain/catalog"
)

// ProductosConOfertas serves the enriched catalog as a JSON array, in feed
// order. Any pipeline failure is a plain-text 500, matching the original
// protocol.
func (h *Handler) ProductosConOfertas(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.catalog.Enrich(ctx)
	if err != nil {
		zctx.From(ctx).Error("Catalog enrichment failed", zap.Error(err))
		http.Error(w, "Error en el servidor al procesar productos", http.StatusInternalServerError)
		return
	}

	var e jx.Encoder
	e.ArrStart()
	for i := range products {
		encodeEnrichedProduct(&e, &products[i])
	}
	e.ArrEnd()

	writeJSON(w, http.StatusOK, e.Bytes())
}

func encodeEnrichedProduct(e *jx.Encoder, p *catalog.EnrichedProduct) {
	e.ObjStart()
	e.FieldStart("id")
	e.Int64(p.ID)
	e.FieldStart("title")
	e.Str(p.Title)
	e.FieldStart("description")
	e.Str(p.Description)
	e.FieldStart("category")
	e.Str(p.Category)
	e.FieldStart("price")
	e.Float64(p.Price.InexactFloat64())
	e.FieldStart("image")
	e.Str(p.Image)
	e.FieldStart("precioOriginal")
	e.Float64(p.PrecioOriginal.InexactFloat64())
	e.FieldStart("precioDescuento")
	e.Float64(p.PrecioDescuento.InexactFloat64())
	e.FieldStart("enOferta")
	e.Bool(p.EnOferta)
	e.ObjEnd()
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
