// Package handler exposes the HTTP surface of the storefront. The protocol
// mirrors the original server: GET /productos-con-ofertas and POST /comprar
// with plain-text 500s on pipeline failure, plus the cart endpoints.
package handler

import (
	"net/http"

	"github.com/tiendaverde/storefront/internal/cart"
	"github.com/tiendaverde/storefront/internal/domain/catalog"
	"github.com/tiendaverde/storefront/internal/domain/purchase"
)

// Handler wires the HTTP routes to the domain services.
type Handler struct {
	catalog   *catalog.Service
	purchases *purchase.Service
	carts     cart.Store
}

// New constructs a Handler. carts may be nil, in which case the cart
// endpoints are not registered.
func New(catalogSvc *catalog.Service, purchaseSvc *purchase.Service, carts cart.Store) *Handler {
	return &Handler{
		catalog:   catalogSvc,
		purchases: purchaseSvc,
		carts:     carts,
	}
}

// Register adds all routes to the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /productos-con-ofertas", h.ProductosConOfertas)
	mux.HandleFunc("POST /comprar", h.Comprar)

	if h.carts != nil {
		mux.HandleFunc("GET /carrito", h.GetCarrito)
		mux.HandleFunc("PUT /carrito", h.PutCarrito)
		mux.HandleFunc("DELETE /carrito", h.DeleteCarrito)
	}
}
