package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/freshly-yours/marketplace/internal/market/core/domain/entity"
	"github.com/freshly-yours/marketplace/internal/market/core/ports"
)

func productInput(req ProductRequest) ports.ProductInput {
	return ports.ProductInput{
		Name:           req.Name,
		Price:          req.Price,
		Stock:          req.Stock,
		Category:       req.Category,
		Description:    req.Description,
		DeliveryRadius: req.DeliveryRadius,
		Image:          req.Image,
	}
}

// AddProduct creates a listing for the calling supplier.
func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	supplier, ok := actor(w, r)
	if !ok {
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	product, err := h.catalog.AddProduct(r.Context(), supplier, productInput(req))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, ProductResponse{
		Message: "Product added successfully",
		Product: product,
	})
}

// ListOwnProducts returns the calling supplier's active listings.
func (h *Handler) ListOwnProducts(w http.ResponseWriter, r *http.Request) {
	supplier, ok := actor(w, r)
	if !ok {
		return
	}

	products, err := h.catalog.ListOwn(r.Context(), supplier)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if products == nil {
		products = []entity.Product{}
	}

	writeJSON(w, http.StatusOK, ProductListResponse{Success: true, Products: products})
}

// UpdateProduct rewrites a listing the calling supplier owns.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	supplier, ok := actor(w, r)
	if !ok {
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), supplier, chi.URLParam(r, "id"), productInput(req))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ProductResponse{
		Message: "Product updated successfully",
		Product: product,
	})
}

// RemoveProduct soft-deletes a listing the calling supplier owns.
func (h *Handler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	supplier, ok := actor(w, r)
	if !ok {
		return
	}

	if err := h.catalog.RemoveProduct(r.Context(), supplier, chi.URLParam(r, "id")); err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

// BrowseProducts is the vendor-facing listing across all suppliers.
func (h *Handler) BrowseProducts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	products, err := h.catalog.Browse(r.Context(), ports.BrowseQuery{
		Search: r.URL.Query().Get("search"),
		Limit:  limit,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if products == nil {
		products = []entity.ProductView{}
	}

	writeJSON(w, http.StatusOK, BrowseResponse{
		Success:  true,
		Products: products,
		Total:    len(products),
	})
}
