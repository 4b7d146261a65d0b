package catalog

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bazaarlabs/backend-bazaar/internal/common"
)

// Handler exposes public catalog endpoints.
type Handler struct {
	Service *Service
}

// Product handles GET /api/v1/products/{id} returning the pricing snapshot
// clients render before checkout.
func (h *Handler) Product(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	id, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, "id")))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid product id", nil)
		return
	}
	snaps, err := h.Service.Snapshots(r.Context(), []uuid.UUID{id})
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load product", nil)
		return
	}
	snap := snaps[id]
	common.JSON(w, http.StatusOK, map[string]any{"data": productView(snap)})
}

type productResponse struct {
	ID         string  `json:"id"`
	CategoryID *string `json:"categoryId,omitempty"`
	Title      string  `json:"title"`
	Slug       string  `json:"slug"`
	SKU        string  `json:"sku,omitempty"`
	ImageURL   string  `json:"imageUrl,omitempty"`
	UnitPrice  string  `json:"unitPrice"`
	PriceMode  string  `json:"priceMode"`
}

func productView(snap Snapshot) productResponse {
	resp := productResponse{
		ID:        snap.ID.String(),
		Title:     snap.Title,
		Slug:      snap.Slug,
		SKU:       snap.SKU,
		ImageURL:  snap.ImageURL,
		UnitPrice: snap.UnitPrice.StringFixed(2),
		PriceMode: snap.PriceMode,
	}
	if snap.CategoryID != nil {
		s := snap.CategoryID.String()
		resp.CategoryID = &s
	}
	return resp
}
