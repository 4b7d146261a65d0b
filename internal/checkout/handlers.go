package checkout

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/bazaarlabs/backend-bazaar/internal/common"
	"github.com/bazaarlabs/backend-bazaar/internal/obs"
	"github.com/bazaarlabs/backend-bazaar/internal/preview"
)

type Handler struct {
	Svc *Service
}

// Preview handles POST /api/v1/checkout/preview. Works for guests too;
// the user id only tightens coupon guards when present.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	var payload PreviewInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	var userID *string
	if id, ok := common.UserID(r.Context()); ok && id != "" {
		userID = &id
	}
	started := time.Now()
	out, err := h.Svc.Preview(r.Context(), userID, payload)
	if obs.CheckoutPreviewLatency != nil {
		obs.CheckoutPreviewLatency.Observe(float64(time.Since(started).Milliseconds()))
	}
	if err != nil {
		observePreview("error")
		h.writeError(w, err)
		return
	}
	observePreview("ok")
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

// Commit handles POST /api/v1/checkout.
func (h *Handler) Commit(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	var payload CommitInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	out, err := h.Svc.Commit(r.Context(), userID, payload)
	if err != nil {
		observeCommit(commitResult(err))
		h.writeError(w, err)
		return
	}
	observeCommit("ok")
	common.JSON(w, http.StatusCreated, map[string]any{"data": out})
}

func commitResult(err error) string {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(appErr.Err, preview.ErrPriceTampered):
			return "tampered"
		case errors.Is(appErr.Err, preview.ErrPreviewExpired):
			return "expired"
		}
	}
	return "error"
}

func observePreview(result string) {
	if obs.CheckoutPreviewTotal != nil {
		obs.CheckoutPreviewTotal.WithLabelValues(result).Inc()
	}
}

func observeCommit(result string) {
	if obs.CheckoutCommitTotal != nil {
		obs.CheckoutCommitTotal.WithLabelValues(result).Inc()
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if err == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unknown error", nil)
		return
	}
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusBadRequest
		}
		code := appErr.Code
		if code == "" {
			code = "BAD_REQUEST"
		}
		common.JSONError(w, status, code, appErr.Message, appErr.Details)
		return
	}
	common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout failed", nil)
}
