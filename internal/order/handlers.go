// Package order exposes the customer-facing order read endpoints and the
// identifiers new orders are stamped with.
package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/bazaarlabs/backend-bazaar/internal/common"
	dbgen "github.com/bazaarlabs/backend-bazaar/internal/db/gen"
	"github.com/bazaarlabs/backend-bazaar/internal/events"
	"github.com/bazaarlabs/backend-bazaar/internal/obs"
)

type Handler struct {
	Q      *dbgen.Queries
	Events *events.Bus
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order queries not configured", nil)
		return
	}
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	page, perPage := common.ParsePagination(r, 20)
	if perPage > 100 {
		perPage = 100
	}
	offset := int32((page - 1) * perPage)
	uID, err := common.ToPgUUID(userID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid user id", nil)
		return
	}
	total, err := h.Q.CountOrdersForUser(r.Context(), uID)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to count orders", nil)
		return
	}
	orders, err := h.Q.ListOrdersForUser(r.Context(), dbgen.ListOrdersForUserParams{UserID: uID, Limit: int32(perPage), Offset: offset})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to list orders", nil)
		return
	}
	response := make([]map[string]any, 0, len(orders))
	for _, ord := range orders {
		response = append(response, summaryView(ord))
	}
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	common.JSON(w, http.StatusOK, map[string]any{
		"data": response,
		"pagination": common.Pagination{
			Page:       page,
			PerPage:    perPage,
			TotalItems: int(total),
		},
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order queries not configured", nil)
		return
	}
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	oID, err := common.ToPgUUID(chi.URLParam(r, "orderId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid order id", nil)
		return
	}
	uID, err := common.ToPgUUID(userID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid user id", nil)
		return
	}
	ord, err := h.Q.GetOrderByIDForUser(r.Context(), dbgen.GetOrderByIDForUserParams{ID: oID, UserID: uID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load order", nil)
		return
	}
	items, err := h.Q.ListOrderItemsByOrder(r.Context(), ord.ID)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load order items", nil)
		return
	}
	responseItems := make([]map[string]any, 0, len(items))
	for _, it := range items {
		responseItems = append(responseItems, map[string]any{
			"id":                common.UUIDString(it.ID),
			"productId":         common.UUIDString(it.ProductID),
			"selectedVariantId": nullableText(it.VariantID),
			"title":             it.Title,
			"sku":               nullableText(it.Sku),
			"imageUrl":          nullableText(it.ImageUrl),
			"qty":               it.Qty,
			"unitPrice":         it.UnitPrice.StringFixed(2),
			"base":              it.BaseAmount.StringFixed(2),
			"tax":               it.TaxAmount.StringFixed(2),
			"cgst":              it.CgstAmount.StringFixed(2),
			"sgst":              it.SgstAmount.StringFixed(2),
			"total":             it.FinalAmount.StringFixed(2),
		})
	}
	detail := summaryView(ord)
	detail["items"] = responseItems
	detail["shippingAddress"] = jsonValue(ord.ShippingAddress)
	common.JSON(w, http.StatusOK, map[string]any{"data": detail})
}

// Cancel voids an order that has not been paid yet. The status guard lives
// in the UPDATE statement so two racing cancels cannot both succeed.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order queries not configured", nil)
		return
	}
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	oID, err := common.ToPgUUID(chi.URLParam(r, "orderId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid order id", nil)
		return
	}
	uID, err := common.ToPgUUID(userID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid user id", nil)
		return
	}
	ord, err := h.Q.CancelOrder(r.Context(), dbgen.CancelOrderParams{ID: oID, UserID: uID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusConflict, "INVALID_STATE", "order cannot be canceled", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to cancel order", nil)
		return
	}
	if obs.OrderCanceledTotal != nil {
		obs.OrderCanceledTotal.Inc()
	}
	if h.Events != nil {
		_, _ = h.Events.Emit(r.Context(), events.TopicOrderCanceled, ord.ID, map[string]any{
			"orderId":     common.UUIDString(ord.ID),
			"orderNumber": ord.OrderNumber,
			"userId":      userID,
		})
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"status": string(ord.Status)}})
}

func summaryView(ord dbgen.Order) map[string]any {
	return map[string]any{
		"id":             common.UUIDString(ord.ID),
		"orderNumber":    ord.OrderNumber,
		"trackingId":     ord.TrackingID,
		"status":         ord.Status,
		"paymentMethod":  ord.PaymentMethod,
		"currency":       ord.Currency,
		"couponCode":     nullableText(ord.CouponCode),
		"subtotal":       ord.Subtotal.StringFixed(2),
		"totalTax":       ord.TotalTax.StringFixed(2),
		"totalCgst":      ord.TotalCgst.StringFixed(2),
		"totalSgst":      ord.TotalSgst.StringFixed(2),
		"deliveryCharge": ord.DeliveryCharge.StringFixed(2),
		"platformFee":    ord.PlatformFee.StringFixed(2),
		"couponDiscount": ord.CouponDiscount.StringFixed(2),
		"grandTotal":     ord.GrandTotal.StringFixed(2),
		"createdAt":      ord.CreatedAt,
	}
}

func nullableText(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

func jsonValue(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	clone := make([]byte, len(b))
	copy(clone, b)
	return json.RawMessage(clone)
}
