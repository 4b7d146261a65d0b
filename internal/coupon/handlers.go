package coupon

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/bazaarlabs/backend-bazaar/internal/common"
	dbgen "github.com/bazaarlabs/backend-bazaar/internal/db/gen"
)

// Handler exposes administrative coupon management endpoints.
type Handler struct {
	Q        dbgen.Querier
	Validate *validator.Validate
}

type couponPayload struct {
	Code         string      `json:"code" validate:"required,min=3,max=32"`
	Kind         string      `json:"kind" validate:"required"`
	Value        string      `json:"value" validate:"required"`
	MaxDiscount  *string     `json:"maxDiscount"`
	MinCartValue *string     `json:"minCartValue"`
	UsageLimit   *int32      `json:"usageLimit" validate:"omitempty,min=1"`
	PerUserLimit *int32      `json:"perUserLimit" validate:"omitempty,min=1"`
	StartsAt     *time.Time  `json:"startsAt"`
	ExpiresAt    *time.Time  `json:"expiresAt"`
	Active       *bool       `json:"active"`
	Conditions   *Conditions `json:"conditions"`
}

type statusPayload struct {
	Active bool `json:"active"`
}

// Create inserts a new coupon.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "coupon queries not configured", nil)
		return
	}
	var payload couponPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
			return
		}
	}
	params, err := buildInsertParams(payload)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	row, err := h.Q.InsertCoupon(r.Context(), params)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			common.JSONError(w, http.StatusConflict, "CONFLICT", "coupon code already exists", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to create coupon", nil)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": toView(row)})
}

// List returns coupons with offset pagination.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "coupon queries not configured", nil)
		return
	}
	limit := queryInt(r, "limit", 20, 100)
	page := queryInt(r, "page", 1, 1<<30)
	rows, err := h.Q.ListCoupons(r.Context(), dbgen.ListCouponsParams{Limit: limit, Offset: (page - 1) * limit})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to list coupons", nil)
		return
	}
	total, err := h.Q.CountCoupons(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to list coupons", nil)
		return
	}
	views := make([]couponView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toView(row))
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": views,
		"meta": map[string]any{"page": page, "limit": limit, "total": total},
	})
}

// couponFromRoute resolves the {code} path segment to a stored coupon,
// writing the error response itself when resolution fails.
func (h *Handler) couponFromRoute(w http.ResponseWriter, r *http.Request) (dbgen.Coupon, bool) {
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "code")))
	if code == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "coupon code is required", nil)
		return dbgen.Coupon{}, false
	}
	row, err := h.Q.GetCouponByCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "coupon not found", nil)
			return dbgen.Coupon{}, false
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load coupon", nil)
		return dbgen.Coupon{}, false
	}
	return row, true
}

// UpdateStatus toggles a coupon between active and inactive.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "coupon queries not configured", nil)
		return
	}
	coup, ok := h.couponFromRoute(w, r)
	if !ok {
		return
	}
	var payload statusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	status := dbgen.CouponStatusINACTIVE
	if payload.Active {
		status = dbgen.CouponStatusACTIVE
	}
	row, err := h.Q.UpdateCouponStatus(r.Context(), dbgen.UpdateCouponStatusParams{ID: coup.ID, Status: status})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "coupon not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to update coupon", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toView(row)})
}

// Delete removes a coupon. Usage ledger rows survive via ON DELETE behaviour
// defined in the schema.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "coupon queries not configured", nil)
		return
	}
	coup, ok := h.couponFromRoute(w, r)
	if !ok {
		return
	}
	if err := h.Q.DeleteCoupon(r.Context(), coup.ID); err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to delete coupon", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"deleted": true}})
}

// Stats reports aggregate usage for a coupon from the usage ledger.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "coupon queries not configured", nil)
		return
	}
	coup, ok := h.couponFromRoute(w, r)
	if !ok {
		return
	}
	stats, err := h.Q.CouponUsageStats(r.Context(), coup.ID)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load coupon stats", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{
		"uses":          stats.Uses,
		"totalDiscount": stats.TotalDiscount.StringFixed(2),
	}})
}

type couponView struct {
	ID           string      `json:"id"`
	Code         string      `json:"code"`
	Kind         string      `json:"kind"`
	Value        string      `json:"value"`
	MaxDiscount  *string     `json:"maxDiscount,omitempty"`
	MinCartValue *string     `json:"minCartValue,omitempty"`
	UsageLimit   *int32      `json:"usageLimit,omitempty"`
	PerUserLimit *int32      `json:"perUserLimit,omitempty"`
	UsedCount    int32       `json:"usedCount"`
	StartsAt     *time.Time  `json:"startsAt,omitempty"`
	ExpiresAt    *time.Time  `json:"expiresAt,omitempty"`
	Active       bool        `json:"active"`
	Conditions   *Conditions `json:"conditions,omitempty"`
}

func toView(row dbgen.Coupon) couponView {
	v := couponView{
		ID:        common.UUIDString(row.ID),
		Code:      row.Code,
		Kind:      string(row.Kind),
		Value:     row.Value.StringFixed(2),
		UsedCount: row.UsedCount,
		Active:    row.Status == dbgen.CouponStatusACTIVE,
	}
	if row.MaxDiscount.Valid {
		s := row.MaxDiscount.Decimal.StringFixed(2)
		v.MaxDiscount = &s
	}
	if row.MinCartValue.Valid {
		s := row.MinCartValue.Decimal.StringFixed(2)
		v.MinCartValue = &s
	}
	if row.UsageLimit.Valid {
		n := row.UsageLimit.Int32
		v.UsageLimit = &n
	}
	if row.PerUserLimit.Valid {
		n := row.PerUserLimit.Int32
		v.PerUserLimit = &n
	}
	if row.StartsAt.Valid {
		t := row.StartsAt.Time
		v.StartsAt = &t
	}
	if row.ExpiresAt.Valid {
		t := row.ExpiresAt.Time
		v.ExpiresAt = &t
	}
	if len(row.Conditions) > 0 && string(row.Conditions) != "{}" {
		var cond Conditions
		if err := json.Unmarshal(row.Conditions, &cond); err == nil {
			v.Conditions = &cond
		}
	}
	return v
}

func buildInsertParams(payload couponPayload) (dbgen.InsertCouponParams, error) {
	code := strings.ToUpper(strings.TrimSpace(payload.Code))
	kind := Kind(strings.TrimSpace(payload.Kind))
	switch kind {
	case KindPercentage, KindFlat, KindFreeShipping, KindCategorySpecific,
		KindProductSpecific, KindBOGO, KindBuyXGetY, KindMinCartValue:
	default:
		return dbgen.InsertCouponParams{}, errors.New("invalid kind")
	}
	value, err := decimal.NewFromString(strings.TrimSpace(payload.Value))
	if err != nil || value.IsNegative() {
		return dbgen.InsertCouponParams{}, errors.New("invalid value")
	}
	if kind == KindPercentage || kind == KindCategorySpecific || kind == KindProductSpecific {
		if value.GreaterThan(decimal.NewFromInt(100)) {
			return dbgen.InsertCouponParams{}, errors.New("percentage value cannot exceed 100")
		}
	}
	params := dbgen.InsertCouponParams{
		Code:   code,
		Kind:   dbgen.CouponKind(kind),
		Value:  value,
		Status: dbgen.CouponStatusACTIVE,
	}
	if payload.Active != nil && !*payload.Active {
		params.Status = dbgen.CouponStatusINACTIVE
	}
	if payload.MaxDiscount != nil {
		d, err := decimal.NewFromString(strings.TrimSpace(*payload.MaxDiscount))
		if err != nil || d.IsNegative() {
			return dbgen.InsertCouponParams{}, errors.New("invalid maxDiscount")
		}
		params.MaxDiscount = decimal.NullDecimal{Decimal: d, Valid: true}
	}
	if payload.MinCartValue != nil {
		d, err := decimal.NewFromString(strings.TrimSpace(*payload.MinCartValue))
		if err != nil || d.IsNegative() {
			return dbgen.InsertCouponParams{}, errors.New("invalid minCartValue")
		}
		params.MinCartValue = decimal.NullDecimal{Decimal: d, Valid: true}
	}
	if kind == KindMinCartValue && !params.MinCartValue.Valid {
		return dbgen.InsertCouponParams{}, errors.New("minCartValue is required for this kind")
	}
	if payload.UsageLimit != nil {
		params.UsageLimit = pgtype.Int4{Int32: *payload.UsageLimit, Valid: true}
	}
	if payload.PerUserLimit != nil {
		params.PerUserLimit = pgtype.Int4{Int32: *payload.PerUserLimit, Valid: true}
	}
	if payload.StartsAt != nil {
		params.StartsAt = pgtype.Timestamptz{Time: *payload.StartsAt, Valid: true}
	}
	if payload.ExpiresAt != nil {
		params.ExpiresAt = pgtype.Timestamptz{Time: *payload.ExpiresAt, Valid: true}
	}
	if payload.StartsAt != nil && payload.ExpiresAt != nil && payload.ExpiresAt.Before(*payload.StartsAt) {
		return dbgen.InsertCouponParams{}, errors.New("expiresAt must be after startsAt")
	}
	cond := Conditions{}
	if payload.Conditions != nil {
		cond = *payload.Conditions
	}
	if kind == KindBuyXGetY && cond.BuyX < 1 {
		return dbgen.InsertCouponParams{}, errors.New("conditions.buyX is required for this kind")
	}
	if kind == KindCategorySpecific && len(cond.AllowedCategories) == 0 {
		return dbgen.InsertCouponParams{}, errors.New("conditions.allowedCategories is required for this kind")
	}
	if kind == KindProductSpecific && len(cond.AllowedProducts) == 0 {
		return dbgen.InsertCouponParams{}, errors.New("conditions.allowedProducts is required for this kind")
	}
	raw, err := json.Marshal(cond)
	if err != nil {
		return dbgen.InsertCouponParams{}, err
	}
	params.Conditions = raw
	return params, nil
}

func queryInt(r *http.Request, key string, fallback, max int32) int32 {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || n < 1 {
		return fallback
	}
	if int32(n) > max {
		return max
	}
	return int32(n)
}
