// Package checkout implements the two-step order flow: a server-priced,
// HMAC-signed preview, then a commit that persists the previewed numbers
// verbatim once the signature proves nothing was altered in between.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bazaarlabs/backend-bazaar/internal/catalog"
	"github.com/bazaarlabs/backend-bazaar/internal/common"
	"github.com/bazaarlabs/backend-bazaar/internal/coupon"
	dbgen "github.com/bazaarlabs/backend-bazaar/internal/db/gen"
	"github.com/bazaarlabs/backend-bazaar/internal/events"
	"github.com/bazaarlabs/backend-bazaar/internal/order"
	"github.com/bazaarlabs/backend-bazaar/internal/preview"
	"github.com/bazaarlabs/backend-bazaar/internal/pricing"
	"github.com/bazaarlabs/backend-bazaar/internal/tax"
)

// Service orchestrates preview pricing and order commit.
type Service struct {
	Q              *dbgen.Queries
	Pool           *pgxpool.Pool
	Catalog        *catalog.Service
	Coupons        *coupon.Service
	Signer         *preview.Signer
	Fees           pricing.FeePolicy
	DefaultTaxRate decimal.Decimal
	Currency       string
	Events         *events.Bus
	Log            zerolog.Logger
	Now            func() time.Time
}

// Preview prices the cart from authoritative snapshots, applies the coupon
// when it qualifies and returns the signed summary. A coupon that fails a
// guard never fails the preview, it only zeroes the discount.
func (s *Service) Preview(ctx context.Context, userID *string, in PreviewInput) (PreviewOutput, error) {
	if s == nil || s.Catalog == nil || s.Signer == nil {
		return PreviewOutput{}, errors.New("checkout service not configured")
	}
	if len(in.Items) == 0 {
		return PreviewOutput{}, common.NewAppError("EMPTY_CART", "cart has no items", http.StatusBadRequest, nil)
	}
	method := pricing.ParsePaymentMethod(in.PaymentMethod)

	ids := make([]uuid.UUID, 0, len(in.Items))
	qtyByID := make(map[uuid.UUID]int32, len(in.Items))
	variantByID := make(map[uuid.UUID]string, len(in.Items))
	for _, it := range in.Items {
		id, err := uuid.Parse(strings.TrimSpace(it.ProductID))
		if err != nil {
			return PreviewOutput{}, common.NewAppError("BAD_REQUEST", "invalid product id", http.StatusBadRequest, err)
		}
		if it.Qty < 1 {
			return PreviewOutput{}, common.NewAppError("BAD_REQUEST", "qty must be at least 1", http.StatusBadRequest, nil)
		}
		if _, ok := qtyByID[id]; !ok {
			ids = append(ids, id)
		}
		qtyByID[id] += it.Qty
		if v := strings.TrimSpace(it.SelectedVariantID); v != "" {
			variantByID[id] = v
		}
	}

	snaps, err := s.Catalog.Snapshots(ctx, ids)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return PreviewOutput{}, common.NewAppError("NOT_FOUND", "one or more products are unavailable", http.StatusNotFound, err)
		}
		return PreviewOutput{}, err
	}

	lines := make([]pricing.ProcessedLine, 0, len(ids))
	cartItems := make([]coupon.CartItem, 0, len(ids))
	for _, id := range ids {
		snap := snaps[id]
		mode, err := tax.ParseMode(snap.PriceMode)
		if err != nil {
			return PreviewOutput{}, fmt.Errorf("product %s: %w", id, err)
		}
		line, err := pricing.ComputeLine(pricing.LineItem{
			ProductID:  id,
			CategoryID: snap.CategoryID,
			VariantID:  variantByID[id],
			Title:      snap.Title,
			ImageURL:   snap.ImageURL,
			SKU:        snap.SKU,
			Qty:        qtyByID[id],
			UnitPrice:  snap.UnitPrice,
			TaxRate:    tax.Resolve(snap.TaxRate, snap.CategoryTaxRate, s.DefaultTaxRate),
			PriceMode:  mode,
		})
		if err != nil {
			return PreviewOutput{}, common.NewAppError("BAD_REQUEST", err.Error(), http.StatusBadRequest, err)
		}
		lines = append(lines, line)
		cartItems = append(cartItems, coupon.CartItem{
			ProductID:  id,
			CategoryID: snap.CategoryID,
			Title:      snap.Title,
			UnitPrice:  snap.UnitPrice,
			Qty:        qtyByID[id],
			LineTotal:  line.Final,
		})
	}

	itemsTotal := pricing.ItemsTotal(lines)

	couponView := CouponView{Discount: "0.00"}
	discount := decimal.Zero
	freeShipping := false
	appliedCode := ""
	code := strings.ToUpper(strings.TrimSpace(in.CouponCode))
	if code != "" && s.Coupons != nil {
		var userPg pgtype.UUID
		if userID != nil {
			if parsed, err := common.ToPgUUID(*userID); err == nil {
				userPg = parsed
			}
		}
		res, err := s.Coupons.Evaluate(ctx, code, userPg, cartItems, string(method))
		switch {
		case err == nil:
			discount = res.Discount
			freeShipping = res.FreeShipping
			appliedCode = res.Code
			couponView = CouponView{
				Applied:      true,
				Code:         res.Code,
				Discount:     res.Discount.StringFixed(2),
				FreeShipping: res.FreeShipping,
				FreeItems:    res.FreeItems,
			}
		case isCouponRuleError(err):
			couponView = CouponView{Code: code, Reason: err.Error(), Discount: "0.00"}
		default:
			return PreviewOutput{}, err
		}
	}

	delivery, platform := s.Fees.Fees(itemsTotal, method)
	summary := pricing.Aggregate(lines, delivery, platform, discount, freeShipping)

	payload := buildPayload(summary, appliedCode, string(method))
	hash, err := s.Signer.Sign(&payload)
	if err != nil {
		return PreviewOutput{}, err
	}
	return PreviewOutput{Preview: payload, Hash: hash, Coupon: couponView}, nil
}

// Commit verifies the signed preview and persists it without recomputing a
// single amount. Order, items, and coupon settlement share one transaction.
func (s *Service) Commit(ctx context.Context, userID string, in CommitInput) (CommitOutput, error) {
	if s == nil || s.Q == nil || s.Signer == nil {
		return CommitOutput{}, errors.New("checkout service not configured")
	}
	if err := s.Signer.Verify(in.Preview, in.Hash); err != nil {
		switch {
		case errors.Is(err, preview.ErrPreviewExpired):
			return CommitOutput{}, common.NewAppError("PREVIEW_EXPIRED", "preview has expired, request a new one", http.StatusBadRequest, err)
		case errors.Is(err, preview.ErrPriceTampered):
			s.Log.Warn().Str("user_id", userID).Msg("checkout commit rejected: preview payload mismatch")
			return CommitOutput{}, common.NewAppError("PRICE_TAMPERED", "order totals do not match the issued preview", http.StatusBadRequest, err)
		default:
			return CommitOutput{}, err
		}
	}
	if len(in.Preview.Lines) == 0 {
		return CommitOutput{}, common.NewAppError("EMPTY_CART", "preview has no items", http.StatusBadRequest, nil)
	}
	userPg, err := common.ToPgUUID(userID)
	if err != nil {
		return CommitOutput{}, common.NewAppError("UNAUTHORIZED", "invalid user", http.StatusUnauthorized, err)
	}
	addrPg, err := common.ToPgUUID(in.AddressID)
	if err != nil {
		return CommitOutput{}, common.NewAppError("BAD_REQUEST", "addressId is required", http.StatusBadRequest, err)
	}
	addr, err := s.Q.GetAddressByIDForUser(ctx, dbgen.GetAddressByIDForUserParams{ID: addrPg, UserID: userPg})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CommitOutput{}, common.NewAppError("BAD_REQUEST", "delivery address not found", http.StatusBadRequest, err)
		}
		return CommitOutput{}, err
	}

	amounts, err := parseAmounts(in.Preview)
	if err != nil {
		return CommitOutput{}, common.NewAppError("BAD_REQUEST", err.Error(), http.StatusBadRequest, err)
	}

	if s.Pool == nil {
		return CommitOutput{}, errors.New("checkout service not configured")
	}
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return CommitOutput{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	qtx := s.Q.WithTx(tx)

	var couponID pgtype.UUID
	var couponCode pgtype.Text
	if in.Preview.CouponCode != "" {
		row, err := qtx.GetCouponByCodeForUpdate(ctx, in.Preview.CouponCode)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return CommitOutput{}, common.NewAppError("COUPON_INVALID", "coupon no longer exists", http.StatusConflict, err)
			}
			return CommitOutput{}, err
		}
		couponID = row.ID
		couponCode = common.NullableText(row.Code)
	}

	now := s.now()
	created, err := qtx.CreateOrder(ctx, dbgen.CreateOrderParams{
		UserID:          userPg,
		OrderNumber:     order.NewOrderNumber(now),
		TrackingID:      order.NewTrackingID(),
		Status:          dbgen.OrderStatusCREATED,
		PaymentMethod:   in.Preview.PaymentMethod,
		Currency:        s.Currency,
		CouponID:        couponID,
		CouponCode:      couponCode,
		Subtotal:        amounts.subtotal,
		TotalTax:        amounts.totalTax,
		TotalCgst:       amounts.totalCGST,
		TotalSgst:       amounts.totalSGST,
		DeliveryCharge:  amounts.delivery,
		PlatformFee:     amounts.platform,
		CouponDiscount:  amounts.discount,
		GrandTotal:      amounts.grandTotal,
		PreviewHash:     in.Hash,
		ShippingAddress: addressJSON(addr),
	})
	if err != nil {
		return CommitOutput{}, mapCreateOrderError(err)
	}

	for i, line := range in.Preview.Lines {
		productPg, err := common.ToPgUUID(line.ProductID)
		if err != nil {
			return CommitOutput{}, common.NewAppError("BAD_REQUEST", "invalid product id in preview", http.StatusBadRequest, err)
		}
		la := amounts.lines[i]
		if err := qtx.CreateOrderItem(ctx, dbgen.CreateOrderItemParams{
			OrderID:     created.ID,
			ProductID:   productPg,
			VariantID:   common.NullableText(line.VariantID),
			Title:       line.Title,
			Sku:         common.NullableText(line.SKU),
			ImageUrl:    common.NullableText(line.ImageURL),
			Qty:         line.Qty,
			UnitPrice:   la.unitPrice,
			BaseAmount:  la.base,
			TaxAmount:   la.tax,
			CgstAmount:  la.cgst,
			SgstAmount:  la.sgst,
			FinalAmount: la.final,
		}); err != nil {
			return CommitOutput{}, err
		}
	}

	if in.Preview.CouponCode != "" && s.Coupons != nil {
		if err := s.Coupons.Settle(ctx, qtx, in.Preview.CouponCode, created.ID, userPg, amounts.discount); err != nil {
			switch {
			case errors.Is(err, coupon.ErrCouponExhausted), errors.Is(err, coupon.ErrUserLimitReached):
				return CommitOutput{}, common.NewAppError("COUPON_EXHAUSTED", "coupon is no longer available", http.StatusConflict, err)
			default:
				return CommitOutput{}, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return CommitOutput{}, err
	}

	if s.Events != nil {
		payload := map[string]any{
			"orderId":     common.UUIDString(created.ID),
			"orderNumber": created.OrderNumber,
			"userId":      userID,
			"grandTotal":  amounts.grandTotal.StringFixed(2),
		}
		if user, err := s.Q.GetUserByID(ctx, userPg); err == nil && user.Email != "" {
			payload["email"] = user.Email
		}
		if _, err := s.Events.Emit(ctx, events.TopicOrderCreated, created.ID, payload); err != nil {
			s.Log.Error().Err(err).Str("order_id", common.UUIDString(created.ID)).Msg("order created event fan-out failed")
		}
	}

	return CommitOutput{
		OrderID:     common.UUIDString(created.ID),
		OrderNumber: created.OrderNumber,
		TrackingID:  created.TrackingID,
		Status:      string(created.Status),
		GrandTotal:  amounts.grandTotal.StringFixed(2),
	}, nil
}

type lineAmounts struct {
	unitPrice, base, tax, cgst, sgst, final decimal.Decimal
}

type orderAmounts struct {
	lines      []lineAmounts
	subtotal   decimal.Decimal
	totalTax   decimal.Decimal
	totalCGST  decimal.Decimal
	totalSGST  decimal.Decimal
	delivery   decimal.Decimal
	platform   decimal.Decimal
	discount   decimal.Decimal
	grandTotal decimal.Decimal
}

func parseAmounts(p preview.Payload) (orderAmounts, error) {
	var out orderAmounts
	var err error
	parse := func(s string) decimal.Decimal {
		if err != nil {
			return decimal.Zero
		}
		var d decimal.Decimal
		d, err = decimal.NewFromString(s)
		return d
	}
	for _, line := range p.Lines {
		out.lines = append(out.lines, lineAmounts{
			unitPrice: parse(line.UnitPrice),
			base:      parse(line.Base),
			tax:       parse(line.Tax),
			cgst:      parse(line.CGST),
			sgst:      parse(line.SGST),
			final:     parse(line.Final),
		})
	}
	out.subtotal = parse(p.Subtotal)
	out.totalTax = parse(p.TotalTax)
	out.totalCGST = parse(p.TotalCGST)
	out.totalSGST = parse(p.TotalSGST)
	out.delivery = parse(p.DeliveryCharge)
	out.platform = parse(p.PlatformFee)
	out.discount = parse(p.CouponDiscount)
	out.grandTotal = parse(p.GrandTotal)
	if err != nil {
		return orderAmounts{}, fmt.Errorf("malformed preview amounts: %w", err)
	}
	return out, nil
}

func buildPayload(summary pricing.Summary, couponCode, paymentMethod string) preview.Payload {
	payload := preview.Payload{
		Subtotal:       summary.Subtotal.StringFixed(2),
		TotalTax:       summary.TotalTax.StringFixed(2),
		TotalCGST:      summary.TotalCGST.StringFixed(2),
		TotalSGST:      summary.TotalSGST.StringFixed(2),
		DeliveryCharge: summary.DeliveryCharge.StringFixed(2),
		PlatformFee:    summary.PlatformFee.StringFixed(2),
		CouponCode:     couponCode,
		CouponDiscount: summary.CouponDiscount.StringFixed(2),
		GrandTotal:     summary.GrandTotal.StringFixed(2),
		PaymentMethod:  paymentMethod,
	}
	for _, line := range summary.Lines {
		payload.Lines = append(payload.Lines, preview.Line{
			ProductID: line.ProductID.String(),
			VariantID: line.VariantID,
			Title:     line.Title,
			SKU:       line.SKU,
			ImageURL:  line.ImageURL,
			Qty:       line.Qty,
			UnitPrice: line.UnitPrice.StringFixed(2),
			Base:      line.Base.StringFixed(2),
			Tax:       line.Tax.StringFixed(2),
			CGST:      line.CGST.StringFixed(2),
			SGST:      line.SGST.StringFixed(2),
			Final:     line.Final.StringFixed(2),
		})
	}
	return payload
}

// mapCreateOrderError translates the unique violation on orders.preview_hash
// into the conflict a client sees when replaying an already committed preview.
func mapCreateOrderError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "preview_hash") {
		return common.NewAppError("PREVIEW_ALREADY_USED", "this preview was already committed, request a new one", http.StatusConflict, err)
	}
	return err
}

func addressJSON(addr dbgen.Address) []byte {
	doc := map[string]any{
		"receiverName": addr.ReceiverName,
		"phone":        addr.Phone,
		"addressLine1": addr.AddressLine1,
		"city":         addr.City,
		"state":        addr.State,
		"postalCode":   addr.PostalCode,
	}
	if addr.AddressLine2.Valid {
		doc["addressLine2"] = addr.AddressLine2.String
	}
	b, _ := json.Marshal(doc)
	return b
}

func isCouponRuleError(err error) bool {
	for _, target := range []error{
		coupon.ErrCouponNotFound,
		coupon.ErrCouponInactive,
		coupon.ErrCouponNotYetValid,
		coupon.ErrCouponExpired,
		coupon.ErrCouponExhausted,
		coupon.ErrUserLimitReached,
		coupon.ErrMinCartValueNotMet,
		coupon.ErrPaymentMethodRestricted,
		coupon.ErrNotFirstOrder,
		coupon.ErrNoEligibleProducts,
		coupon.ErrInsufficientQuantity,
		coupon.ErrBuyQuantityNotMet,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
