package coupon

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	dbgen "github.com/bazaarlabs/backend-bazaar/internal/db/gen"
	"github.com/bazaarlabs/backend-bazaar/internal/obs"
)

// Querier captures the database methods required by the coupon service.
type Querier interface {
	GetCouponByCode(ctx context.Context, code string) (dbgen.Coupon, error)
	GetCouponByCodeForUpdate(ctx context.Context, code string) (dbgen.Coupon, error)
	CountCouponUsage(ctx context.Context, couponID pgtype.UUID) (int64, error)
	CountCouponUsageByUser(ctx context.Context, arg dbgen.CountCouponUsageByUserParams) (int64, error)
	CountOrdersForUser(ctx context.Context, userID pgtype.UUID) (int64, error)
	GetCouponUsageByOrder(ctx context.Context, arg dbgen.GetCouponUsageByOrderParams) (dbgen.CouponUsage, error)
	InsertCouponUsage(ctx context.Context, arg dbgen.InsertCouponUsageParams) error
	IncreaseCouponUsedCount(ctx context.Context, id pgtype.UUID) error
}

// Service loads coupon rows, gathers the usage facts the engine needs and
// records settlements. Evaluation itself stays in Evaluate.
type Service struct {
	Q   Querier
	Now func() time.Time
}

// Evaluate resolves a coupon code and runs it against the cart. Usage counts
// come from the usage ledger, not the denormalized counter on the coupon row.
func (s *Service) Evaluate(ctx context.Context, code string, userID pgtype.UUID, items []CartItem, paymentMethod string) (Result, error) {
	if s == nil || s.Q == nil {
		return Result{}, errors.New("coupon service not configured")
	}
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return Result{}, ErrCouponNotFound
	}
	row, err := s.Q.GetCouponByCode(ctx, trimmed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Result{}, ErrCouponNotFound
		}
		return Result{}, err
	}
	c, err := FromModel(row)
	if err != nil {
		return Result{}, err
	}
	usage, err := s.loadUsage(ctx, row.ID, userID, c)
	if err != nil {
		return Result{}, err
	}
	res, err := Evaluate(c, items, usage, paymentMethod, s.now())
	observeApply(c.Kind, err)
	return res, err
}

func observeApply(kind Kind, err error) {
	if obs.CouponApplyTotal == nil {
		return
	}
	result := "applied"
	if err != nil {
		result = "rejected"
	}
	obs.CouponApplyTotal.WithLabelValues(string(kind), result).Inc()
}

// Settle records coupon usage inside the commit transaction. The caller passes
// a tx-scoped querier so the FOR UPDATE lock and the ledger insert share the
// transaction. Settlement is idempotent per order.
func (s *Service) Settle(ctx context.Context, q Querier, code string, orderID, userID pgtype.UUID, amount decimal.Decimal) error {
	if q == nil {
		return errors.New("coupon settle requires a querier")
	}
	trimmed := strings.TrimSpace(code)
	if trimmed == "" || !orderID.Valid {
		return nil
	}
	row, err := q.GetCouponByCodeForUpdate(ctx, trimmed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCouponNotFound
		}
		return err
	}
	_, err = q.GetCouponUsageByOrder(ctx, dbgen.GetCouponUsageByOrderParams{CouponID: row.ID, OrderID: orderID})
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	// Re-check the limits under the row lock. A concurrent commit may have
	// consumed the last remaining use since the preview was signed.
	if row.UsageLimit.Valid {
		uses, err := q.CountCouponUsage(ctx, row.ID)
		if err != nil {
			return err
		}
		if uses >= int64(row.UsageLimit.Int32) {
			return ErrCouponExhausted
		}
	}
	if row.PerUserLimit.Valid && userID.Valid {
		uses, err := q.CountCouponUsageByUser(ctx, dbgen.CountCouponUsageByUserParams{CouponID: row.ID, UserID: userID})
		if err != nil {
			return err
		}
		if uses >= int64(row.PerUserLimit.Int32) {
			return ErrUserLimitReached
		}
	}

	if amount.IsNegative() {
		amount = decimal.Zero
	}
	params := dbgen.InsertCouponUsageParams{CouponID: row.ID, OrderID: orderID, Amount: amount}
	if userID.Valid {
		params.UserID = userID
	}
	if err := q.InsertCouponUsage(ctx, params); err != nil {
		return err
	}
	return q.IncreaseCouponUsedCount(ctx, row.ID)
}

func (s *Service) loadUsage(ctx context.Context, couponID pgtype.UUID, userID pgtype.UUID, c Coupon) (Usage, error) {
	var usage Usage
	if c.UsageLimit != nil {
		uses, err := s.Q.CountCouponUsage(ctx, couponID)
		if err != nil {
			return Usage{}, err
		}
		usage.GlobalUses = uses
	}
	if userID.Valid {
		if c.PerUserLimit != nil {
			uses, err := s.Q.CountCouponUsageByUser(ctx, dbgen.CountCouponUsageByUserParams{CouponID: couponID, UserID: userID})
			if err != nil {
				return Usage{}, err
			}
			usage.UserUses = uses
		}
		if c.Conditions.FirstOrderOnly {
			orders, err := s.Q.CountOrdersForUser(ctx, userID)
			if err != nil {
				return Usage{}, err
			}
			usage.PriorOrders = orders
		}
	}
	return usage, nil
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
