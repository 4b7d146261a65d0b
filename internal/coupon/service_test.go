package coupon

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	dbgen "github.com/bazaarlabs/backend-bazaar/internal/db/gen"
)

type stubQuerier struct {
	coupon      dbgen.Coupon
	missing     bool
	globalUses  int64
	userUses    int64
	priorOrders int64
	usageExists bool

	inserted  []dbgen.InsertCouponUsageParams
	increased int
}

func (s *stubQuerier) GetCouponByCode(ctx context.Context, code string) (dbgen.Coupon, error) {
	if s.missing {
		return dbgen.Coupon{}, pgx.ErrNoRows
	}
	return s.coupon, nil
}

func (s *stubQuerier) GetCouponByCodeForUpdate(ctx context.Context, code string) (dbgen.Coupon, error) {
	return s.GetCouponByCode(ctx, code)
}

func (s *stubQuerier) CountCouponUsage(ctx context.Context, couponID pgtype.UUID) (int64, error) {
	return s.globalUses, nil
}

func (s *stubQuerier) CountCouponUsageByUser(ctx context.Context, arg dbgen.CountCouponUsageByUserParams) (int64, error) {
	return s.userUses, nil
}

func (s *stubQuerier) CountOrdersForUser(ctx context.Context, userID pgtype.UUID) (int64, error) {
	return s.priorOrders, nil
}

func (s *stubQuerier) GetCouponUsageByOrder(ctx context.Context, arg dbgen.GetCouponUsageByOrderParams) (dbgen.CouponUsage, error) {
	if s.usageExists {
		return dbgen.CouponUsage{CouponID: arg.CouponID, OrderID: arg.OrderID}, nil
	}
	return dbgen.CouponUsage{}, pgx.ErrNoRows
}

func (s *stubQuerier) InsertCouponUsage(ctx context.Context, arg dbgen.InsertCouponUsageParams) error {
	s.inserted = append(s.inserted, arg)
	return nil
}

func (s *stubQuerier) IncreaseCouponUsedCount(ctx context.Context, id pgtype.UUID) error {
	s.increased++
	return nil
}

func pgID() pgtype.UUID {
	return pgtype.UUID{Bytes: uuid.New(), Valid: true}
}

func flatCouponRow(value string) dbgen.Coupon {
	return dbgen.Coupon{
		ID:         pgID(),
		Code:       "SAVE50",
		Kind:       dbgen.CouponKindFLAT,
		Value:      decimal.RequireFromString(value),
		Status:     dbgen.CouponStatusACTIVE,
		StartsAt:   pgtype.Timestamptz{Time: testNow.Add(-time.Hour), Valid: true},
		ExpiresAt:  pgtype.Timestamptz{Time: testNow.Add(time.Hour), Valid: true},
		Conditions: []byte(`{}`),
	}
}

func TestServiceEvaluateUnknownCode(t *testing.T) {
	svc := &Service{Q: &stubQuerier{missing: true}, Now: func() time.Time { return testNow }}
	_, err := svc.Evaluate(context.Background(), "NOPE", pgID(), []CartItem{item("100", 1)}, "COD")
	require.ErrorIs(t, err, ErrCouponNotFound)
}

func TestServiceEvaluateUsesLedgerCounts(t *testing.T) {
	row := flatCouponRow("50")
	row.UsageLimit = pgtype.Int4{Int32: 3, Valid: true}
	// Stale denormalized counter must not matter, the ledger count decides.
	row.UsedCount = 99

	stub := &stubQuerier{coupon: row, globalUses: 2}
	svc := &Service{Q: stub, Now: func() time.Time { return testNow }}
	res, err := svc.Evaluate(context.Background(), "SAVE50", pgID(), []CartItem{item("500", 1)}, "COD")
	require.NoError(t, err)
	require.Equal(t, "50", res.Discount.String())

	stub.globalUses = 3
	_, err = svc.Evaluate(context.Background(), "SAVE50", pgID(), []CartItem{item("500", 1)}, "COD")
	require.ErrorIs(t, err, ErrCouponExhausted)
}

func TestServiceEvaluateFirstOrderOnly(t *testing.T) {
	row := flatCouponRow("50")
	row.Conditions = []byte(`{"firstOrderOnly":true}`)

	stub := &stubQuerier{coupon: row, priorOrders: 1}
	svc := &Service{Q: stub, Now: func() time.Time { return testNow }}
	_, err := svc.Evaluate(context.Background(), "SAVE50", pgID(), []CartItem{item("500", 1)}, "COD")
	require.ErrorIs(t, err, ErrNotFirstOrder)
}

func TestServiceSettleRecordsUsage(t *testing.T) {
	row := flatCouponRow("50")
	stub := &stubQuerier{coupon: row}
	svc := &Service{Q: stub, Now: func() time.Time { return testNow }}

	orderID, userID := pgID(), pgID()
	err := svc.Settle(context.Background(), stub, "SAVE50", orderID, userID, decimal.RequireFromString("50"))
	require.NoError(t, err)
	require.Len(t, stub.inserted, 1)
	require.Equal(t, orderID, stub.inserted[0].OrderID)
	require.Equal(t, userID, stub.inserted[0].UserID)
	require.Equal(t, 1, stub.increased)
}

func TestServiceSettleIdempotentPerOrder(t *testing.T) {
	row := flatCouponRow("50")
	stub := &stubQuerier{coupon: row, usageExists: true}
	svc := &Service{Q: stub, Now: func() time.Time { return testNow }}

	err := svc.Settle(context.Background(), stub, "SAVE50", pgID(), pgID(), decimal.RequireFromString("50"))
	require.NoError(t, err)
	require.Empty(t, stub.inserted)
	require.Zero(t, stub.increased)
}

func TestServiceSettleRechecksLimits(t *testing.T) {
	row := flatCouponRow("50")
	row.UsageLimit = pgtype.Int4{Int32: 1, Valid: true}
	stub := &stubQuerier{coupon: row, globalUses: 1}
	svc := &Service{Q: stub, Now: func() time.Time { return testNow }}

	err := svc.Settle(context.Background(), stub, "SAVE50", pgID(), pgID(), decimal.RequireFromString("50"))
	require.ErrorIs(t, err, ErrCouponExhausted)
	require.Empty(t, stub.inserted)
}
