package checkout

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bazaarlabs/backend-bazaar/internal/catalog"
	"github.com/bazaarlabs/backend-bazaar/internal/common"
	"github.com/bazaarlabs/backend-bazaar/internal/coupon"
	dbgen "github.com/bazaarlabs/backend-bazaar/internal/db/gen"
	"github.com/bazaarlabs/backend-bazaar/internal/preview"
	"github.com/bazaarlabs/backend-bazaar/internal/pricing"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

type fakeCatalogQueries struct {
	rows []dbgen.GetProductSnapshotsByIDsRow
}

func (f *fakeCatalogQueries) GetProductSnapshotsByIDs(ctx context.Context, ids []pgtype.UUID) ([]dbgen.GetProductSnapshotsByIDsRow, error) {
	want := make(map[[16]byte]bool, len(ids))
	for _, id := range ids {
		want[id.Bytes] = true
	}
	var out []dbgen.GetProductSnapshotsByIDsRow
	for _, row := range f.rows {
		if want[row.ID.Bytes] {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeCouponQueries struct {
	coupon  dbgen.Coupon
	missing bool
}

func (f *fakeCouponQueries) GetCouponByCode(ctx context.Context, code string) (dbgen.Coupon, error) {
	if f.missing {
		return dbgen.Coupon{}, pgx.ErrNoRows
	}
	return f.coupon, nil
}

func (f *fakeCouponQueries) GetCouponByCodeForUpdate(ctx context.Context, code string) (dbgen.Coupon, error) {
	return f.GetCouponByCode(ctx, code)
}

func (f *fakeCouponQueries) CountCouponUsage(ctx context.Context, couponID pgtype.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeCouponQueries) CountCouponUsageByUser(ctx context.Context, arg dbgen.CountCouponUsageByUserParams) (int64, error) {
	return 0, nil
}

func (f *fakeCouponQueries) CountOrdersForUser(ctx context.Context, userID pgtype.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeCouponQueries) GetCouponUsageByOrder(ctx context.Context, arg dbgen.GetCouponUsageByOrderParams) (dbgen.CouponUsage, error) {
	return dbgen.CouponUsage{}, pgx.ErrNoRows
}

func (f *fakeCouponQueries) InsertCouponUsage(ctx context.Context, arg dbgen.InsertCouponUsageParams) error {
	return nil
}

func (f *fakeCouponQueries) IncreaseCouponUsedCount(ctx context.Context, id pgtype.UUID) error {
	return nil
}

func inclusiveProduct(id uuid.UUID, price string) dbgen.GetProductSnapshotsByIDsRow {
	return dbgen.GetProductSnapshotsByIDsRow{
		ID:        pgtype.UUID{Bytes: id, Valid: true},
		Title:     "Steel Bottle",
		Slug:      "steel-bottle",
		UnitPrice: decimal.RequireFromString(price),
		TaxRate:   decimal.NullDecimal{Decimal: decimal.NewFromInt(18), Valid: true},
		PriceMode: "inclusive",
		Active:    true,
	}
}

func testService(catQ *fakeCatalogQueries, coupQ coupon.Querier) *Service {
	svc := &Service{
		Catalog: &catalog.Service{Q: catQ},
		Signer: &preview.Signer{
			Secret: []byte("test-secret"),
			TTL:    15 * time.Minute,
			Now:    func() time.Time { return testNow },
		},
		Fees: pricing.FeePolicy{
			FreeDeliveryThreshold: decimal.NewFromInt(499),
			CODSurcharge:          decimal.NewFromInt(50),
			PlatformFee:           decimal.NewFromInt(5),
		},
		DefaultTaxRate: decimal.NewFromInt(18),
		Currency:       "INR",
		Now:            func() time.Time { return testNow },
	}
	if coupQ != nil {
		svc.Coupons = &coupon.Service{Q: coupQ, Now: func() time.Time { return testNow }}
	}
	return svc
}

func TestPreviewEmptyCart(t *testing.T) {
	svc := testService(&fakeCatalogQueries{}, nil)
	_, err := svc.Preview(context.Background(), nil, PreviewInput{PaymentMethod: "COD"})
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "EMPTY_CART", appErr.Code)
}

func TestPreviewUnknownProduct(t *testing.T) {
	svc := testService(&fakeCatalogQueries{}, nil)
	_, err := svc.Preview(context.Background(), nil, PreviewInput{
		Items:         []PreviewItem{{ProductID: uuid.NewString(), Qty: 1}},
		PaymentMethod: "COD",
	})
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPreviewCODBelowThreshold(t *testing.T) {
	id := uuid.New()
	svc := testService(&fakeCatalogQueries{rows: []dbgen.GetProductSnapshotsByIDsRow{inclusiveProduct(id, "118.00")}}, nil)

	out, err := svc.Preview(context.Background(), nil, PreviewInput{
		Items:         []PreviewItem{{ProductID: id.String(), Qty: 2}},
		PaymentMethod: "cod",
	})
	require.NoError(t, err)
	require.Len(t, out.Preview.Lines, 1)
	require.Equal(t, "236.00", out.Preview.Subtotal)
	require.Equal(t, "36.00", out.Preview.TotalTax)
	require.Equal(t, "18.00", out.Preview.TotalCGST)
	require.Equal(t, "18.00", out.Preview.TotalSGST)
	require.Equal(t, "50.00", out.Preview.DeliveryCharge)
	require.Equal(t, "5.00", out.Preview.PlatformFee)
	require.Equal(t, "291.00", out.Preview.GrandTotal)
	require.Equal(t, "COD", out.Preview.PaymentMethod)
	require.NotEmpty(t, out.Hash)
	require.NoError(t, svc.Signer.Verify(out.Preview, out.Hash))
}

func TestPreviewPrepaidAboveThreshold(t *testing.T) {
	id := uuid.New()
	svc := testService(&fakeCatalogQueries{rows: []dbgen.GetProductSnapshotsByIDsRow{inclusiveProduct(id, "499.00")}}, nil)

	out, err := svc.Preview(context.Background(), nil, PreviewInput{
		Items:         []PreviewItem{{ProductID: id.String(), Qty: 1}},
		PaymentMethod: "PREPAID",
	})
	require.NoError(t, err)
	require.Equal(t, "0.00", out.Preview.DeliveryCharge)
	require.Equal(t, "5.00", out.Preview.PlatformFee)
	require.Equal(t, "504.00", out.Preview.GrandTotal)
}

func TestPreviewAppliesCoupon(t *testing.T) {
	id := uuid.New()
	catQ := &fakeCatalogQueries{rows: []dbgen.GetProductSnapshotsByIDsRow{inclusiveProduct(id, "600.00")}}
	coupQ := &fakeCouponQueries{coupon: dbgen.Coupon{
		ID:         pgtype.UUID{Bytes: uuid.New(), Valid: true},
		Code:       "SAVE50",
		Kind:       dbgen.CouponKindFLAT,
		Value:      decimal.NewFromInt(50),
		Status:     dbgen.CouponStatusACTIVE,
		Conditions: []byte(`{}`),
	}}
	svc := testService(catQ, coupQ)

	out, err := svc.Preview(context.Background(), nil, PreviewInput{
		Items:         []PreviewItem{{ProductID: id.String(), Qty: 1}},
		CouponCode:    "save50",
		PaymentMethod: "PREPAID",
	})
	require.NoError(t, err)
	require.True(t, out.Coupon.Applied)
	require.Equal(t, "50.00", out.Coupon.Discount)
	require.Equal(t, "SAVE50", out.Preview.CouponCode)
	require.Equal(t, "50.00", out.Preview.CouponDiscount)
	// 600 + 5 platform - 50 discount.
	require.Equal(t, "555.00", out.Preview.GrandTotal)
}

func TestPreviewDegradesBadCoupon(t *testing.T) {
	id := uuid.New()
	catQ := &fakeCatalogQueries{rows: []dbgen.GetProductSnapshotsByIDsRow{inclusiveProduct(id, "600.00")}}
	svc := testService(catQ, &fakeCouponQueries{missing: true})

	out, err := svc.Preview(context.Background(), nil, PreviewInput{
		Items:         []PreviewItem{{ProductID: id.String(), Qty: 1}},
		CouponCode:    "GHOST",
		PaymentMethod: "PREPAID",
	})
	require.NoError(t, err)
	require.False(t, out.Coupon.Applied)
	require.NotEmpty(t, out.Coupon.Reason)
	require.Equal(t, "0.00", out.Preview.CouponDiscount)
	require.Empty(t, out.Preview.CouponCode)
	require.Equal(t, "605.00", out.Preview.GrandTotal)
}

func TestPreviewCarriesVariantIntoSignedPayload(t *testing.T) {
	id := uuid.New()
	svc := testService(&fakeCatalogQueries{rows: []dbgen.GetProductSnapshotsByIDsRow{inclusiveProduct(id, "118.00")}}, nil)

	out, err := svc.Preview(context.Background(), nil, PreviewInput{
		Items:         []PreviewItem{{ProductID: id.String(), SelectedVariantID: "size-xl", Qty: 1}},
		PaymentMethod: "COD",
	})
	require.NoError(t, err)
	require.Len(t, out.Preview.Lines, 1)
	require.Equal(t, "size-xl", out.Preview.Lines[0].VariantID)
	// The variant is part of the signed document, so dropping it at commit
	// is a tamper.
	stripped := out.Preview
	stripped.Lines = []preview.Line{out.Preview.Lines[0]}
	stripped.Lines[0].VariantID = ""
	require.ErrorIs(t, svc.Signer.Verify(stripped, out.Hash), preview.ErrPriceTampered)
	require.NoError(t, svc.Signer.Verify(out.Preview, out.Hash))
}

func TestMapCreateOrderErrorPreviewReplay(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "orders_preview_hash_key"}
	err := mapCreateOrderError(dup)
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "PREVIEW_ALREADY_USED", appErr.Code)
	require.Equal(t, http.StatusConflict, appErr.HTTPStatus)

	// Other unique violations pass through untouched.
	other := &pgconn.PgError{Code: "23505", ConstraintName: "orders_order_number_key"}
	require.Equal(t, error(other), mapCreateOrderError(other))
}

func TestCommitRejectsTamperedPreview(t *testing.T) {
	id := uuid.New()
	svc := testService(&fakeCatalogQueries{rows: []dbgen.GetProductSnapshotsByIDsRow{inclusiveProduct(id, "118.00")}}, nil)
	svc.Q = dbgen.New(nil)

	out, err := svc.Preview(context.Background(), nil, PreviewInput{
		Items:         []PreviewItem{{ProductID: id.String(), Qty: 1}},
		PaymentMethod: "COD",
	})
	require.NoError(t, err)

	tampered := out.Preview
	tampered.GrandTotal = "1.00"
	_, err = svc.Commit(context.Background(), uuid.NewString(), CommitInput{
		Preview:   tampered,
		Hash:      out.Hash,
		AddressID: uuid.NewString(),
	})
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "PRICE_TAMPERED", appErr.Code)
}

func TestCommitRejectsExpiredPreview(t *testing.T) {
	id := uuid.New()
	svc := testService(&fakeCatalogQueries{rows: []dbgen.GetProductSnapshotsByIDsRow{inclusiveProduct(id, "118.00")}}, nil)
	svc.Q = dbgen.New(nil)

	out, err := svc.Preview(context.Background(), nil, PreviewInput{
		Items:         []PreviewItem{{ProductID: id.String(), Qty: 1}},
		PaymentMethod: "COD",
	})
	require.NoError(t, err)

	svc.Signer.Now = func() time.Time { return testNow.Add(time.Hour) }
	_, err = svc.Commit(context.Background(), uuid.NewString(), CommitInput{
		Preview:   out.Preview,
		Hash:      out.Hash,
		AddressID: uuid.NewString(),
	})
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "PREVIEW_EXPIRED", appErr.Code)
}
