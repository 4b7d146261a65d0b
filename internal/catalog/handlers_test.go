package catalog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bazaarlabs/backend-bazaar/internal/catalog"
	dbgen "github.com/bazaarlabs/backend-bazaar/internal/db/gen"
)

type fakeQueries struct {
	rows  []dbgen.GetProductSnapshotsByIDsRow
	calls int
}

func (f *fakeQueries) GetProductSnapshotsByIDs(ctx context.Context, ids []pgtype.UUID) ([]dbgen.GetProductSnapshotsByIDsRow, error) {
	f.calls++
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

func snapshotRow(id uuid.UUID, price string, active bool) dbgen.GetProductSnapshotsByIDsRow {
	return dbgen.GetProductSnapshotsByIDsRow{
		ID:        pgtype.UUID{Bytes: id, Valid: true},
		Title:     "Steel Bottle",
		Slug:      "steel-bottle",
		UnitPrice: decimal.RequireFromString(price),
		PriceMode: "inclusive",
		Active:    active,
	}
}

func newTestCache(t *testing.T) *catalog.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return catalog.NewCache(client, time.Minute)
}

func TestSnapshotsReadThroughCache(t *testing.T) {
	id := uuid.New()
	queries := &fakeQueries{rows: []dbgen.GetProductSnapshotsByIDsRow{snapshotRow(id, "118.00", true)}}
	svc := &catalog.Service{Q: queries, Cache: newTestCache(t)}

	snaps, err := svc.Snapshots(context.Background(), []uuid.UUID{id})
	require.NoError(t, err)
	require.Equal(t, "118.00", snaps[id].UnitPrice.StringFixed(2))
	require.Equal(t, 1, queries.calls)

	// Second lookup is served from redis.
	snaps, err = svc.Snapshots(context.Background(), []uuid.UUID{id})
	require.NoError(t, err)
	require.Equal(t, "118.00", snaps[id].UnitPrice.StringFixed(2))
	require.Equal(t, 1, queries.calls)
}

func TestSnapshotsUnknownProduct(t *testing.T) {
	svc := &catalog.Service{Q: &fakeQueries{}, Cache: newTestCache(t)}
	_, err := svc.Snapshots(context.Background(), []uuid.UUID{uuid.New()})
	require.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestSnapshotsInactiveProduct(t *testing.T) {
	id := uuid.New()
	queries := &fakeQueries{rows: []dbgen.GetProductSnapshotsByIDsRow{snapshotRow(id, "99.00", false)}}
	svc := &catalog.Service{Q: queries, Cache: newTestCache(t)}
	_, err := svc.Snapshots(context.Background(), []uuid.UUID{id})
	require.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestProductHandler(t *testing.T) {
	id := uuid.New()
	queries := &fakeQueries{rows: []dbgen.GetProductSnapshotsByIDsRow{snapshotRow(id, "118.00", true)}}
	handler := &catalog.Handler{Service: &catalog.Service{Q: queries, Cache: newTestCache(t)}}

	router := chi.NewRouter()
	router.Get("/api/v1/products/{id}", handler.Product)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+id.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			ID        string `json:"id"`
			UnitPrice string `json:"unitPrice"`
			PriceMode string `json:"priceMode"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, id.String(), resp.Data.ID)
	require.Equal(t, "118.00", resp.Data.UnitPrice)
	require.Equal(t, "inclusive", resp.Data.PriceMode)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/products/"+uuid.NewString(), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
