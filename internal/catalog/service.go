// Package catalog serves the authoritative product pricing snapshots the
// checkout pipeline prices carts from. Snapshots carry everything line
// pricing needs so checkout never trusts client-supplied prices.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/bazaarlabs/backend-bazaar/internal/common"
	dbgen "github.com/bazaarlabs/backend-bazaar/internal/db/gen"
)

// ErrProductNotFound indicates at least one requested product does not exist
// or is no longer purchasable.
var ErrProductNotFound = errors.New("product not found")

// Snapshot is the authoritative pricing view of a product at lookup time.
type Snapshot struct {
	ID              uuid.UUID        `json:"id"`
	CategoryID      *uuid.UUID       `json:"categoryId,omitempty"`
	Title           string           `json:"title"`
	Slug            string           `json:"slug"`
	SKU             string           `json:"sku,omitempty"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	UnitPrice       decimal.Decimal  `json:"unitPrice"`
	TaxRate         *decimal.Decimal `json:"taxRate,omitempty"`
	CategoryTaxRate *decimal.Decimal `json:"categoryTaxRate,omitempty"`
	PriceMode       string           `json:"priceMode"`
	Active          bool             `json:"active"`
}

type queryProvider interface {
	GetProductSnapshotsByIDs(ctx context.Context, ids []pgtype.UUID) ([]dbgen.GetProductSnapshotsByIDsRow, error)
}

// Service resolves product snapshots with a read-through redis cache.
type Service struct {
	Q     queryProvider
	Cache *Cache
}

// SnapshotKey builds the cache key for one product snapshot.
func SnapshotKey(id uuid.UUID) string {
	return "catalog:snapshot:" + id.String()
}

// Snapshots loads snapshots for the given product ids. Every id must resolve
// to an active product or the whole lookup fails with ErrProductNotFound,
// the caller cannot price a partial cart.
func (s *Service) Snapshots(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Snapshot, error) {
	if s == nil || s.Q == nil {
		return nil, errors.New("catalog service not configured")
	}
	out := make(map[uuid.UUID]Snapshot, len(ids))
	missing := make([]uuid.UUID, 0, len(ids))
	for _, id := range dedupe(ids) {
		var snap Snapshot
		hit, err := s.Cache.GetJSON(ctx, SnapshotKey(id), &snap)
		if err == nil && hit {
			out[id] = snap
			continue
		}
		// Cache errors degrade to a database read.
		missing = append(missing, id)
	}
	if len(missing) > 0 {
		pgIDs := make([]pgtype.UUID, 0, len(missing))
		for _, id := range missing {
			pgIDs = append(pgIDs, common.PgUUID(id))
		}
		rows, err := s.Q.GetProductSnapshotsByIDs(ctx, pgIDs)
		if err != nil {
			return nil, fmt.Errorf("load product snapshots: %w", err)
		}
		for _, row := range rows {
			snap := snapshotFromRow(row)
			out[snap.ID] = snap
			_ = s.Cache.SetJSON(ctx, SnapshotKey(snap.ID), snap)
		}
	}
	for _, id := range ids {
		snap, ok := out[id]
		if !ok || !snap.Active {
			return nil, fmt.Errorf("product %s: %w", id, ErrProductNotFound)
		}
	}
	return out, nil
}

func snapshotFromRow(row dbgen.GetProductSnapshotsByIDsRow) Snapshot {
	snap := Snapshot{
		Title:     row.Title,
		Slug:      row.Slug,
		UnitPrice: row.UnitPrice,
		PriceMode: strings.ToLower(row.PriceMode),
		Active:    row.Active,
	}
	if row.ID.Valid {
		snap.ID = uuid.UUID(row.ID.Bytes)
	}
	if row.CategoryID.Valid {
		id := uuid.UUID(row.CategoryID.Bytes)
		snap.CategoryID = &id
	}
	if row.Sku.Valid {
		snap.SKU = row.Sku.String
	}
	if row.ImageUrl.Valid {
		snap.ImageURL = row.ImageUrl.String
	}
	if row.TaxRate.Valid {
		v := row.TaxRate.Decimal
		snap.TaxRate = &v
	}
	if row.CategoryTaxRate.Valid {
		v := row.CategoryTaxRate.Decimal
		snap.CategoryTaxRate = &v
	}
	return snap
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
