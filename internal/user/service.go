// Package user manages the delivery address book orders ship to.
package user

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/bazaarlabs/backend-bazaar/internal/common"
	dbgen "github.com/bazaarlabs/backend-bazaar/internal/db/gen"
)

// Address represents a delivery address in API-friendly format.
type Address struct {
	ID           string    `json:"id"`
	ReceiverName string    `json:"receiverName"`
	Phone        string    `json:"phone"`
	AddressLine1 string    `json:"addressLine1"`
	AddressLine2 string    `json:"addressLine2,omitempty"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PostalCode   string    `json:"postalCode"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AddressInput captures payload for creating or updating an address.
type AddressInput struct {
	ReceiverName string `json:"receiverName"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
}

// Querier captures the database methods the address service needs.
type Querier interface {
	ListAddressesForUser(ctx context.Context, userID pgtype.UUID) ([]dbgen.Address, error)
	GetAddressByIDForUser(ctx context.Context, arg dbgen.GetAddressByIDForUserParams) (dbgen.Address, error)
	CreateAddress(ctx context.Context, arg dbgen.CreateAddressParams) (dbgen.Address, error)
	UpdateAddress(ctx context.Context, arg dbgen.UpdateAddressParams) (dbgen.Address, error)
	DeleteAddress(ctx context.Context, arg dbgen.DeleteAddressParams) error
}

// Service orchestrates address book operations.
type Service struct {
	Q Querier
}

// List returns all addresses for a user, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Address, error) {
	uid, err := common.ToPgUUID(userID)
	if err != nil {
		return nil, common.NewAppError("UNAUTHORIZED", "unauthorized", http.StatusUnauthorized, nil)
	}
	rows, err := s.Q.ListAddressesForUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	addresses := make([]Address, 0, len(rows))
	for _, row := range rows {
		addresses = append(addresses, convertAddress(row))
	}
	return addresses, nil
}

// Create inserts a new address for the given user.
func (s *Service) Create(ctx context.Context, userID string, input AddressInput) (Address, error) {
	uid, err := common.ToPgUUID(userID)
	if err != nil {
		return Address{}, common.NewAppError("UNAUTHORIZED", "unauthorized", http.StatusUnauthorized, nil)
	}
	if err := validateInput(input); err != nil {
		return Address{}, err
	}
	created, err := s.Q.CreateAddress(ctx, dbgen.CreateAddressParams{
		UserID:       uid,
		ReceiverName: strings.TrimSpace(input.ReceiverName),
		Phone:        strings.TrimSpace(input.Phone),
		AddressLine1: strings.TrimSpace(input.AddressLine1),
		AddressLine2: common.NullableText(strings.TrimSpace(input.AddressLine2)),
		City:         strings.TrimSpace(input.City),
		State:        strings.TrimSpace(input.State),
		PostalCode:   strings.TrimSpace(input.PostalCode),
	})
	if err != nil {
		return Address{}, err
	}
	return convertAddress(created), nil
}

// Update modifies an existing address owned by the user.
func (s *Service) Update(ctx context.Context, userID, addressID string, input AddressInput) (Address, error) {
	uid, err := common.ToPgUUID(userID)
	if err != nil {
		return Address{}, common.NewAppError("UNAUTHORIZED", "unauthorized", http.StatusUnauthorized, nil)
	}
	aid, err := common.ToPgUUID(addressID)
	if err != nil {
		return Address{}, common.NewAppError("NOT_FOUND", "address not found", http.StatusNotFound, nil)
	}
	if err := validateInput(input); err != nil {
		return Address{}, err
	}
	updated, err := s.Q.UpdateAddress(ctx, dbgen.UpdateAddressParams{
		ID:           aid,
		UserID:       uid,
		ReceiverName: strings.TrimSpace(input.ReceiverName),
		Phone:        strings.TrimSpace(input.Phone),
		AddressLine1: strings.TrimSpace(input.AddressLine1),
		AddressLine2: common.NullableText(strings.TrimSpace(input.AddressLine2)),
		City:         strings.TrimSpace(input.City),
		State:        strings.TrimSpace(input.State),
		PostalCode:   strings.TrimSpace(input.PostalCode),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Address{}, common.NewAppError("NOT_FOUND", "address not found", http.StatusNotFound, nil)
		}
		return Address{}, err
	}
	return convertAddress(updated), nil
}

// Delete removes an address.
func (s *Service) Delete(ctx context.Context, userID, addressID string) error {
	uid, err := common.ToPgUUID(userID)
	if err != nil {
		return common.NewAppError("UNAUTHORIZED", "unauthorized", http.StatusUnauthorized, nil)
	}
	aid, err := common.ToPgUUID(addressID)
	if err != nil {
		return common.NewAppError("NOT_FOUND", "address not found", http.StatusNotFound, nil)
	}
	if _, err := s.Q.GetAddressByIDForUser(ctx, dbgen.GetAddressByIDForUserParams{ID: aid, UserID: uid}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.NewAppError("NOT_FOUND", "address not found", http.StatusNotFound, nil)
		}
		return err
	}
	return s.Q.DeleteAddress(ctx, dbgen.DeleteAddressParams{ID: aid, UserID: uid})
}

func validateInput(input AddressInput) error {
	switch {
	case strings.TrimSpace(input.ReceiverName) == "":
		return common.NewAppError("VALIDATION_ERROR", "receiverName is required", http.StatusBadRequest, nil)
	case strings.TrimSpace(input.Phone) == "":
		return common.NewAppError("VALIDATION_ERROR", "phone is required", http.StatusBadRequest, nil)
	case strings.TrimSpace(input.AddressLine1) == "":
		return common.NewAppError("VALIDATION_ERROR", "addressLine1 is required", http.StatusBadRequest, nil)
	case strings.TrimSpace(input.City) == "":
		return common.NewAppError("VALIDATION_ERROR", "city is required", http.StatusBadRequest, nil)
	case strings.TrimSpace(input.PostalCode) == "":
		return common.NewAppError("VALIDATION_ERROR", "postalCode is required", http.StatusBadRequest, nil)
	}
	return nil
}

func convertAddress(row dbgen.Address) Address {
	addr := Address{
		ID:           common.UUIDString(row.ID),
		ReceiverName: row.ReceiverName,
		Phone:        row.Phone,
		AddressLine1: row.AddressLine1,
		City:         row.City,
		State:        row.State,
		PostalCode:   row.PostalCode,
	}
	if row.AddressLine2.Valid {
		addr.AddressLine2 = row.AddressLine2.String
	}
	if row.CreatedAt.Valid {
		addr.CreatedAt = row.CreatedAt.Time
	}
	if row.UpdatedAt.Valid {
		addr.UpdatedAt = row.UpdatedAt.Time
	}
	return addr
}
