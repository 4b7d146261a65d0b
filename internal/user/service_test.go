package user

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazaarlabs/backend-bazaar/internal/common"
	dbgen "github.com/bazaarlabs/backend-bazaar/internal/db/gen"
)

type stubQuerier struct {
	addresses []dbgen.Address
	created   *dbgen.CreateAddressParams
	updated   *dbgen.UpdateAddressParams
	deleted   *dbgen.DeleteAddressParams
	missing   bool
}

func (s *stubQuerier) ListAddressesForUser(_ context.Context, _ pgtype.UUID) ([]dbgen.Address, error) {
	return s.addresses, nil
}

func (s *stubQuerier) GetAddressByIDForUser(_ context.Context, arg dbgen.GetAddressByIDForUserParams) (dbgen.Address, error) {
	if s.missing {
		return dbgen.Address{}, pgx.ErrNoRows
	}
	return dbgen.Address{ID: arg.ID, UserID: arg.UserID}, nil
}

func (s *stubQuerier) CreateAddress(_ context.Context, arg dbgen.CreateAddressParams) (dbgen.Address, error) {
	s.created = &arg
	return dbgen.Address{
		ID:           arg.UserID,
		UserID:       arg.UserID,
		ReceiverName: arg.ReceiverName,
		Phone:        arg.Phone,
		AddressLine1: arg.AddressLine1,
		AddressLine2: arg.AddressLine2,
		City:         arg.City,
		State:        arg.State,
		PostalCode:   arg.PostalCode,
	}, nil
}

func (s *stubQuerier) UpdateAddress(_ context.Context, arg dbgen.UpdateAddressParams) (dbgen.Address, error) {
	if s.missing {
		return dbgen.Address{}, pgx.ErrNoRows
	}
	s.updated = &arg
	return dbgen.Address{ID: arg.ID, UserID: arg.UserID, ReceiverName: arg.ReceiverName}, nil
}

func (s *stubQuerier) DeleteAddress(_ context.Context, arg dbgen.DeleteAddressParams) error {
	s.deleted = &arg
	return nil
}

func validInput() AddressInput {
	return AddressInput{
		ReceiverName: "Asha Rao",
		Phone:        "+919876543210",
		AddressLine1: "12 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		PostalCode:   "560001",
	}
}

func TestCreateTrimsAndStoresAddress(t *testing.T) {
	q := &stubQuerier{}
	svc := &Service{Q: q}

	input := validInput()
	input.ReceiverName = "  Asha Rao  "
	input.AddressLine2 = " Flat 4B "

	created, err := svc.Create(context.Background(), uuid.NewString(), input)
	require.NoError(t, err)
	require.NotNil(t, q.created)
	assert.Equal(t, "Asha Rao", q.created.ReceiverName)
	assert.Equal(t, "Flat 4B", q.created.AddressLine2.String)
	assert.Equal(t, "Asha Rao", created.ReceiverName)
	assert.Equal(t, "Flat 4B", created.AddressLine2)
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	svc := &Service{Q: &stubQuerier{}}

	input := validInput()
	input.PostalCode = "   "

	_, err := svc.Create(context.Background(), uuid.NewString(), input)
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
}

func TestUpdateUnknownAddressReturnsNotFound(t *testing.T) {
	svc := &Service{Q: &stubQuerier{missing: true}}

	_, err := svc.Update(context.Background(), uuid.NewString(), uuid.NewString(), validInput())
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
}

func TestDeleteChecksOwnershipFirst(t *testing.T) {
	q := &stubQuerier{missing: true}
	svc := &Service{Q: q}

	err := svc.Delete(context.Background(), uuid.NewString(), uuid.NewString())
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.Nil(t, q.deleted)
}

func TestDeleteRemovesOwnedAddress(t *testing.T) {
	q := &stubQuerier{}
	svc := &Service{Q: q}

	require.NoError(t, svc.Delete(context.Background(), uuid.NewString(), uuid.NewString()))
	require.NotNil(t, q.deleted)
}

func TestListRejectsMalformedUserID(t *testing.T) {
	svc := &Service{Q: &stubQuerier{}}

	_, err := svc.List(context.Background(), "not-a-uuid")
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus)
}
