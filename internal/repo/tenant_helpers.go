package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/noah-isme/storefront-core/internal/tenant"
)

var (
	// ErrTenantMissing indicates the store identifier was not found in context.
	ErrTenantMissing = errors.New("tenant missing")
	// ErrTenantInvalid indicates the store identifier could not be parsed.
	ErrTenantInvalid = errors.New("tenant invalid")
	// ErrInvalidID indicates an entity identifier in the request is not a uuid.
	ErrInvalidID = errors.New("invalid id")
)

// StoreID returns the store of the current request as a database UUID.
func StoreID(ctx context.Context) (pgtype.UUID, error) {
	return tenantUUIDFromContext(ctx)
}

func tenantUUIDFromContext(ctx context.Context) (pgtype.UUID, error) {
	tenantID, ok := tenant.From(ctx)
	if !ok {
		return pgtype.UUID{}, ErrTenantMissing
	}
	tid, err := uuidValue(tenantID)
	if err != nil {
		return pgtype.UUID{}, fmt.Errorf("%w: %v", ErrTenantInvalid, err)
	}
	return tid, nil
}

func uuidValue(id string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{}, err
	}
	var tid pgtype.UUID
	tid.Bytes = parsed
	tid.Valid = true
	return tid, nil
}

// IsTenantError reports whether err came from a missing or malformed store id.
func IsTenantError(err error) bool {
	return errors.Is(err, ErrTenantMissing) || errors.Is(err, ErrTenantInvalid)
}

func parseID(id string) (pgtype.UUID, error) {
	parsed, err := uuidValue(id)
	if err != nil {
		return pgtype.UUID{}, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	return parsed, nil
}
