package db

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestUUIDRoundTrip(t *testing.T) {
	id := uuid.New()
	parsed, err := ParseUUID(" " + id.String() + " ")
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	require.Equal(t, id.String(), UUIDString(parsed))

	_, err = ParseUUID("not-a-uuid")
	require.Error(t, err)
}

func TestTextTreatsBlankAsNull(t *testing.T) {
	require.False(t, Text("   ").Valid)
	require.Equal(t, "note", Text(" note ").String)
	require.Nil(t, StringPtr(TextPtr(nil)))
}

func TestTimestamptz(t *testing.T) {
	now := time.Now()
	ts := Timestamptz(&now)
	require.True(t, ts.Valid)
	require.Equal(t, now, *TimePtr(ts))
	require.Nil(t, TimePtr(Timestamptz(nil)))
}

func TestErrorClassifiers(t *testing.T) {
	require.True(t, IsNoRows(fmt.Errorf("wrap: %w", pgx.ErrNoRows)))
	require.True(t, IsUniqueViolation(fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23505"})))
	require.False(t, IsUniqueViolation(errors.New("boom")))
}

func TestMigrateURL(t *testing.T) {
	require.Equal(t, "pgx5://u:p@localhost:5432/app", migrateURL("postgres://u:p@localhost:5432/app"))
	require.Equal(t, "pgx5://localhost/app", migrateURL("postgresql://localhost/app"))
	require.Equal(t, "pgx5://already", migrateURL("pgx5://already"))
}
