package audit

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
	"github.com/noah-isme/storefront-core/internal/obs"
)

// Store defines the database operations required for auditing.
type Store interface {
	InsertAuditEvent(ctx context.Context, arg dbgen.InsertAuditEventParams) error
	ListAuditEvents(ctx context.Context, arg dbgen.ListAuditEventsParams) ([]dbgen.AuditEvent, error)
}

// Entry describes one audited action.
type Entry struct {
	StoreID     pgtype.UUID
	ActorUserID string
	Action      string
	Entity      string
	EntityID    string
	Metadata    map[string]any
}

// Recorder is implemented by Service; domain packages depend on this instead of the concrete type.
type Recorder interface {
	Record(ctx context.Context, e Entry)
}

// Service persists audit events. Failures are logged and never reach the caller.
type Service struct {
	Store   Store
	Enabled bool
	Logger  zerolog.Logger
}

// Record inserts an audit event when auditing is enabled.
func (s Service) Record(ctx context.Context, e Entry) {
	if !s.Enabled || s.Store == nil {
		return
	}
	action := strings.TrimSpace(e.Action)
	entity := strings.TrimSpace(e.Entity)
	if action == "" || entity == "" {
		s.Logger.Warn().Str("action", action).Str("entity", entity).Msg("audit entry missing action or entity")
		return
	}
	err := s.Store.InsertAuditEvent(ctx, dbgen.InsertAuditEventParams{
		StoreID:     e.StoreID,
		ActorUserID: toNullUUID(e.ActorUserID),
		Action:      action,
		Entity:      entity,
		EntityID:    toNullText(e.EntityID),
		Metadata:    toJSONB(e.Metadata),
	})
	if err != nil {
		obs.ObserveAuditFailure()
		s.Logger.Warn().Err(err).Str("action", action).Str("entity", entity).Str("entity_id", e.EntityID).Msg("audit write failed")
	}
}

func toNullUUID(value string) pgtype.UUID {
	value = strings.TrimSpace(value)
	if value == "" {
		return pgtype.UUID{}
	}
	parsed, err := uuid.Parse(value)
	if err != nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}
}

func toNullText(value string) pgtype.Text {
	value = strings.TrimSpace(value)
	if value == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: value, Valid: true}
}

func toJSONB(metadata map[string]any) []byte {
	if len(metadata) == 0 {
		return []byte("{}")
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return []byte("{}")
	}
	return data
}
