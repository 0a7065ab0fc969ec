package security

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const insertEvent = `
	INSERT INTO security_events (
		event_type, service, environment, level, severity,
		subject_type, subject_value, ip_address, user_agent,
		request_id, details, created_at
	) VALUES (
		@event_type, @service, @environment, @level, @severity,
		@subject_type, @subject_value, @ip_address, @user_agent,
		@request_id, @details, @created_at
	)`

// SecurityEventRepository stores security events in the security_events
// table.
type SecurityEventRepository struct {
	db *pgxpool.Pool
}

func NewSecurityEventRepository(db *pgxpool.Pool) *SecurityEventRepository {
	return &SecurityEventRepository{db: db}
}

func (r *SecurityEventRepository) PersistEvent(ctx context.Context, event SecurityEvent) error {
	if _, err := r.db.Exec(ctx, insertEvent, eventArgs(event)); err != nil {
		return fmt.Errorf("persist %s event: %w", event.Event, err)
	}
	return nil
}

// PersistFunc returns a SecurityLogger hook that only stores events at or
// above min. Everything else stays in the log stream.
func (r *SecurityEventRepository) PersistFunc(min Severity) func(context.Context, SecurityEvent) error {
	return func(ctx context.Context, event SecurityEvent) error {
		if !event.Severity.AtLeast(min) {
			return nil
		}
		return r.PersistEvent(ctx, event)
	}
}

func eventArgs(event SecurityEvent) pgx.NamedArgs {
	details := []byte("null")
	if len(event.Details) > 0 {
		if b, err := json.Marshal(event.Details); err == nil {
			details = b
		}
	}

	// inet column: empty string is not a valid address.
	var ip interface{}
	if event.IP != "" {
		ip = event.IP
	}

	return pgx.NamedArgs{
		"event_type":    string(event.Event),
		"service":       event.Service,
		"environment":   event.Environment,
		"level":         event.Level,
		"severity":      string(event.Severity),
		"subject_type":  event.SubjectType,
		"subject_value": event.SubjectValue,
		"ip_address":    ip,
		"user_agent":    event.UserAgent,
		"request_id":    event.RequestID,
		"details":       details,
		"created_at":    event.Timestamp,
	}
}
