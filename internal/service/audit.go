package service

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/academic-records/internal/queue"
)

// AuditLogger is the default AuditRecorder. Every entry is written to
// the process log immediately; when broker publishing is enabled the
// entry is also sent to the auth.login_attempts queue from a separate
// goroutine so a slow or dead broker cannot delay a login response.
type AuditLogger struct {
	PublishToBroker bool
}

func NewAuditLogger(publishToBroker bool) *AuditLogger {
	return &AuditLogger{PublishToBroker: publishToBroker}
}

// Record logs the attempt and, optionally, hands it to the broker.
// All failure paths end in a log line; nothing propagates back to the
// login flow.
func (a *AuditLogger) Record(ctx context.Context, e AuditEntry) {
	outcome := "NO"
	if e.Success {
		outcome = "SÍ"
	}
	log.Printf("[LOGIN] %s | usuario=%s | exitoso=%s | detalle=%q",
		e.Timestamp.Format(time.RFC3339), e.Identifier, outcome, e.Detail)

	if !a.PublishToBroker {
		return
	}
	// Detach from the request context: the audit record should still
	// be published after the response has been written.
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue.PublishLoginAttempt(pubCtx, queue.LoginAttemptEvent{
			Timestamp:  e.Timestamp.Format(time.RFC3339),
			Identifier: e.Identifier,
			Success:    e.Success,
			Detail:     e.Detail,
		})
	}()
}
