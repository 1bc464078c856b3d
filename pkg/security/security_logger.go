package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventCSRFViolation      EventType = "csrf_violation"
	EventValidationFailed   EventType = "validation_failed"
	EventContactHandoff     EventType = "contact_handoff"
	EventHandoffFailed      EventType = "contact_handoff_failed"
	EventSessionClosed      EventType = "session_closed"
)

// SecurityEvent represents a security-related event to be logged
type SecurityEvent struct {
	Timestamp    time.Time
	Event        EventType
	SubjectType  string // "email", "ip", "session"
	SubjectValue string // masked or hashed before it reaches the log
	IP           string
	UserAgent    string
	RequestID    string
	Details      map[string]any
}

// SecurityLogger writes security events as structured zap entries
type SecurityLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = NewSecurityLogger(zap.NewNop(), "balkan-spine-wellness", "development")
)

// NewSecurityLogger wraps an existing zap logger.
func NewSecurityLogger(zl *zap.Logger, serviceName, environment string) *SecurityLogger {
	return &SecurityLogger{
		zapLogger:   zl,
		serviceName: serviceName,
		environment: environment,
	}
}

// InitSecurityLogger builds the production zap logger and makes it the default
func InitSecurityLogger(serviceName, ginMode string) *SecurityLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"

	// Set output to stdout for container environments
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	zl, err := config.Build(zap.AddCaller())
	if err != nil {
		zl, _ = zap.NewProduction()
	}

	sl := NewSecurityLogger(zl, serviceName, environmentFor(ginMode))
	SetDefault(sl)
	return sl
}

// DefaultLogger returns the process wide security logger. It discards events
// until InitSecurityLogger or SetDefault is called.
func DefaultLogger() *SecurityLogger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

func SetDefault(sl *SecurityLogger) {
	defaultMu.Lock()
	defaultLogger = sl
	defaultMu.Unlock()
}

// Log logs a security event at the level derived from its severity
func (sl *SecurityLogger) Log(ctx context.Context, event SecurityEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	fields := []zap.Field{
		zap.String("service", sl.serviceName),
		zap.String("env", sl.environment),
		zap.String("event", string(event.Event)),
		zap.String("severity", string(GetSeverity(event.Event))),
		zap.Time("event_time", event.Timestamp),
	}
	if event.SubjectType != "" {
		fields = append(fields,
			zap.String("subject_type", event.SubjectType),
			zap.String("subject_value", maskValue(event.SubjectType, event.SubjectValue)),
		)
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}

	sl.zapLogger.Log(levelFor(event.Event), string(event.Event), fields...)
}

// LogRateLimitTriggered logs when rate limiting is triggered
func (sl *SecurityLogger) LogRateLimitTriggered(ctx context.Context, ip, userAgent, requestID, endpoint string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: ip,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]any{"endpoint": endpoint},
	})
}

// LogCSRFViolation logs a mutating request without a matching token
func (sl *SecurityLogger) LogCSRFViolation(ctx context.Context, ip, userAgent, requestID, path, reason string) {
	sl.Log(ctx, SecurityEvent{
		Event:     EventCSRFViolation,
		IP:        ip,
		UserAgent: userAgent,
		RequestID: requestID,
		Details:   map[string]any{"path": path, "reason": reason},
	})
}

// LogValidationFailed logs a rejected contact draft. Only field names are
// recorded, never the submitted values.
func (sl *SecurityLogger) LogValidationFailed(ctx context.Context, ip, requestID string, fields []string) {
	sl.Log(ctx, SecurityEvent{
		Event:     EventValidationFailed,
		IP:        ip,
		RequestID: requestID,
		Details:   map[string]any{"fields": fields},
	})
}

// LogContactHandoff logs a composed draft handed to the visitor's mail client
func (sl *SecurityLogger) LogContactHandoff(ctx context.Context, senderEmail, ip, requestID string, err error) {
	event := SecurityEvent{
		Event:        EventContactHandoff,
		SubjectType:  "email",
		SubjectValue: senderEmail,
		IP:           ip,
		RequestID:    requestID,
	}
	if err != nil {
		event.Event = EventHandoffFailed
		event.Details = map[string]any{"error": err.Error()}
	}
	sl.Log(ctx, event)
}

// LogSessionClosed logs a visitor session torn down by the page
func (sl *SecurityLogger) LogSessionClosed(ctx context.Context, sessionID, requestID string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventSessionClosed,
		SubjectType:  "session",
		SubjectValue: sessionID,
		RequestID:    requestID,
	})
}

// Sync flushes any buffered log entries
func (sl *SecurityLogger) Sync() error {
	return sl.zapLogger.Sync()
}

// --- Helper Functions ---

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if len(email) < 3 || at < 0 {
		return "***"
	}
	if at <= 1 {
		return "***" + email[at:]
	}
	return email[:1] + "***" + email[at:]
}

// HashValue creates a short SHA256 fingerprint of a value
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

func maskValue(subjectType, value string) string {
	switch subjectType {
	case "email":
		return MaskEmail(value)
	case "ip":
		return value
	default:
		return HashValue(value)
	}
}

func environmentFor(ginMode string) string {
	if ginMode == "release" {
		return "production"
	}
	return "development"
}
