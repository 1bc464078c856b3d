package security

import "go.uber.org/zap/zapcore"

// Severity represents the severity level of a security event
// This is derived from EventType, NOT user-provided
type Severity string

const (
	SeverityINFO Severity = "INFO"
	SeverityWARN Severity = "WARN"
	SeverityHIGH Severity = "HIGH"
)

// EventSeverityMap defines the hard-coded severity for each event type
var EventSeverityMap = map[EventType]Severity{
	EventContactHandoff: SeverityINFO,
	EventSessionClosed:  SeverityINFO,

	EventRateLimitTriggered: SeverityWARN,
	EventValidationFailed:   SeverityWARN,
	EventHandoffFailed:      SeverityWARN,

	EventCSRFViolation: SeverityHIGH,
}

// GetSeverity returns the severity for an event type; unmapped types are WARN
func GetSeverity(eventType EventType) Severity {
	if severity, ok := EventSeverityMap[eventType]; ok {
		return severity
	}
	return SeverityWARN
}

func levelFor(eventType EventType) zapcore.Level {
	switch GetSeverity(eventType) {
	case SeverityINFO:
		return zapcore.InfoLevel
	case SeverityHIGH:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
