package security

// Severity is derived from EventType, never user-provided.
type Severity string

const (
	SeverityINFO   Severity = "INFO"
	SeverityMEDIUM Severity = "MEDIUM"
	SeverityWARN   Severity = "WARN"
	SeverityHIGH   Severity = "HIGH"
)

var EventSeverityMap = map[EventType]Severity{
	EventAccountProvisioned: SeverityINFO,
	EventPaymentNotified:    SeverityINFO,

	EventRateLimitTriggered: SeverityWARN,
	EventUnauthorizedAccess: SeverityWARN,

	EventForbiddenRecord: SeverityHIGH,
	EventWebhookRejected: SeverityHIGH,
}

var severityRank = map[Severity]int{
	SeverityINFO:   0,
	SeverityMEDIUM: 1,
	SeverityWARN:   2,
	SeverityHIGH:   3,
}

// GetSeverity returns the severity for an event type, MEDIUM when unmapped.
func GetSeverity(eventType EventType) Severity {
	if severity, ok := EventSeverityMap[eventType]; ok {
		return severity
	}
	return SeverityMEDIUM
}

// AtLeast reports whether s is as severe as min. Unknown values rank as
// MEDIUM.
func (s Severity) AtLeast(min Severity) bool {
	rank, ok := severityRank[s]
	if !ok {
		rank = severityRank[SeverityMEDIUM]
	}
	return rank >= severityRank[min]
}
