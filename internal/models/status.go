package models

import "fmt"

// AuditStatus is the lifecycle state of an audit. The set is closed: the
// analysis pipeline owns the transitions (pending -> analyzing -> completed
// or failed) and this service refuses to record anything outside it.
type AuditStatus string

const (
	AuditStatusPending   AuditStatus = "pending"
	AuditStatusAnalyzing AuditStatus = "analyzing"
	AuditStatusCompleted AuditStatus = "completed"
	AuditStatusFailed    AuditStatus = "failed"
)

// ParseAuditStatus decodes a raw status string at the boundary. Unknown
// values are an error rather than a silently-carried string.
func ParseAuditStatus(s string) (AuditStatus, error) {
	switch AuditStatus(s) {
	case AuditStatusPending, AuditStatusAnalyzing, AuditStatusCompleted, AuditStatusFailed:
		return AuditStatus(s), nil
	}
	return "", fmt.Errorf("unknown audit status %q", s)
}

// IsTerminal reports whether no further transitions are expected.
func (s AuditStatus) IsTerminal() bool {
	return s == AuditStatusCompleted || s == AuditStatusFailed
}
