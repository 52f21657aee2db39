package entities

import "time"

const (
	AuditEntityEstimate = "estimate"

	AuditActionCreated         = "created"
	AuditActionUpdated         = "updated"
	AuditActionStatusChanged   = "status_changed"
	AuditActionApprovalRevoked = "approval_revoked"

	AuditActorAdmin = "admin"
)

// AuditEvent is an append-only record of something that happened to an entity.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (entity_id-index): entity_id, sorted by created_seq (created_at + write position)
type AuditEvent struct {
	ID        string         `json:"id"`
	Entity    string         `json:"entity"`
	EntityID  string         `json:"entity_id"`
	Action    string         `json:"action"`
	Actor     string         `json:"actor"`
	Meta      map[string]any `json:"meta,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
