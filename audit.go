package wallet

import (
	"slices"
	"time"
)

// MaxAuditEntries is the capacity of the audit trail. Older entries are evicted.
const MaxAuditEntries = 500

// AuditAction names what happened to the audited target.
type AuditAction string

const (
	ActionAdd     AuditAction = "ADD"
	ActionUpdate  AuditAction = "UPDATE"
	ActionDelete  AuditAction = "DELETE"
	ActionCollect AuditAction = "COLLECT"
	ActionPay     AuditAction = "PAY"
	ActionPayout  AuditAction = "PAYOUT"
	ActionRedeem  AuditAction = "REDEEM"
	ActionReset   AuditAction = "RESET"
	ActionImport  AuditAction = "IMPORT"
)

// Audit target types.
const (
	TargetTransaction = "transaction"
	TargetInstallment = "installment"
	TargetReceivable  = "receivable"
	TargetCertificate = "certificate"
	TargetBudget      = "budget"
	TargetSubCategory = "sub-category"
	TargetMetal       = "metal"
	TargetSettings    = "settings"
	TargetSecurity    = "security"
	TargetSystem      = "system"
	TargetData        = "data"
)

// AuditEntry is one line of the audit trail.
type AuditEntry struct {
	ID         string      `json:"id"`
	Timestamp  time.Time   `json:"timestamp"`
	Action     AuditAction `json:"action"`
	TargetType string      `json:"targetType"`
	TargetName string      `json:"targetName"`
	Details    string      `json:"details,omitempty"`
}

// prependAudit inserts e at the head of logs and evicts the oldest entries
// beyond MaxAuditEntries.
func prependAudit(logs []AuditEntry, e AuditEntry) []AuditEntry {
	logs = slices.Insert(logs, 0, e)
	if len(logs) > MaxAuditEntries {
		logs = slices.Clip(logs[:MaxAuditEntries])
	}
	return logs
}

// record appends an entry to the audit trail.
func (w *Wallet) record(action AuditAction, targetType, targetName, details string) {
	w.state.AuditLogs = prependAudit(w.state.AuditLogs, AuditEntry{
		ID:         w.newID(),
		Timestamp:  w.now(),
		Action:     action,
		TargetType: targetType,
		TargetName: targetName,
		Details:    details,
	})
}

// AuditLog returns the audit trail, newest first.
func (w *Wallet) AuditLog() []AuditEntry { return w.state.AuditLogs }
