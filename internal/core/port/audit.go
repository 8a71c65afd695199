package port

import "context"

// AuditEntry is one recorded tool invocation.
type AuditEntry struct {
	Tool        string
	Environment string
	DurationMS  int64
	Findings    int
	Err         error
}

// Auditor records tool invocations. Implementations must be best-effort:
// audit I/O never fails the request.
type Auditor interface {
	Record(ctx context.Context, entry AuditEntry)
}

// NoopAuditor discards all audit entries.
type NoopAuditor struct{}

func (NoopAuditor) Record(context.Context, AuditEntry) {}
