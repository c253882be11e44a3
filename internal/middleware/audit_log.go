package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/reconciliation-service/internal/domain/model"
)

// AuditReconciliation enqueues the outcome of a reconciliation. Only counts and
// classifications are recorded, never invoice data.
func AuditReconciliation(sink *AsyncLogger, c *gin.Context, invoiceCount int, report model.Report, duration time.Duration) {
	if sink == nil {
		return
	}

	entry := newAuditEntry(c, "info", "reconciliation completed")
	entry.InvoiceCount = invoiceCount
	entry.Mode = report.Metadata.Mode
	entry.Status = string(report.StatusCode())
	entry.DurationMS = duration.Milliseconds()
	entry.WithField("unique_solutions", report.UniqueSolutions)

	sink.Log(entry)
}

// AuditReconciliationError enqueues a rejected reconciliation request.
func AuditReconciliationError(sink *AsyncLogger, c *gin.Context, err error) {
	if sink == nil || err == nil {
		return
	}

	entry := newAuditEntry(c, "warn", "reconciliation rejected")
	entry.Error = err.Error()

	sink.Log(entry)
}

func newAuditEntry(c *gin.Context, level, message string) *model.LogEntry {
	return &model.LogEntry{
		Timestamp: time.Now().UTC(),
		Kind:      model.LogKindReconcile,
		Level:     level,
		Message:   message,
		RequestID: GetRequestID(c),
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
