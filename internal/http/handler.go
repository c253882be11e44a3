package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/reconciliation-service/internal/domain/dto"
	"github.com/guttosm/reconciliation-service/internal/metrics"
	"github.com/guttosm/reconciliation-service/internal/middleware"
	"github.com/guttosm/reconciliation-service/internal/service"
)

// Handler provides the HTTP handler for reconciliation requests.
type Handler struct {
	reconciler service.Reconciler
	defaults   dto.ReconcileDefaults
	audit      *middleware.AsyncLogger
	now        func() time.Time
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithDefaults sets the values used for omitted request parameters.
func WithDefaults(defaults dto.ReconcileDefaults) HandlerOption {
	return func(h *Handler) {
		h.defaults = defaults
	}
}

// WithAuditLogger records every reconciliation outcome through the async logger.
func WithAuditLogger(al *middleware.AsyncLogger) HandlerOption {
	return func(h *Handler) {
		h.audit = al
	}
}

// WithHandlerClock overrides the clock used to stamp requests.
func WithHandlerClock(now func() time.Time) HandlerOption {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(reconciler service.Reconciler, opts ...HandlerOption) *Handler {
	h := &Handler{
		reconciler: reconciler,
		defaults:   dto.DefaultReconcileDefaults(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Reconcile handles POST /api/reconcile.
//
// The body is normalized into cent-denominated invoices, reconciled and answered with a
// report holding one slot per strategy. Malformed bodies are rejected with 400.
//
// @Summary      Reconcile invoices against a target amount
// @Description  Finds the invoice subsets whose sum lies within tolerance of the target and assigns a distinct solution to each selection strategy.
// @Tags         Reconciliation
// @Accept       json
// @Produce      json
// @Param        X-Request-ID header string false "Request id echoed in the response"
// @Param        request body dto.ReconcileRequest true "Target amount and invoices"
// @Success      200 {object} dto.SuccessResponse{data=model.Report} "Reconciliation report"
// @Failure      400 {object} dto.ErrorResponse "Malformed body"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      504 {object} dto.ErrorResponse "Request timed out"
// @Router       /api/reconcile [post]
func (h *Handler) Reconcile(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.ReconcileRequest](c)
	if err != nil {
		h.reject(c, builder, err)
		return
	}

	input, err := req.Normalize(h.now().UTC(), h.defaults)
	if err != nil {
		h.reject(c, builder, err)
		return
	}

	start := time.Now()
	report := h.reconciler.Reconcile(c.Request.Context(), input)
	middleware.AuditReconciliation(h.audit, c, len(input.Invoices), report, time.Since(start))

	builder.SuccessOK(report)
}

func (h *Handler) reject(c *gin.Context, builder *ResponseBuilder, err error) {
	metrics.RecordReconciliation(0, "none", "validation_error")
	middleware.AuditReconciliationError(h.audit, c, err)
	builder.Error(err)
}
