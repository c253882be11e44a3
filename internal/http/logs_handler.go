package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/reconciliation-service/internal/domain/dto"
	"github.com/guttosm/reconciliation-service/internal/service"
)

// LogsHandler serves stored request-log entries.
type LogsHandler struct {
	loggingService service.LoggingService
}

// NewLogsHandler creates a new LogsHandler.
func NewLogsHandler(loggingService service.LoggingService) *LogsHandler {
	return &LogsHandler{loggingService: loggingService}
}

// QueryLogs handles GET /api/logs.
//
// Supported filters: request_id, kind, level, method, path, since, until (RFC3339),
// limit and skip. Entries are returned newest first together with the total match count.
//
// @Summary      Query request logs
// @Tags         Logs
// @Produce      json
// @Param        request_id query string false "Request id"
// @Param        kind       query string false "Entry kind"
// @Param        level      query string false "Log level"
// @Param        since      query string false "RFC3339 lower bound"
// @Param        until      query string false "RFC3339 upper bound"
// @Param        limit      query int    false "Page size"
// @Param        skip       query int    false "Entries to skip"
// @Success      200 {object} dto.SuccessResponse{data=dto.LogsResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure      503 {object} dto.ErrorResponse "Log store unavailable"
// @Router       /api/logs [get]
func (h *LogsHandler) QueryLogs(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildQuery[dto.LogsQueryRequest](c)
	if err != nil {
		builder.Error(err)
		return
	}

	opts := req.ToQueryOptions()
	ctx := c.Request.Context()

	entries, err := h.loggingService.QueryLogs(ctx, opts)
	if err != nil {
		builder.Error(err)
		return
	}

	total, err := h.loggingService.CountLogs(ctx, opts)
	if err != nil {
		builder.Error(err)
		return
	}

	limit := opts.Limit
	if limit <= 0 || limit > service.MaxLogQueryLimit {
		limit = service.MaxLogQueryLimit
	}

	builder.SuccessOK(dto.LogsResponse{
		Entries: entries,
		Total:   total,
		Limit:   limit,
		Skip:    opts.Skip,
	})
}
