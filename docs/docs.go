// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "url": "https://github.com/guttosm/reconciliation-service"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/reconcile": {
            "post": {
                "description": "Finds the invoice subsets whose sum lies within tolerance of the target and assigns a distinct solution to each selection strategy. Above the backtracking threshold, or when the search deadline expires, a greedy selection is used instead.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Reconciliation"],
                "summary": "Reconcile invoices against a target amount",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Request id echoed in the response",
                        "name": "X-Request-ID",
                        "in": "header"
                    },
                    {
                        "description": "Target amount and invoices",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.ReconcileRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Reconciliation report",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/dto.SuccessResponse"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/model.Report"}}}
                            ]
                        }
                    },
                    "400": {"description": "Malformed body", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "504": {"description": "Request timed out", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/logs": {
            "get": {
                "description": "Returns stored request-log entries, newest first. Only mounted when the MongoDB log store is enabled.",
                "produces": ["application/json"],
                "tags": ["Logs"],
                "summary": "Query request logs",
                "parameters": [
                    {"type": "string", "name": "request_id", "in": "query"},
                    {"type": "string", "name": "kind", "in": "query"},
                    {"type": "string", "name": "level", "in": "query"},
                    {"type": "string", "name": "method", "in": "query"},
                    {"type": "string", "name": "path", "in": "query"},
                    {"type": "string", "format": "date-time", "name": "since", "in": "query"},
                    {"type": "string", "format": "date-time", "name": "until", "in": "query"},
                    {"type": "integer", "minimum": 0, "name": "limit", "in": "query"},
                    {"type": "integer", "minimum": 0, "name": "skip", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "Matching entries",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/dto.SuccessResponse"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/dto.LogsResponse"}}}
                            ]
                        }
                    },
                    "400": {"description": "Invalid query parameters", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "503": {"description": "Log store unavailable", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "Process is serving"}}
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "Ready, possibly degraded"},
                    "503": {"description": "A dependency check failed"}
                }
            }
        }
    },
    "definitions": {
        "dto.InvoiceInput": {
            "type": "object",
            "properties": {
                "ID": {"description": "Number or string, defaults to 0"},
                "Customer": {"description": "Number or string, defaults to 0"},
                "Supplier": {"description": "Number or string, defaults to N/A"},
                "Amount": {"type": "number", "example": 1000.25},
                "Amount_Cents": {"type": "integer", "example": 100025},
                "Date": {"type": "string", "example": "2024-01-15 10:30:00"}
            }
        },
        "dto.ReconcileRequest": {
            "type": "object",
            "required": ["target_amount", "invoices"],
            "properties": {
                "target_amount": {"type": "number", "example": 2051},
                "tolerance": {"type": "number", "example": 2},
                "backtracking_threshold": {"type": "integer", "example": 40},
                "solution_limit": {"type": "integer", "example": 10},
                "seed": {"type": "integer", "example": 42},
                "invoices": {"type": "array", "items": {"$ref": "#/definitions/dto.InvoiceInput"}}
            }
        },
        "dto.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "request_id": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid_request"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}},
                "request_id": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"}
            }
        },
        "dto.LogsResponse": {
            "type": "object",
            "properties": {
                "entries": {"type": "array", "items": {"$ref": "#/definitions/model.LogEntry"}},
                "total": {"type": "integer"},
                "limit": {"type": "integer"},
                "skip": {"type": "integer"}
            }
        },
        "model.LogEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"},
                "kind": {"type": "string", "example": "http_request"},
                "level": {"type": "string", "example": "info"},
                "message": {"type": "string"},
                "request_id": {"type": "string"},
                "method": {"type": "string"},
                "path": {"type": "string"},
                "status_code": {"type": "integer"},
                "duration_ms": {"type": "integer"},
                "ip": {"type": "string"},
                "user_agent": {"type": "string"},
                "error": {"type": "string"},
                "invoice_count": {"type": "integer"},
                "mode": {"type": "string"},
                "status": {"type": "string"},
                "fields": {"type": "object"}
            }
        },
        "model.Metadata": {
            "type": "object",
            "properties": {
                "input_file": {"type": "string", "example": "payload-data"},
                "target_amount": {"type": "number", "example": 2051},
                "backtracking_threshold": {"type": "integer", "example": 40},
                "set_tolerance": {"type": "number", "example": 2},
                "solution_limit": {"type": "integer", "example": 10},
                "mode": {"type": "string", "example": "backtracking"},
                "execution_timestamp": {"type": "string", "example": "2025-01-28T10:00:00Z"}
            }
        },
        "model.AuditEntry": {
            "type": "object",
            "properties": {
                "ID": {"type": "string"},
                "Amount": {"type": "number"},
                "Date": {"type": "string"},
                "Customer": {"type": "string"},
                "Supplier": {"type": "string"}
            }
        },
        "model.SuggestionEntry": {
            "type": "object",
            "properties": {
                "ID": {"type": "string"},
                "Amount": {"type": "number"}
            }
        },
        "model.FormattedSolution": {
            "type": "object",
            "properties": {
                "total_sum": {"type": "number"},
                "discrepancy": {"type": "number"},
                "paid_invoices_count": {"type": "integer"},
                "invoices_audit_trail": {"type": "array", "items": {"$ref": "#/definitions/model.AuditEntry"}},
                "discrepancy_suggestions": {"type": "array", "items": {"$ref": "#/definitions/model.SuggestionEntry"}}
            }
        },
        "model.Report": {
            "type": "object",
            "properties": {
                "metadata": {"$ref": "#/definitions/model.Metadata"},
                "status": {"type": "string", "example": "AMBIGUITY_DETECTED (2 unique solutions found)"},
                "unique_solutions": {"type": "integer", "example": 2},
                "solutions_by_strategy": {
                    "description": "Keys in fixed order: largest-first, oldest-first, smallest-first, youngest-first, random, greedy",
                    "type": "object",
                    "additionalProperties": {"$ref": "#/definitions/model.FormattedSolution"}
                }
            }
        }
    },
    "tags": [
        {"description": "Invoice reconciliation", "name": "Reconciliation"},
        {"description": "Stored request logs", "name": "Logs"},
        {"description": "Health check endpoints", "name": "Health"}
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Reconciliation Service API",
	Description:      "Matches invoices against a payment amount by subset sum within a tolerance.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
