//go:build !integration

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/reconciliation-service/internal/domain/dto"
	"github.com/guttosm/reconciliation-service/internal/middleware"
)

type sampleRequest struct {
	Name string `json:"name"`
}

var errEmptyName = errors.New("name is required")

func (r *sampleRequest) Validate() error {
	if r.Name == "" {
		return errEmptyName
	}
	return nil
}

type sampleQuery struct {
	Page int `form:"page" binding:"omitempty,min=1"`
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestBuildRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{name: "valid body", body: `{"name": "acme"}`, want: "acme"},
		{name: "malformed body", body: `{"name": `, wantErr: dto.ErrInvalidBody},
		{name: "wrong type", body: `{"name": 5}`, wantErr: dto.ErrInvalidBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodPost, "/", tt.body)

			req, err := BuildRequest[sampleRequest](c)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, req)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Name)
		})
	}
}

func TestBuildRequestAndValidate(t *testing.T) {
	c, _ := newTestContext(http.MethodPost, "/", `{"name": ""}`)
	_, err := BuildRequestAndValidate[sampleRequest](c)
	assert.ErrorIs(t, err, errEmptyName)

	c, _ = newTestContext(http.MethodPost, "/", `{"name": "acme"}`)
	req, err := BuildRequestAndValidate[sampleRequest](c)
	require.NoError(t, err)
	assert.Equal(t, "acme", req.Name)
}

func TestBuildQuery(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/?page=3", "")
	q, err := BuildQuery[sampleQuery](c)
	require.NoError(t, err)
	assert.Equal(t, 3, q.Page)

	c, _ = newTestContext(http.MethodGet, "/?page=0", "")
	q, err = BuildQuery[sampleQuery](c)
	require.NoError(t, err)
	assert.Zero(t, q.Page)

	c, _ = newTestContext(http.MethodGet, "/?page=abc", "")
	_, err = BuildQuery[sampleQuery](c)
	assert.ErrorIs(t, err, dto.ErrInvalidQuery)
}

func TestResponseBuilder_Success(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/", "")
	c.Set(string(middleware.RequestIDKey), "req-9")

	NewResponseBuilder(c).Success(http.StatusCreated, gin.H{"ok": true})

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Data      map[string]bool `json:"data"`
		RequestID string          `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data["ok"])
	assert.Equal(t, "req-9", resp.RequestID)
}

func TestResponseBuilder_Error(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/", "")

	NewResponseBuilder(c).Error(dto.ErrMissingInvoices)

	assert.True(t, c.IsAborted())
	require.Len(t, c.Errors, 1)
	assert.ErrorIs(t, c.Errors.Last().Err, dto.ErrMissingInvoices)
	assert.False(t, c.Writer.Written())
	assert.Empty(t, w.Body.String())
}
