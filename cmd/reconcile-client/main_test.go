package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/reconciliation-service/internal/client"
	"github.com/guttosm/reconciliation-service/internal/domain/model"
	apihttp "github.com/guttosm/reconciliation-service/internal/http"
	"github.com/guttosm/reconciliation-service/internal/service"
)

const sampleInvoices = `1;100;ACME;5.00;2024-01-01 00:00:00
2;100;ACME;5.00;2024-01-02 00:00:00
3;200;Globex;10.00;2024-01-03 00:00:00
4;300;Initech;3.25;2024-01-04 00:00:00
`

func startService(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := apihttp.DefaultRouterConfig()
	cfg.Routes = []apihttp.RouteGroup{apihttp.NewReconcileRoutes(apihttp.NewHandler(service.NewReconcilerService()))}
	srv := httptest.NewServer(apihttp.NewRouter(apihttp.NewHealthHandler(), cfg))
	t.Cleanup(srv.Close)
	return srv.URL + "/api/reconcile"
}

func writeInvoices(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "invoices.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReconcileCommand(t *testing.T) {
	url := startService(t)
	file := writeInvoices(t, sampleInvoices)
	report := filepath.Join(t.TempDir(), "report.json")

	out, err := execute(t, "reconcile",
		"--url", url,
		"--file", file,
		"--target", "10.00",
		"--tolerance", "0",
		"--seed", "7",
		"--output", report,
	)
	require.NoError(t, err)

	assert.Contains(t, out, "AMBIGUITY_DETECTED (2 unique solutions found)")
	assert.Contains(t, out, "Mode:       backtracking")
	assert.Contains(t, out, "largest-first")
	assert.Contains(t, out, "Report saved to "+report)

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	var saved model.Report
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Equal(t, 2, saved.UniqueSolutions)
	require.Len(t, saved.SolutionsByStrategy, len(model.ReportOrder))
	for i, slot := range saved.SolutionsByStrategy {
		assert.Equal(t, model.ReportOrder[i], slot.Strategy)
	}
	assert.Equal(t, 0.0, saved.Metadata.Tolerance)
}

func TestReconcileCommand_Threshold(t *testing.T) {
	url := startService(t)
	file := writeInvoices(t, sampleInvoices)

	out, err := execute(t, "reconcile", "--url", url, "--file", file, "--target", "12", "--threshold", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "Mode:       greedy")
	assert.Contains(t, out, string(model.StatusGreedySolution))
}

func TestReconcileCommand_Errors(t *testing.T) {
	url := startService(t)
	file := writeInvoices(t, sampleInvoices)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing required flags",
			args:    []string{"reconcile", "--url", url},
			wantErr: `required flag(s) "file", "target" not set`,
		},
		{
			name:    "invalid target",
			args:    []string{"reconcile", "--url", url, "--file", file, "--target", "lots"},
			wantErr: `invalid --target "lots"`,
		},
		{
			name:    "invalid tolerance",
			args:    []string{"reconcile", "--url", url, "--file", file, "--target", "1", "--tolerance", "x"},
			wantErr: `invalid --tolerance "x"`,
		},
		{
			name:    "malformed row names file and row",
			args:    []string{"reconcile", "--url", url, "--file", writeInvoices(t, "1;1;S;10;2024-01-01\n2;1;S;abc;2024-01-01\n"), "--target", "1"},
			wantErr: `invoices.csv:2: Amount`,
		},
		{
			name:    "service rejects request",
			args:    []string{"reconcile", "--url", url, "--file", file, "--target", "1e20"},
			wantErr: "status 400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHealthCommand(t *testing.T) {
	url := startService(t)

	out, err := execute(t, "health", "--url", url)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "is healthy\n"))

	_, err = execute(t, "health", "--url", "http://127.0.0.1:1/api/reconcile", "--timeout", "200ms")
	assert.Error(t, err)
}

func TestRootCmd_DefaultURLFromEnv(t *testing.T) {
	t.Setenv(serviceURLEnv, "http://reco.internal:9000/api/reconcile")

	flag := newRootCmd().PersistentFlags().Lookup("url")

	require.NotNil(t, flag)
	assert.Equal(t, "http://reco.internal:9000/api/reconcile", flag.DefValue)
}

func TestRootCmd_DefaultURL(t *testing.T) {
	t.Setenv(serviceURLEnv, "")

	flag := newRootCmd().PersistentFlags().Lookup("url")

	assert.Equal(t, client.DefaultURL, flag.DefValue)
}
