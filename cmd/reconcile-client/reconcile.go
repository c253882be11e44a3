package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/guttosm/reconciliation-service/internal/client"
	"github.com/guttosm/reconciliation-service/internal/domain/dto"
	"github.com/guttosm/reconciliation-service/internal/domain/model"
	"github.com/guttosm/reconciliation-service/internal/loader"
	"github.com/guttosm/reconciliation-service/internal/logger"
)

type reconcileOptions struct {
	file      string
	target    string
	tolerance string
	threshold int
	limit     int
	seed      uint64
	output    string
}

func newReconcileCmd(root *rootOptions) *cobra.Command {
	opts := &reconcileOptions{}

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Find the invoices paid by a transfer",
		Example: `  # Exact match against a sample file
  reconcile-client reconcile --file invoices.csv --target 2051.00 --tolerance 0

  # Force the greedy selector and keep the full report
  reconcile-client reconcile --file invoices.csv --target 40000 --threshold 10 --output report.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := opts.request(cmd)
			if err != nil {
				return err
			}
			return runReconcile(cmd, root.client(), req, opts.output)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", "", "invoice file (ID;Customer;Supplier;Amount;Date, no header)")
	flags.StringVarP(&opts.target, "target", "t", "", "transferred amount")
	flags.StringVar(&opts.tolerance, "tolerance", "", "accepted difference to the target (service default when unset)")
	flags.IntVar(&opts.threshold, "threshold", 0, "largest invoice count searched exhaustively (service default when unset)")
	flags.IntVar(&opts.limit, "limit", 0, "maximum number of exact solutions (service default when unset)")
	flags.Uint64Var(&opts.seed, "seed", 0, "seed for the random strategy")
	flags.StringVarP(&opts.output, "output", "o", "", "write the JSON report to this file")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func (o *reconcileOptions) request(cmd *cobra.Command) (dto.ReconcileRequest, error) {
	target, err := decimal.NewFromString(o.target)
	if err != nil {
		return dto.ReconcileRequest{}, fmt.Errorf("invalid --target %q: %w", o.target, err)
	}

	invoices, err := loader.LoadFile(o.file)
	if err != nil {
		return dto.ReconcileRequest{}, err
	}

	req := dto.ReconcileRequest{
		TargetAmount: &target,
		Invoices:     invoices,
	}

	flags := cmd.Flags()
	if flags.Changed("tolerance") {
		tolerance, err := decimal.NewFromString(o.tolerance)
		if err != nil {
			return dto.ReconcileRequest{}, fmt.Errorf("invalid --tolerance %q: %w", o.tolerance, err)
		}
		req.Tolerance = &tolerance
	}
	if flags.Changed("threshold") {
		req.BacktrackingThreshold = &o.threshold
	}
	if flags.Changed("limit") {
		req.SolutionLimit = &o.limit
	}
	if flags.Changed("seed") {
		req.Seed = &o.seed
	}
	return req, nil
}

func runReconcile(cmd *cobra.Command, c *client.Client, req dto.ReconcileRequest, output string) error {
	log := logger.WithComponent("reconcile")
	out := cmd.OutOrStdout()

	log.Info().
		Str("target", req.TargetAmount.String()).
		Int("invoices", len(req.Invoices)).
		Str("url", c.Endpoint()).
		Msg("starting reconciliation")

	start := time.Now()
	result, err := c.Reconcile(cmd.Context(), req)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.RequestID != "" {
			return fmt.Errorf("%w (request id %s)", err, apiErr.RequestID)
		}
		return err
	}

	printSummary(out, result, time.Since(start))

	if output != "" {
		if err := writeReport(output, result.Raw); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "\nReport saved to %s\n", output)
	}
	return nil
}

func printSummary(out io.Writer, result *client.Result, elapsed time.Duration) {
	report := result.Report
	meta := report.Metadata

	_, _ = fmt.Fprintf(out, "Status:     %s\n", report.Status)
	_, _ = fmt.Fprintf(out, "Mode:       %s\n", meta.Mode)
	_, _ = fmt.Fprintf(out, "Target:     %.2f (tolerance %.2f)\n", meta.TargetAmount, meta.Tolerance)
	_, _ = fmt.Fprintf(out, "Request ID: %s\n", result.RequestID)
	_, _ = fmt.Fprintf(out, "Elapsed:    %s\n\n", elapsed.Round(time.Millisecond))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "STRATEGY\tINVOICES\tTOTAL\tDISCREPANCY\tIDS")
	for _, slot := range report.SolutionsByStrategy {
		sol := slot.Solution
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%s\n",
			slot.Strategy, sol.PaidInvoicesCount, sol.TotalSum, sol.Discrepancy, auditIDs(sol.InvoicesAuditTrail))
	}
	_ = tw.Flush()
}

func auditIDs(trail []model.AuditEntry) string {
	if len(trail) == 0 {
		return "-"
	}
	ids := make([]string, len(trail))
	for i, entry := range trail {
		ids[i] = entry.ID
	}
	return strings.Join(ids, ",")
}

// writeReport indents the report as received, keeping the strategy key order.
func writeReport(path string, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("format report: %w", err)
	}
	buf.WriteByte('\n')
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
