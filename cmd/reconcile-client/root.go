package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/guttosm/reconciliation-service/internal/client"
	"github.com/guttosm/reconciliation-service/internal/logger"
)

var version = "1.0.0"

// serviceURLEnv overrides the default reconcile endpoint.
const serviceURLEnv = "RECO_SERVICE_URL"

type rootOptions struct {
	url      string
	timeout  time.Duration
	logLevel string
	pretty   bool
}

func (o *rootOptions) client() *client.Client {
	return client.New(o.url, client.WithTimeout(o.timeout))
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "reconcile-client",
		Short: "Match bank transfers against invoice files",
		Long: `reconcile-client loads a semicolon separated invoice file, sends it to the
reconciliation service together with the transferred amount and prints which
invoices the transfer most likely pays.

The service endpoint defaults to $RECO_SERVICE_URL, or ` + client.DefaultURL + `.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger.Init(logger.Config{
				Level:  opts.logLevel,
				Pretty: opts.pretty,
				Output: cmd.ErrOrStderr(),
			})
		},
	}

	defaultURL := os.Getenv(serviceURLEnv)
	if defaultURL == "" {
		defaultURL = client.DefaultURL
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.url, "url", defaultURL, "reconcile endpoint URL")
	flags.DurationVar(&opts.timeout, "timeout", client.DefaultTimeout, "timeout of a single API call")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.BoolVar(&opts.pretty, "pretty", true, "human readable log output")

	cmd.AddCommand(
		newReconcileCmd(opts),
		newHealthCmd(opts),
	)
	return cmd
}
