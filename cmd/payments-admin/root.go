package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Apurer/marketplace-api/internal/paymentsview"
	"github.com/Apurer/marketplace-api/internal/platform/auth"
	platformobservability "github.com/Apurer/marketplace-api/internal/platform/observability"
)

type options struct {
	baseURL   string
	token     string
	jwtSecret string
	search    string
	sorts     []string
	tab       string
	timeout   time.Duration
	timezone  string
	logLevel  string
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "payments-admin",
		Short:         "Show marketplace payments as the admin portal does",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.baseURL, "url", envOr("MARKETPLACE_API_URL", "http://localhost:3001"), "marketplace API base URL")
	flags.StringVar(&opts.token, "token", os.Getenv("ADMIN_TOKEN"), "admin bearer token")
	flags.StringVar(&opts.jwtSecret, "jwt-secret", "", "mint a short-lived admin token with this HS256 secret when --token is empty")
	flags.StringVar(&opts.search, "search", "", "case-insensitive filter over buyer, seller, order id and payment method")
	flags.StringArrayVar(&opts.sorts, "sort", nil, "column header click (buyer, seller, amount, status, date); repeat to toggle")
	flags.StringVar(&opts.tab, "tab", string(paymentsview.TabAll), "status tab: all-payments, completed, pending, cancelled")
	flags.DurationVar(&opts.timeout, "timeout", 30*time.Second, "fetch timeout")
	flags.StringVar(&opts.timezone, "tz", "Local", "time zone used to render dates")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level")
	return cmd
}

func run(ctx context.Context, stdout, stderr io.Writer, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := platformobservability.NewLogger(stderr, opts.logLevel)

	loc, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return fmt.Errorf("load time zone: %w", err)
	}
	token := opts.token
	if token == "" && opts.jwtSecret != "" {
		if token, err = auth.IssueToken(opts.jwtSecret, "payments-admin", auth.RoleAdmin, 5*time.Minute); err != nil {
			return fmt.Errorf("mint admin token: %w", err)
		}
	}

	view := paymentsview.New(
		paymentsview.NewClient(opts.baseURL, paymentsview.WithBearerToken(token)),
		paymentsview.WithLogger(logger),
		paymentsview.WithLocation(loc),
		paymentsview.WithNotifier(paymentsview.NotifierFunc(func(_ context.Context, message string) {
			fmt.Fprintln(stderr, "error:", message)
		})),
	)
	defer view.Close()

	for _, field := range opts.sorts {
		if _, err := view.ToggleSort(paymentsview.SortField(field)); err != nil {
			return fmt.Errorf("--sort %q: %w", field, err)
		}
	}
	view.SetSearch(opts.search)
	view.SelectTab(paymentsview.Tab(opts.tab))

	fetchCtx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()
	loadErr := view.Load(fetchCtx)
	if err := view.Render(stdout); err != nil {
		return err
	}
	var malformed *paymentsview.MalformedResponseError
	if errors.As(loadErr, &malformed) {
		logger.Error("admin endpoint returned an unexpected payload", slog.String("error", malformed.Error()))
	}
	return loadErr
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
