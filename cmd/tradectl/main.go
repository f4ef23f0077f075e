package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"localtrade.backend/internal/domain/entities"
	"localtrade.backend/pkg/client"
)

const defaultServer = "http://localhost:8080"

const usage = `Usage: tradectl <command> [flags]

Commands:
  connect <wallet>     register a wallet and save the session
  disconnect           forget the saved session
  whoami               show the connected profile
  offers               list offers (--type, --active)
  markers              list map markers (--type)
  create-offer         publish an offer
  deals                list your deals (--status)
  report               report an offer or user
  stats                admin dashboard counters
`

type cliDeps struct {
	out         io.Writer
	sessionPath string
	server      string
}

func defaultCLIDeps() cliDeps {
	return cliDeps{
		out:         os.Stdout,
		sessionPath: client.DefaultSessionPath(),
		server:      os.Getenv("LOCALTRADE_URL"),
	}
}

type command func(ctx context.Context, env *cliEnv, args []string) error

var commands = map[string]command{
	"connect":      runConnect,
	"disconnect":   runDisconnect,
	"whoami":       runWhoami,
	"offers":       runOffers,
	"markers":      runMarkers,
	"create-offer": runCreateOffer,
	"deals":        runDeals,
	"report":       runReport,
	"stats":        runStats,
}

type cliEnv struct {
	out     io.Writer
	store   *client.SessionStore
	session *client.Session
	// server overrides the session's base URL when set
	server  string
}

// client builds an API client for the session identity
func (e *cliEnv) client() *client.Client {
	server := e.server
	var opts []client.Option
	if e.session != nil {
		if e.session.BaseURL != "" && server == "" {
			server = e.session.BaseURL
		}
		opts = append(opts, client.WithWalletAddress(e.session.WalletAddress))
	}
	if server == "" {
		server = defaultServer
	}
	return client.New(server, opts...)
}

func (e *cliEnv) requireSession() error {
	if e.session == nil {
		return errors.New("not connected, run: tradectl connect <wallet>")
	}
	return nil
}

func run(ctx context.Context, args []string, deps cliDeps) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		_, _ = fmt.Fprint(deps.out, usage)
		return nil
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", args[0])
	}

	store := client.NewSessionStore(deps.sessionPath)
	sess, err := store.Load()
	if err != nil {
		return err
	}
	return cmd(ctx, &cliEnv{out: deps.out, store: store, session: sess, server: deps.server}, args[1:])
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func runConnect(ctx context.Context, env *cliEnv, args []string) error {
	fs := newFlagSet("connect")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: tradectl connect <wallet>")
	}
	sess, err := env.store.Connect(ctx, env.client(), fs.Arg(0))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(env.out, "Connected %s\n", sess.WalletAddress)
	return nil
}

func runDisconnect(_ context.Context, env *cliEnv, _ []string) error {
	if err := env.store.Disconnect(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(env.out, "Disconnected")
	return nil
}

func runWhoami(ctx context.Context, env *cliEnv, _ []string) error {
	if err := env.requireSession(); err != nil {
		return err
	}
	user, err := env.client().Me(ctx)
	if err != nil {
		return err
	}
	return printJSON(env.out, user)
}

func offerQuery(fs *pflag.FlagSet, typ string, active string) (client.OfferQuery, error) {
	var q client.OfferQuery
	if typ != "" {
		q.Type = entities.OfferType(typ)
		if !q.Type.Valid() {
			return q, fmt.Errorf("invalid --type %q", typ)
		}
	}
	if fs.Changed("active") {
		v := active == "true"
		if active != "true" && active != "false" {
			return q, fmt.Errorf("invalid --active %q", active)
		}
		q.IsActive = &v
	}
	return q, nil
}

func runOffers(ctx context.Context, env *cliEnv, args []string) error {
	fs := newFlagSet("offers")
	typ := fs.String("type", "", "buy or sell")
	active := fs.String("active", "", "true or false")
	if err := fs.Parse(args); err != nil {
		return err
	}
	q, err := offerQuery(fs, *typ, *active)
	if err != nil {
		return err
	}
	offers, err := env.client().ListOffers(ctx, q)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(env.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTYPE\tAMOUNT\tLIMITS\tLOCATION\tACTIVE")
	for _, o := range offers {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s-%s\t%s\t%t\n", o.ID, o.Type, o.Amount, o.MinLimit, o.MaxLimit, o.Location, o.IsActive)
	}
	return tw.Flush()
}

func runMarkers(ctx context.Context, env *cliEnv, args []string) error {
	fs := newFlagSet("markers")
	typ := fs.String("type", "", "buy or sell")
	if err := fs.Parse(args); err != nil {
		return err
	}
	q, err := offerQuery(fs, *typ, "")
	if err != nil {
		return err
	}
	markers, err := env.client().OfferMarkers(ctx, q)
	if err != nil {
		return err
	}
	return printJSON(env.out, markers)
}

func runCreateOffer(ctx context.Context, env *cliEnv, args []string) error {
	if err := env.requireSession(); err != nil {
		return err
	}
	fs := newFlagSet("create-offer")
	typ := fs.String("type", "", "buy or sell (required)")
	amount := fs.String("amount", "", "total amount (required)")
	minLimit := fs.String("min", "", "minimum per deal (required)")
	maxLimit := fs.String("max", "", "maximum per deal (required)")
	rate := fs.String("rate", "", "exchange rate")
	location := fs.String("location", "", "city or area (required)")
	description := fs.String("description", "", "free text")
	methods := fs.StringSlice("payment-method", nil, "accepted payment methods")
	if err := fs.Parse(args); err != nil {
		return err
	}

	input := &entities.CreateOfferInput{
		Type:           entities.OfferType(*typ),
		Location:       *location,
		PaymentMethods: *methods,
	}
	for _, f := range []struct {
		name string
		raw  string
		dst  **decimal.Decimal
	}{
		{"amount", *amount, &input.Amount},
		{"min", *minLimit, &input.MinLimit},
		{"max", *maxLimit, &input.MaxLimit},
	} {
		d, err := parseDecimal(f.name, f.raw)
		if err != nil {
			return err
		}
		*f.dst = &d
	}
	if *rate != "" {
		r, err := parseDecimal("rate", *rate)
		if err != nil {
			return err
		}
		input.ExchangeRate = &r
	}
	if *description != "" {
		input.Description = description
	}

	offer, err := env.client().CreateOffer(ctx, input)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(env.out, "Created offer %s\n", offer.ID)
	return nil
}

func runDeals(ctx context.Context, env *cliEnv, args []string) error {
	if err := env.requireSession(); err != nil {
		return err
	}
	fs := newFlagSet("deals")
	status := fs.String("status", "", "active, completed or cancelled")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *status != "" && !entities.DealStatus(*status).Valid() {
		return fmt.Errorf("invalid --status %q", *status)
	}
	deals, err := env.client().ListDeals(ctx, entities.DealStatus(*status))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(env.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tOFFER\tAMOUNT\tSTATUS\tCREATED")
	for _, d := range deals {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.ID, d.OfferID, d.Amount, d.Status, d.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

func runReport(ctx context.Context, env *cliEnv, args []string) error {
	if err := env.requireSession(); err != nil {
		return err
	}
	fs := newFlagSet("report")
	offerID := fs.String("offer", "", "reported offer id")
	userID := fs.String("user", "", "reported user id")
	reason := fs.String("reason", "", "short reason (required)")
	description := fs.String("description", "", "details (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *offerID == "" && *userID == "" {
		return errors.New("one of --offer or --user is required")
	}

	input := &entities.CreateReportInput{Reason: *reason, Description: *description}
	if *offerID != "" {
		if _, err := uuid.Parse(*offerID); err != nil {
			return fmt.Errorf("invalid --offer: %w", err)
		}
		input.OfferID = offerID
	}
	if *userID != "" {
		if _, err := uuid.Parse(*userID); err != nil {
			return fmt.Errorf("invalid --user: %w", err)
		}
		input.UserID = userID
	}

	report, err := env.client().CreateReport(ctx, input)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(env.out, "Filed report %s\n", report.ID)
	return nil
}

func runStats(ctx context.Context, env *cliEnv, _ []string) error {
	if err := env.requireSession(); err != nil {
		return err
	}
	stats, err := env.client().AdminStats(ctx)
	if err != nil {
		return err
	}
	return printJSON(env.out, stats)
}

func parseDecimal(name, raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, fmt.Errorf("--%s is required", name)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return d, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := run(context.Background(), os.Args[1:], defaultCLIDeps()); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			_, _ = fmt.Fprintf(os.Stderr, "error (%d): %s\n", apiErr.Status, apiErr.Message)
		} else {
			_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
