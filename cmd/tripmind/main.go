// README: Command-line trip planner; runs the pipeline once and prints the markdown summary.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tripmind/internal/config"
	"tripmind/internal/export"
	"tripmind/internal/observability"
	"tripmind/internal/service"
)

// errUsage means the command line was wrong; usage has already been printed.
var errUsage = errors.New("usage")

type planner interface {
	Plan(ctx context.Context, req service.Request) (*service.Result, error)
}

type plannerFactory func(cfg config.Config, logger zerolog.Logger) (planner, error)

func newPlanner(cfg config.Config, logger zerolog.Logger) (planner, error) {
	return service.New(cfg, service.NewInvoker(cfg, logger), logger)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, newPlanner)
	stop()
	switch {
	case errors.Is(err, errUsage):
		os.Exit(2)
	case err != nil:
		fmt.Fprintf(os.Stderr, "tripmind: %v\n", err)
		os.Exit(1)
	}
}

// run plans one trip. The result goes to stdout; logs go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, build plannerFactory) error {
	fs := flag.NewFlagSet("tripmind", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		homeState = fs.String("state", "", "home state, used when the query names no destination")
		homeCity  = fs.String("city", "", "home city, used in the output filename")
		asJSON    = fs.Bool("json", false, "print trip, costed plans and summary as JSON")
		save      = fs.Bool("save", false, "write the summary to TripMind_<city>_<query>.md")
		savePDF   = fs.Bool("pdf", false, "write a printable TripMind_<city>_<query>.pdf")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: tripmind [flags] <query>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	query := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if query == "" {
		fmt.Fprintln(stderr, "please enter a valid travel query")
		fs.Usage()
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := observability.NewLoggerTo(stderr, cfg.Env)
	log.Logger = logger

	ctx, cancel := context.WithTimeout(ctx, cfg.HTTP.PlanTimeout)
	defer cancel()

	p, err := build(cfg, logger)
	if err != nil {
		return fmt.Errorf("wire planner: %w", err)
	}

	res, err := p.Plan(ctx, service.Request{Query: query, HomeState: *homeState, HomeCity: *homeCity})
	if err != nil {
		return fmt.Errorf("trip planning failed: %w", err)
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{"trip": res.Trip, "plans": res.Plans, "summary": res.Summary}); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	} else {
		fmt.Fprintln(stdout, res.Summary)
	}

	if *save {
		name := res.Filename()
		if err := os.WriteFile(name, []byte(res.Summary), 0o644); err != nil {
			return fmt.Errorf("save summary: %w", err)
		}
		logger.Info().Str("file", name).Msg("summary saved")
	}
	if *savePDF {
		body, err := export.PDF(export.Document{Trip: res.Trip, Plans: res.Plans, Summary: res.Summary, Currency: cfg.Planning.Currency})
		if err != nil {
			return fmt.Errorf("pdf export: %w", err)
		}
		name := res.PDFFilename()
		if err := os.WriteFile(name, body, 0o644); err != nil {
			return fmt.Errorf("save pdf: %w", err)
		}
		logger.Info().Str("file", name).Msg("pdf saved")
	}
	return nil
}
