// Package main implements the semfed command line runner. It evaluates a
// single federated SERVICE call against a wf:// identifier and prints the
// resulting bindings, which makes it handy for smoke-testing a gateway
// deployment without a query engine.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/c360/semfed/config"
	"github.com/c360/semfed/errors"
	"github.com/c360/semfed/plan"
	"github.com/c360/semfed/service"
	"github.com/c360/semfed/sparql"
)

const appName = "semfed"

func main() {
	if err := run(); err != nil {
		slog.Error("evaluation failed",
			"error", err, "kind", errors.KindOf(err).String())
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "path to JSON configuration file (defaults apply when empty)")
		identifier = flag.String("identifier", "", "service identifier to evaluate, e.g. wf://example.org/sparql")
		query      = flag.String("query", "", "SPARQL text of the delegated fragment")
		vars       = flag.String("vars", "", "comma-separated variables the fragment selects")
		jsonOut    = flag.Bool("json", false, "print bindings as JSON lines instead of text")
		verbose    = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *identifier == "" || *query == "" {
		flag.Usage()
		return errors.WrapInvalid(errors.ErrMissingConfig, "CLI", "run",
			"-identifier and -query are required")
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	svc, err := service.New(cfg, service.WithLogger(logger))
	if err != nil {
		return err
	}

	registry := service.NewRegistry()
	if err := registry.Register(svc); err != nil {
		return err
	}

	selected, ok := registry.Lookup(*identifier)
	if !ok {
		return errors.WrapUnsupported(errors.ErrUnsupportedIdentifier,
			"CLI", "run", "no registered service claims "+*identifier)
	}

	var selectedVars []string
	if *vars != "" {
		selectedVars = strings.Split(*vars, ",")
	}
	fragment := plan.NewFragment(plan.FragmentSpec{
		Text:         *query,
		IdentityTerm: *identifier,
		All:          selectedVars,
	})

	evaluable, err := selected.CreateEvaluable(*identifier, fragment)
	if err != nil {
		return err
	}
	logger.Debug("evaluating", "explain", evaluable.Explain())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stream, err := evaluable.Evaluate(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = stream.Close() }()

	rows, err := printBindings(stream, *jsonOut)
	if err != nil {
		return err
	}

	logger.Info("evaluation complete", "service", appName, "rows", rows)
	return nil
}

// printBindings consumes the stream to stdout and returns the row count.
func printBindings(stream sparql.BindingStream, asJSON bool) (int, error) {
	rows := 0
	for stream.Next() {
		rows++
		b := stream.Binding()
		if asJSON {
			rendered := make(map[string]string, len(b))
			for name, value := range b {
				rendered[name] = value.String()
			}
			line, err := json.Marshal(rendered)
			if err != nil {
				return rows, errors.WrapInvalid(err, "CLI", "printBindings", "binding marshal")
			}
			fmt.Println(string(line))
			continue
		}

		parts := make([]string, 0, len(b))
		for name, value := range b {
			parts = append(parts, "?"+name+"="+value.String())
		}
		fmt.Println(strings.Join(parts, " "))
	}
	return rows, stream.Err()
}
