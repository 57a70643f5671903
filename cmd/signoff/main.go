package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/codewithboateng/signoff/internal/api"
	"github.com/codewithboateng/signoff/internal/checklist"
	"github.com/codewithboateng/signoff/internal/facts"
	"github.com/codewithboateng/signoff/internal/ir"
	"github.com/codewithboateng/signoff/internal/reporting"
	"github.com/codewithboateng/signoff/internal/runner"
	"github.com/codewithboateng/signoff/internal/shared"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "validate":
		validateCmd(os.Args[2:])
	case "serve":
		serveCmd(os.Args[2:])
	case "version":
		fmt.Println("signoff – EDA sign-off checker IR:", ir.Version)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `signoff – EDA sign-off artifact checker

Usage:
  signoff validate --checklist <checklist.yaml> --facts <facts.json> --out <reports-dir> [--workers 4] [--strict] [--config ./configs/signoff.yaml]
  signoff serve    [--addr :8080] [--token <bearer>] [--config ./configs/signoff.yaml]
  signoff version
`)
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	checklistPath := fs.String("checklist", "", "Path to checklist YAML")
	factsPath := fs.String("facts", "", "Path to extracted facts JSON")
	outDir := fs.String("out", "", "Output directory for reports")
	workers := fs.Int("workers", 0, "Parallel item workers")
	strict := fs.Bool("strict", false, "Fail on output-contract defects")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	logger := shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	// precedence: flags > config > defaults
	if *checklistPath == "" {
		*checklistPath = cfg.Checklist.Path
	}
	if *factsPath == "" {
		*factsPath = cfg.Facts.Path
	}
	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *workers == 0 {
		*workers = cfg.Policy.Workers
	}
	if !*strict {
		*strict = cfg.Policy.StrictProjection
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "validate: cannot create out dir:", err)
		os.Exit(1)
	}

	checks, err := checklist.Load(*checklistPath, checklist.Options{Strict: *strict, Logger: logger})
	if err != nil {
		slog.Error("checklist load error", "err", err)
		os.Exit(1)
	}
	doc, err := facts.Load(*factsPath)
	if err != nil {
		slog.Error("facts load error", "err", err)
		os.Exit(1)
	}

	report := runner.Run(context.Background(), checks, doc, runner.Options{
		Workers: *workers,
		Logger:  logger,
	})

	jsonPath, err := reporting.WriteJSON(report.RunID, *outDir, &report)
	if err != nil {
		slog.Error("report write error", "err", err)
		os.Exit(1)
	}
	slog.Info("validate complete",
		"run", report.RunID,
		"items", report.Summary.Items,
		"pass", report.Summary.Pass,
		"fail", report.Summary.Fail,
		"invalid", report.Summary.Invalid,
		"json", jsonPath,
	)
	fmt.Printf("Validate %s\n  Run: %s\n  Items: %d (pass %d, fail %d, invalid %d)\n  JSON: %s\n",
		verdict(report.Summary), report.RunID,
		report.Summary.Items, report.Summary.Pass, report.Summary.Fail, report.Summary.Invalid,
		jsonPath)
	if report.Summary.Fail > 0 || report.Summary.Invalid > 0 {
		os.Exit(1)
	}
}

func verdict(s ir.Summary) string {
	if s.Fail == 0 && s.Invalid == 0 {
		return "OK"
	}
	return "FAILED"
}

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	addr := fs.String("addr", "", "Listen address")
	token := fs.String("token", "", "Bearer token for /validate")
	strict := fs.Bool("strict", false, "Fail on output-contract defects")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	logger := shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *addr == "" {
		*addr = cfg.API.Addr
	}
	if *token == "" {
		*token = cfg.API.Token
	}
	if !*strict {
		*strict = cfg.Policy.StrictProjection
	}

	srv := &api.Server{Logger: logger, Token: *token, Strict: *strict}
	slog.Info("serving", "addr", *addr, "auth", *token != "")
	if err := http.ListenAndServe(*addr, srv.Routes()); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}
