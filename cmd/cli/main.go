package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stock-backtest/internal/analysis"
	"stock-backtest/internal/backtest"
	"stock-backtest/internal/config"
	"stock-backtest/internal/data"
	"stock-backtest/internal/model"
	"stock-backtest/internal/recorder"
	"stock-backtest/internal/strategy"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "strategies":
		cmdStrategies(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --config examples/config.yaml --out results/")
	fmt.Println("  cli strategies")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate writes one results CSV plus a ledger CSV per strategy run")
	fmt.Println("  - strategies lists the catalog with default parameter sweeps")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	outDir := fs.String("out", "results", "Output directory for CSVs")
	ledgers := fs.Bool("ledgers", false, "Also write one ledger CSV per strategy run")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}

	table, err := data.LoadTickers(cfg.Data.Dir, cfg.Data.Tickers)
	if err != nil {
		fatal(err)
	}
	start, _ := cfg.StartDate()
	end, _ := cfg.EndDate()
	if !start.IsZero() || !end.IsZero() {
		table.LimitTimeframe(start, end)
	}

	stock := model.NewStockData(table, cfg.Deposits.Monthly, cfg.Deposits.Daily)
	engine, err := backtest.New(stock, backtest.EngineOptions{
		TransactionCostRate: cfg.Costs.TransactionCostRate,
		SlippagePct:         cfg.Costs.SlippagePct,
		BenchmarkTicker:     cfg.Benchmark,
		PenaltyRate:         cfg.PenaltyRate,
	})
	if err != nil {
		fatal(err)
	}

	registry := strategy.DefaultRegistry(stock.Tickers())
	runs, err := registry.Expand(cfg.EnabledStrategies(), cfg.Overrides())
	if err != nil {
		fatal(err)
	}

	out, err := engine.RunOnce(cfg.Deposits.Initial, runs, cfg.Seed)
	if err != nil {
		fatal(err)
	}

	for _, ledger := range out.Ledgers {
		fmt.Println(ledger.Summary())
		fmt.Println()
	}

	printResults(analysis.RankResults(out.Results))

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fatal(err)
	}
	resultsPath := filepath.Join(*outDir, "results.csv")
	if err := backtest.WriteResultsCSV(resultsPath, out.Results); err != nil {
		fatal(err)
	}
	fmt.Printf("Wrote %d results to %s\n", len(out.Results), resultsPath)

	if *ledgers {
		for _, ledger := range out.Ledgers {
			path := filepath.Join(*outDir, ledgerFileName(ledger.Name))
			if err := backtest.WriteLedgerCSV(path, ledger); err != nil {
				fatal(err)
			}
		}
		fmt.Printf("Wrote %d ledger CSVs to %s\n", len(out.Ledgers), *outDir)
	}

	if cfg.Database.SQLitePath != "" {
		rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			fatal(err)
		}
		defer rec.Close()
		if err := rec.RecordRun(cfg.Seed, cfg.Deposits.Initial, out.Results); err != nil {
			fatal(err)
		}
		fmt.Printf("Recorded run to %s\n", cfg.Database.SQLitePath)
	}
}

func cmdStrategies(args []string) {
	fs := flag.NewFlagSet("strategies", flag.ExitOnError)
	_ = fs.Parse(args)

	registry := strategy.DefaultRegistry(nil)
	for _, name := range registry.Available() {
		def, _ := registry.Get(name)
		fmt.Printf("%-16s %s\n", name, def.Description)
		for param, values := range def.Parameters {
			fmt.Printf("  %-14s default sweep %v\n", param, values)
		}
	}
}

func printResults(results []backtest.Result) {
	fmt.Printf("%-4s %-40s %-9s %-9s %-9s %-8s %-7s %-10s\n",
		"rank", "strategy", "cagr", "max-dd", "sharpe", "trades", "fees", "trk-err")
	for i, r := range results {
		label := r.Strategy
		if len(r.Params) > 0 {
			label = fmt.Sprintf("%s %v", r.Strategy, r.Params)
		}
		if len(label) > 40 {
			label = label[:40]
		}
		fmt.Printf("%-4d %-40s %-9.4f %-9.4f %-9.4f %-8d %-7.2f %-10.4f\n",
			i+1, label, r.CAGR, r.MaxDrawdown, r.SharpeRatio, r.TradeCount, r.TotalFees, r.TrackingError)
	}
}

func ledgerFileName(name string) string {
	s := strings.ToLower(name)
	replacer := strings.NewReplacer(" ", "_", "/", "_", ":", "", "[", "", "]", "", "{", "", "}", "")
	return "ledger_" + replacer.Replace(s) + ".csv"
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
