package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleYAML = `
data:
  dir: testdata/prices
  tickers: [VOO, QQQ]
  start_date: "2020-01-02"
deposits:
  initial: 10000
  daily: 10
  monthly: 500
costs:
  transaction_cost_rate: 0.001
  slippage_pct: 0.0005
benchmark: VOO
seed: 42
strategies:
  - name: buy_and_hold
  - name: maf_crossover
    params:
      short_window: [5, 10]
database:
  sqlite_path: results.db
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Data.Dir != "testdata/prices" || len(cfg.Data.Tickers) != 2 {
		t.Errorf("data section = %+v", cfg.Data)
	}
	if cfg.Deposits.Initial != 10000 || cfg.Deposits.Monthly != 500 {
		t.Errorf("deposits = %+v", cfg.Deposits)
	}
	if cfg.Benchmark != "VOO" || cfg.Seed != 42 {
		t.Errorf("benchmark=%q seed=%d", cfg.Benchmark, cfg.Seed)
	}
	if cfg.Database.SQLitePath != "results.db" {
		t.Errorf("sqlite path = %q", cfg.Database.SQLitePath)
	}

	start, err := cfg.StartDate()
	if err != nil {
		t.Fatal(err)
	}
	if !start.Equal(time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start date = %v", start)
	}
	end, err := cfg.EndDate()
	if err != nil || !end.IsZero() {
		t.Errorf("unset end date should be zero, got %v / %v", end, err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STOCKS_DATA_DIR", "/mnt/prices")
	t.Setenv("STOCKS_BENCHMARK", "QQQ")
	t.Setenv("STOCKS_SEED", "7")

	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Data.Dir != "/mnt/prices" {
		t.Errorf("data dir = %q, env override dropped", cfg.Data.Dir)
	}
	if cfg.Benchmark != "QQQ" {
		t.Errorf("benchmark = %q, env override dropped", cfg.Benchmark)
	}
	if cfg.Seed != 7 {
		t.Errorf("seed = %d, env override dropped", cfg.Seed)
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "no tickers",
			yaml: "data:\n  dir: d\n",
			want: "data.tickers",
		},
		{
			name: "no dir",
			yaml: "data:\n  tickers: [VOO]\n",
			want: "data.dir",
		},
		{
			name: "negative cost",
			yaml: "data:\n  dir: d\n  tickers: [VOO]\ncosts:\n  transaction_cost_rate: -1\n",
			want: "transaction_cost_rate",
		},
		{
			name: "slippage out of range",
			yaml: "data:\n  dir: d\n  tickers: [VOO]\ncosts:\n  slippage_pct: 1.5\n",
			want: "slippage_pct",
		},
		{
			name: "untracked benchmark",
			yaml: "data:\n  dir: d\n  tickers: [VOO]\nbenchmark: SPY\n",
			want: "benchmark",
		},
		{
			name: "bad start date",
			yaml: "data:\n  dir: d\n  tickers: [VOO]\n  start_date: \"02/01/2020\"\n",
			want: "start_date",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.yaml))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want mention of %s", err, tc.want)
			}
		})
	}
}

func TestStrategySelection(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	names := cfg.EnabledStrategies()
	if len(names) != 2 || names[0] != "buy_and_hold" || names[1] != "maf_crossover" {
		t.Errorf("enabled = %v", names)
	}
	overrides := cfg.Overrides()
	if len(overrides) != 1 {
		t.Fatalf("overrides = %v, want only maf_crossover", overrides)
	}
	sweep := overrides["maf_crossover"]["short_window"]
	if len(sweep) != 2 {
		t.Errorf("short_window sweep = %v", sweep)
	}
}
