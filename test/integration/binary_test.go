//go:build integration

package integration

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

// TestBinaryEndToEnd builds ghgcalc and runs it against the sample inventory.
//
// Test workflow:
//  1. Build cmd/ghgcalc into a temporary directory
//  2. Run a single calculation and check the JSON total
//  3. Run the sample inventory and check the exit status and metrics file
//  4. Run an unknown fuel and check the exit status
//
// Run with: go test -tags=integration -run TestBinaryEndToEnd ./test/integration/...
func TestBinaryEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dir := t.TempDir()
	bin := filepath.Join(dir, "ghgcalc")

	t.Log("Building ghgcalc...")
	build := exec.Command("go", "build", "-o", bin, "./cmd/ghgcalc")
	build.Dir = "../.."
	if output, err := build.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build ghgcalc: %v\nOutput: %s", err, output)
	}

	t.Log("Running calc...")
	out, err := exec.Command(bin, "calc", "--fuel", "DIESEL", "--quantity", "10", "-o", "json").Output()
	if err != nil {
		t.Fatalf("calc failed: %v", err)
	}
	var result struct {
		Total float64 `json:"totalCo2Equivalent"`
	}
	if err := json.Unmarshal(out, &result); err != nil {
		t.Fatalf("calc output is not JSON: %v\n%s", err, out)
	}
	if result.Total != 26.613 {
		t.Errorf("DIESEL 10 kL total = %v, want 26.613", result.Total)
	}

	t.Log("Running batch...")
	metricsFile := filepath.Join(dir, "ghg.prom")
	batch := exec.Command(bin, "batch", "../../internal/inventory/testdata/inventory.yaml",
		"--metrics-file", metricsFile)
	var stdout bytes.Buffer
	batch.Stdout = &stdout
	if err := batch.Run(); err != nil {
		t.Fatalf("batch failed: %v\n%s", err, stdout.String())
	}
	if !strings.Contains(stdout.String(), "4 (4 ok, 0 failed)") {
		t.Errorf("unexpected batch summary:\n%s", stdout.String())
	}
	metrics, err := os.ReadFile(metricsFile)
	if err != nil || !strings.Contains(string(metrics), "ghg_inventory_runs_total 1") {
		t.Errorf("metrics file missing run counter: %v\n%s", err, metrics)
	}

	t.Log("Running an unknown fuel...")
	err = exec.Command(bin, "calc", "--fuel", "UNOBTAINIUM", "--quantity", "1").Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Errorf("unknown fuel: want exit status 1, got %v", err)
	}
}
