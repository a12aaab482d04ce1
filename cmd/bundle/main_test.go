package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/the-bundle-must-flow/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioCSV = `date,customer,item_name,unit,qty,total_price
2024-01-02,C1,A,PCS,1,1000
2024-01-02,C1,B,PCS,2,2000
2024-01-03,C2,A,PCS,1,1000
2024-01-03,C2,B,PCS,1,1000
2024-01-03,C2,C,PCS,3,4500
2024-01-04,UMUM/CASH,A,PCS,1,1000
2024-01-05,C4,B,PCS,1,1000
2024-01-05,C4,C,PCS,1,1500
2024-01-05,C4,D,PCS,0,0
`

type testEnv struct {
	t      *testing.T
	dir    string
	dbPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return &testEnv{t: t, dir: dir, dbPath: filepath.Join(dir, "bundle.db")}
}

func (e *testEnv) writeFile(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// run executes the CLI with a fresh viper instance against the test database.
func (e *testEnv) run(stdin string, args ...string) (string, error) {
	e.t.Helper()
	viper.Reset()
	appConfig = nil

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--db", e.dbPath, "--log-level", "error"}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run("", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "bundle version dev")
}

func TestImportAndGenerate(t *testing.T) {
	env := newTestEnv(t)
	csvPath := env.writeFile("sales.csv", scenarioCSV)

	out, err := env.run("", "import", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Number of rows")
	assert.Contains(t, out, "8 valid rows, 1 dropped with zero quantity, 0 rejected")
	assert.Contains(t, out, "sales.csv: imported 8 sales, 0 already present")

	out, err = env.run("", "import", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 0 sales, 8 already present")

	out, err = env.run("", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Sales:     8")
	assert.Contains(t, out, "Customers: 4")
	assert.Contains(t, out, "Items:     3")
	assert.Contains(t, out, "sales.csv")

	out, err = env.run("", "generate",
		"--min-support", "0.5",
		"--min-confidence", "0",
		"--metric", "confidence",
		"--min-threshold", "0",
		"--itemsets")
	require.NoError(t, err)
	assert.Contains(t, out, "Frequent itemsets")
	assert.Contains(t, out, "Bundle recommendations")
	assert.Contains(t, out, "A-PCS")
	assert.Contains(t, out, "C-PCS")
	assert.Contains(t, out, "4 of 4 rules from 4 transactions")

	out, err = env.run("", "generate",
		"--min-support", "0.5",
		"--min-confidence", "0.9",
		"--metric", "confidence",
		"--min-threshold", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 4 rules")

	out, err = env.run("", "generate", "--min-support", "0.5", "--antecedent-size", "2", "--min-confidence", "0", "--metric", "support", "--min-threshold", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "no rule passes")
}

func TestGenerate_NothingFrequent(t *testing.T) {
	env := newTestEnv(t)
	csvPath := env.writeFile("sales.csv", `date,customer,item_name,unit,qty,total_price
2024-01-02,C1,A,PCS,1,1000
2024-01-02,C2,B,PCS,1,1000
2024-01-02,C3,C,PCS,1,1000
2024-01-02,C4,D,PCS,1,1000
`)
	_, err := env.run("", "import", csvPath)
	require.NoError(t, err)

	out, err := env.run("", "generate", "--min-support", "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "No frequent itemsets found at min support 50.0%")
}

func TestGenerate_InvalidParameters(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("", "generate", "--min-support", "1.1")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	_, err = env.run("", "generate", "--metric", "accuracy")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestGenerate_NoSales(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("", "generate")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNoSales)

	msg, ok := common.UserMessage(err)
	assert.True(t, ok)
	assert.Contains(t, msg, "bundle import")
}

func TestImport_DryRun(t *testing.T) {
	env := newTestEnv(t)
	csvPath := env.writeFile("sales.csv", scenarioCSV)

	out, err := env.run("", "import", "--dry-run", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run: 8 sales would be imported")

	_, err = env.run("", "stats")
	assert.ErrorIs(t, err, common.ErrNoSales)
}

func TestImport_Replace(t *testing.T) {
	env := newTestEnv(t)
	first := env.writeFile("first.csv", scenarioCSV)
	second := env.writeFile("second.csv", `date,customer,item_name,unit,qty,total_price
2024-02-01,C9,Z,PCS,1,1000
`)

	_, err := env.run("", "import", first)
	require.NoError(t, err)
	_, err = env.run("", "import", "--replace", second)
	require.NoError(t, err)

	out, err := env.run("", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Sales:     1")
}

func TestImport_Errors(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("", "import", filepath.Join(env.dir, "missing.csv"))
	assert.Error(t, err)

	empty := env.writeFile("empty.csv", "date,customer,item_name,unit,qty,total_price\n2024-01-01,C1,A,PCS,0,0\n")
	_, err = env.run("", "import", empty)
	assert.ErrorIs(t, err, common.ErrNoValidRows)

	_, err = env.run("", "import")
	assert.Error(t, err)
}

func TestDashboardCommand(t *testing.T) {
	env := newTestEnv(t)
	csvPath := env.writeFile("sales.csv", scenarioCSV)
	_, err := env.run("", "import", csvPath)
	require.NoError(t, err)

	out, err := env.run("", "dashboard", "--top", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Best selling items")
	assert.Contains(t, out, "C-PCS")
	assert.Contains(t, out, "GMV per day")
	assert.Contains(t, out, "Retail")
	assert.Contains(t, out, "Member")
	assert.Contains(t, out, "12.5%")
}

func TestResetCommand(t *testing.T) {
	env := newTestEnv(t)
	csvPath := env.writeFile("sales.csv", scenarioCSV)
	_, err := env.run("", "import", csvPath)
	require.NoError(t, err)

	out, err := env.run("n\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "This will delete 8 imported sales.")
	assert.Contains(t, out, "Reset canceled.")

	out, err = env.run("", "reset", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully removed 8 sales")

	out, err = env.run("", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to reset")
}

func TestExplore_NoSales(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("", "explore")
	assert.ErrorIs(t, err, common.ErrNoSales)
}

func TestConfigFile(t *testing.T) {
	env := newTestEnv(t)
	cfgPath := env.writeFile("config.yaml", "bundle:\n  min_support: 2\n")

	_, err := env.run("", "--config", cfgPath, "version")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	cfgPath = env.writeFile("good.yaml", "ingest:\n  retail_customer: WALK-IN\n")
	_, err = env.run("", "--config", cfgPath, "version")
	require.NoError(t, err)
	assert.Equal(t, "WALK-IN", appConfig.Ingest.RetailCustomer)
	assert.Equal(t, env.dbPath, appConfig.Database.Path)
}

func TestMergeAliases(t *testing.T) {
	merged := mergeAliases(
		map[string]string{"KRG": "SAK", "SLP": "PAK"},
		map[string]string{"krg": "KARUNG", "btl": "BOTOL"},
	)
	assert.Equal(t, map[string]string{"KRG": "KARUNG", "SLP": "PAK", "BTL": "BOTOL"}, merged)
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, common.NewUserError("Nothing to import", errors.New("detail")))
	assert.Contains(t, buf.String(), "Nothing to import")
	assert.NotContains(t, buf.String(), "detail")

	buf.Reset()
	reportError(&buf, errors.New("plain failure"))
	assert.Contains(t, buf.String(), "plain failure")
}
