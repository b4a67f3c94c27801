package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/wingcheck/wingcheck/pkg/types"
)

var sessionFile = filepath.Join("..", "..", "internal", "session", "testdata", "session.yaml")

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTrimCmd_Text(t *testing.T) {
	out, err := run(t, "trim", sessionFile)
	require.NoError(t, err)

	assert.Contains(t, out, "Sample 2-row check")
	assert.Contains(t, out, "tolerance ±10 mm, 1 of 4 cells out of tolerance")
	assert.Contains(t, out, "shape:   localized")
	assert.Contains(t, out, "corrections:")
	assert.Contains(t, out, "shorten")
	assert.Contains(t, out, "lines 1,2")
}

func TestTrimCmd_JSON(t *testing.T) {
	out, err := run(t, "trim", sessionFile, "--format", "json")
	require.NoError(t, err)

	var res struct {
		ToleranceMm    float64 `json:"tolerance_mm"`
		OutOfTolerance int     `json:"out_of_tolerance"`
		Shape          struct {
			Shape string `json:"shape"`
			Row   string `json:"row"`
		} `json:"shape"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 10.0, res.ToleranceMm)
	assert.Equal(t, 1, res.OutOfTolerance)
	assert.Equal(t, "localized", res.Shape.Shape)
	assert.Equal(t, "A", res.Shape.Row)
}

func TestTrimCmd_YAMLUsesJSONKeys(t *testing.T) {
	out, err := run(t, "trim", sessionFile, "-f", "yaml")
	require.NoError(t, err)

	var res map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.Equal(t, 10, res["tolerance_mm"])
	assert.Contains(t, res, "corrections")
}

func TestTrimCmd_MaxAdjustment(t *testing.T) {
	out, err := run(t, "trim", sessionFile, "--max-adjustment", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "remeasure")
	assert.NotContains(t, out, "shorten")
}

func TestCommands_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown format", []string{"trim", sessionFile, "--format", "xml"}, `unknown format "xml"`},
		{"missing session", []string{"trim", "nope.yaml"}, "session: read file"},
		{"missing arg", []string{"trim"}, "accepts 1 arg"},
		{"zero original", []string{"evaluate", "--measured", "10", "--original", "0"}, "invalid original"},
		{"negative load", []string{"distribution", "--rows", "3", "--load", "-5"}, "invalid total_load_kg"},
		{"required flag", []string{"distribution", "--rows", "3"}, `"load" not set`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(t, tc.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestEvaluateCmd(t *testing.T) {
	out, err := run(t, "evaluate", "--measured", "37", "--original", "190", "--manufacturer", "Cousin", "--spec", "Vectran 100")
	require.NoError(t, err)
	assert.Contains(t, out, "warning: 19% remaining, recheck in 50h or 100 flights")
	assert.Contains(t, out, "material: vectran.")

	out, err = run(t, "evaluate", "--measured", "18", "--original", "190", "-f", "json")
	require.NoError(t, err)
	var ev map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &ev))
	assert.Equal(t, "reject", ev["result"])
	assert.Equal(t, string(types.MaterialUnknown), ev["material"])
}

func TestDistributionCmd(t *testing.T) {
	out, err := run(t, "distribution", "--rows", "3", "--load", "110")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "55.00 kg")

	out, err = run(t, "distribution", "--rows", "6", "--load", "110")
	require.NoError(t, err)
	assert.Equal(t, "no load table for 6 rows\n", out)
}

func TestLoadTestCmd(t *testing.T) {
	out, err := run(t, "load-test", "--rows", "3", "--max-weight", "110", "--strength", "190", "--lines", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "A left: test at 60 daN")
}

func TestClassifyCmd(t *testing.T) {
	out, err := run(t, "classify", "Liros", "DSL", "70", "Dyneema")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "dyneema: "), out)
}

func TestClothCmd(t *testing.T) {
	out, err := run(t, "cloth", sessionFile)
	require.NoError(t, err)
	assert.Contains(t, out, "center top")
	assert.Contains(t, out, "2 points: 1 pass, 1 warning, 0 fail. overall warning")
}
