package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/Barritosaurus/cpusched/internal/workload"
	"github.com/Barritosaurus/cpusched/pkg/types"
)

// execute runs the root command with args and no config file.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := BuildCLI()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--no-color", "-c", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestBuildCLI(t *testing.T) {
	cmd := BuildCLI()

	assert.NotNil(t, cmd, "BuildCLI should return a non-nil command")
	assert.Equal(t, "cpusched", cmd.Use)
	assert.Equal(t, "1.0.0", cmd.Version)

	commandNames := make(map[string]bool)
	for _, c := range cmd.Commands() {
		commandNames[c.Use] = true
		assert.NotNil(t, c.RunE, "%s should set RunE", c.Use)
	}
	assert.Len(t, commandNames, 4)
	for _, name := range []string{"run", "compare", "generate", "serve"} {
		assert.True(t, commandNames[name], "should have %q command", name)
	}

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
	assert.Equal(t, "configs/default.yaml", configFlag.DefValue)
}

func TestBuildRunCommand(t *testing.T) {
	cmd := buildRunCommand()

	assert.Equal(t, "run", cmd.Use)
	for flag, short := range map[string]string{"file": "f", "algorithm": "a", "quantum": "q"} {
		f := cmd.Flags().Lookup(flag)
		require.NotNil(t, f, "should have --%s", flag)
		assert.Equal(t, short, f.Shorthand)
	}
	assert.Equal(t, "2", cmd.Flags().Lookup("quantum").DefValue)
	assert.NotNil(t, cmd.Flags().Lookup("json"))
}

func TestRun(t *testing.T) {
	out, err := execute(t, "run", "-f", "testdata/processes.yaml", "-a", "rr", "-q", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "Round-robin")
	assert.Contains(t, out, "|   P1   |   P2   |   P3   |   P1   |   P2   |   P1   |")
	assert.Contains(t, out, "0\t2\t4\t5\t7\t8\t9")
}

func TestRunJSON(t *testing.T) {
	out, err := execute(t, "run", "-f", "testdata/processes.yaml", "-a", "srtf", "--json")
	require.NoError(t, err)

	assert.Equal(t, "sjf", gjson.Get(out, "result.algorithm").String())
	assert.JSONEq(t, "[9,5,3]", gjson.Get(out, "result.completion_times").Raw)
	assert.InDelta(t, 5.0/3.0, gjson.Get(out, "summary.average_waiting").Float(), 1e-9)
}

func TestRunErrors(t *testing.T) {
	_, err := execute(t, "run", "-f", "testdata/nopriority.csv", "-a", "priority")
	assert.ErrorIs(t, err, types.ErrMissingField)

	_, err = execute(t, "run", "-f", "testdata/processes.yaml", "-a", "lottery")
	assert.ErrorIs(t, err, types.ErrUnknownAlgorithm)

	_, err = execute(t, "run", "-f", "testdata/processes.yaml", "-a", "rr", "-q", "0")
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = execute(t, "run", "-f", "testdata/missing.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load processes")

	_, err = execute(t, "run")
	assert.Error(t, err, "--file is required")
}

func TestCompare(t *testing.T) {
	out, err := execute(t, "compare", "-f", "testdata/processes.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "Algorithm comparison")
	assert.Contains(t, out, "Best algorithm: SJF preemptive")
	assert.NotContains(t, out, "skipped:")

	out, err = execute(t, "compare", "-f", "testdata/nopriority.csv", "-q", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Round-robin (q=3)")
	assert.Contains(t, out, "Priority non-preemptive skipped:")
}

func TestCompareJSON(t *testing.T) {
	out, err := execute(t, "compare", "-f", "testdata/processes.yaml", "--json")
	require.NoError(t, err)

	assert.Equal(t, int64(2), gjson.Get(out, "quantum").Int())
	assert.Equal(t, int64(4), gjson.Get(out, "rankings.#").Int())
	assert.Equal(t, "sjf", gjson.Get(out, "rankings.0.algorithm").String())
}

func TestCompareQuantumFromConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("scheduler:\n  quantum: 5\n"), 0644))

	var out bytes.Buffer
	cmd := BuildCLI()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-c", configPath, "--no-color", "compare", "-f", "testdata/processes.yaml", "--json"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, int64(5), gjson.Get(out.String(), "quantum").Int())
}

func TestGenerate(t *testing.T) {
	first, err := execute(t, "generate", "-n", "5", "--seed", "42")
	require.NoError(t, err)
	second, err := execute(t, "generate", "-n", "5", "--seed", "42")
	require.NoError(t, err)
	assert.Equal(t, first, second, "same seed should give the same process set")

	processes, err := workload.Load(bytes.NewBufferString(first))
	require.NoError(t, err)
	assert.Len(t, processes, 5)
}

func TestGenerateToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated.csv")
	_, err := execute(t, "generate", "--params", "../workload/testdata/params.txt", "--seed", "7", "-o", path)
	require.NoError(t, err)

	processes, err := workload.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, processes, 10)
	for _, p := range processes {
		assert.NotNil(t, p.Priority)
		assert.GreaterOrEqual(t, p.BurstDuration, int64(1))
	}

	_, err = execute(t, "generate", "-n", "0")
	assert.ErrorIs(t, err, workload.ErrInvalidArgs)
}
