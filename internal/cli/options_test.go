// internal/cli/options_test.go
package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"almanac/internal/config"
)

func defaultEnv() config.Env {
	return config.Env{
		Threads:       config.DefaultThreads,
		CoalesceEvery: config.DefaultCoalesceEvery,
		Output:        config.DefaultOutput,
		LogLevel:      config.DefaultLogLevel,
		LogFormat:     config.DefaultLogFormat,
	}
}

func parseSolve(t *testing.T, env config.Env, argv ...string) (SolveOptions, error) {
	t.Helper()
	var o SolveOptions
	fs := pflag.NewFlagSet("solve", pflag.ContinueOnError)
	o.Register(fs)
	require.NoError(t, fs.Parse(argv))
	o.ApplyEnv(fs, env)
	if err := o.AfterParse(fs, fs.Args()); err != nil {
		return o, err
	}
	return o, o.Validate()
}

func TestSolveDefaults(t *testing.T) {
	o, err := parseSolve(t, defaultEnv(), "in.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"in.txt"}, o.Files)
	assert.Equal(t, []int{1, 2}, o.Parts())
	assert.Equal(t, "text", o.Output)
	assert.True(t, o.Header)
	assert.Equal(t, 1, o.CoalesceEvery)
}

func TestSolveFlagsAfterFiles(t *testing.T) {
	o, err := parseSolve(t, defaultEnv(), "a.txt", "--part", "2", "-o", "jsonl", "--no-header", "-t", "4")
	require.NoError(t, err)
	assert.Equal(t, []int{2}, o.Parts())
	assert.Equal(t, "jsonl", o.Output)
	assert.False(t, o.Header)
	assert.Equal(t, 4, o.Threads)
}

func TestSolveEnvFillsUnsetFlags(t *testing.T) {
	env := defaultEnv()
	env.Output = "yaml"
	env.Threads = 3
	env.CoalesceEvery = 2

	o, err := parseSolve(t, env, "--threads", "8", "in.txt")
	require.NoError(t, err)
	assert.Equal(t, "yaml", o.Output)
	assert.Equal(t, 8, o.Threads, "explicit flag beats the environment")
	assert.Equal(t, 2, o.CoalesceEvery)
}

func TestSolveValidation(t *testing.T) {
	cases := map[string][]string{
		"no files":        {},
		"bad part":        {"--part", "3", "x"},
		"negative thread": {"-t", "-1", "x"},
		"bad coalesce":    {"--coalesce-every", "-2", "x"},
		"bad output":      {"-o", "fasta", "x"},
		"stdin twice":     {"-", "-"},
	}
	for name, argv := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseSolve(t, defaultEnv(), argv...)
			assert.Error(t, err)
		})
	}
}

func TestTraceOptions(t *testing.T) {
	var o TraceOptions
	fs := pflag.NewFlagSet("trace", pflag.ContinueOnError)
	o.Register(fs)
	require.NoError(t, fs.Parse([]string{"--seed", "79", "in.txt", "-o", "json"}))
	o.ApplyEnv(fs, defaultEnv())
	require.NoError(t, o.AfterParse(fs, fs.Args()))
	require.NoError(t, o.Validate())
	assert.Equal(t, int64(79), o.Seed)
	assert.Equal(t, "in.txt", o.File)
	assert.Equal(t, "json", o.Output)

	assert.Error(t, o.AfterParse(fs, []string{"a", "b"}))
}

func TestGlobalOptions(t *testing.T) {
	var o GlobalOptions
	fs := pflag.NewFlagSet("root", pflag.ContinueOnError)
	o.Register(fs)
	require.NoError(t, fs.Parse([]string{"--log-format", "json"}))

	env := defaultEnv()
	env.LogLevel = "debug"
	env.LogFormat = "console"
	o.ApplyEnv(fs, env)
	assert.Equal(t, "debug", o.LogLevel)
	assert.Equal(t, "json", o.LogFormat)
	require.NoError(t, o.Validate())

	o.Quiet = true
	assert.Equal(t, "error", o.EffectiveLevel())

	o.LogFormat = "xml"
	assert.Error(t, o.Validate())
}

func TestExpandPositionals(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.txt", "b.txt", "c.gz"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("seeds: 1\n"), 0o644))
	}
	got, err := ExpandPositionals([]string{filepath.Join(dir, "*.txt"), "-"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"), "-"}, got)

	_, err = ExpandPositionals([]string{filepath.Join(dir, "*.none")})
	assert.Error(t, err)
}
