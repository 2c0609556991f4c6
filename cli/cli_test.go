package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/litcalc/backend/calc"
	"github.com/ardnew/litcalc/cli/cmd"
	"github.com/ardnew/litcalc/pkg"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "litcalc-cli-test-*")
	if err != nil {
		panic(err)
	}

	os.Setenv("XDG_CONFIG_HOME", dir+"/config")
	os.Setenv("XDG_CACHE_HOME", dir+"/cache")
	os.Setenv("LITCALC_PATH", "")

	code := m.Run()

	os.RemoveAll(dir)
	os.Exit(code)
}

func run(t *testing.T, in string, args ...string) (string, error) {
	t.Helper()

	var out, errs bytes.Buffer

	ctx := cmd.WithStdio(context.Background(), cmd.Stdio{
		In:  strings.NewReader(in),
		Out: &out,
		Err: &errs,
	})

	err := Run(ctx, func(int) {}, args...)

	return out.String(), err
}

func writeConfig(t *testing.T, content string) {
	t.Helper()

	path := configPath(baseConfig + ".yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Cleanup(func() { _ = os.Remove(path) })
}

func TestRun_EvalStdin(t *testing.T) {
	out, err := run(t, "1 + 1#=")
	require.NoError(t, err)
	assert.Equal(t, "1 + 1#= 2\n", out)
}

func TestRun_EvalExplicit(t *testing.T) {
	out, err := run(t, "let voltage = 1 V + 1 V -> mV\nvoltage::\n",
		"eval", "--marker", "::", "-")
	require.NoError(t, err)
	assert.Equal(t, "let voltage = 1 V + 1 V -> mV\nvoltage:: 2000 mV\n", out)
}

func TestRun_EvalError(t *testing.T) {
	out, err := run(t, "# ok\n1 m + 1 s#=\nnever#=\n")
	require.Error(t, err)
	assert.Equal(t, "# ok\n1 m + 1 s#=", out)
}

func TestRun_ConfigFile(t *testing.T) {
	writeConfig(t, "prelude: false\nlog_level: error\n")

	_, err := run(t, "pi#=")
	require.ErrorIs(t, err, calc.ErrUnknownName)

	out, err := run(t, "pi#=", "--prelude")
	require.NoError(t, err)
	assert.Equal(t, "pi#= 3.14159\n", out)
}

func TestRun_Init(t *testing.T) {
	path := configPath(baseConfig + ".yaml")

	t.Cleanup(func() { _ = os.Remove(path) })

	_, err := run(t, "", "--backend=starlark", "init")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))

	assert.Equal(t, "starlark", got["backend"])
	assert.Equal(t, "warn", got["log-level"])
	assert.NotContains(t, got, "help")

	_, err = run(t, "", "init")
	require.ErrorIs(t, err, cmd.ErrFileExists)

	out, err := run(t, "x = 7\nx // 2#=")
	require.NoError(t, err)
	assert.Equal(t, "x = 7\nx // 2#= 3\n", out)
}

func TestRun_Version(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, pkg.Name+" "+pkg.Version()+"\n", out)
}

func TestRun_UnknownFlag(t *testing.T) {
	_, err := run(t, "", "--bogus")
	require.Error(t, err)
}
