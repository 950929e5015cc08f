package analyze

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cli "github.com/urfave/cli/v3"

	"cssdedup/common"
	"cssdedup/config"
	"cssdedup/state"
)

func runAnalyze(t *testing.T, args ...string) (string, error) {
	t.Helper()

	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	cfg, err := config.LoadConfiguration("")
	require.NoError(t, err)
	env.Cfg = cfg

	var out bytes.Buffer
	cmd := &cli.Command{
		Name:   "analyze",
		Writer: &out,
		Action: Run,
		Flags:  []cli.Flag{&cli.IntFlag{Name: "top"}},
	}
	err = cmd.Run(ctx, append([]string{"analyze"}, args...))
	return out.String(), err
}

func writeCSS(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.css")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun(t *testing.T) {
	path := writeCSS(t, ".x{} .y{} .x{} .z{} .y{} .x{}")

	out, err := runAnalyze(t, path)
	require.NoError(t, err)

	assert.Equal(t, "File: "+path+"\n"+
		"Total top-level rules: 6\n"+
		"Unique selectors: 3\n"+
		"Duplicate instances removed if deduped (sum over counts-1): 3\n"+
		"Top duplicates:\n"+
		"  3x  .x\n"+
		"  2x  .y\n", out)
}

func TestRun_TopFlag(t *testing.T) {
	path := writeCSS(t, ".x{} .y{} .x{} .y{} .x{}")

	out, err := runAnalyze(t, "--top", "1", path)
	require.NoError(t, err)
	assert.Contains(t, out, "  3x  .x\n")
	assert.NotContains(t, out, ".y")
}

func TestRun_DoesNotModifyInput(t *testing.T) {
	content := ".a{x:1}.a{x:2}"
	path := writeCSS(t, content)

	_, err := runAnalyze(t, path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestRun_MissingArgument(t *testing.T) {
	out, err := runAnalyze(t)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUsage))

	var ue *common.UsageError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "analyze <path-to-css>", ue.Usage)
	assert.Empty(t, out)
}

func TestRun_MissingFile(t *testing.T) {
	_, err := runAnalyze(t, filepath.Join(t.TempDir(), "absent.css"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrUsage))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(state.ContextWithEnv(context.Background()))
	cancel()

	cmd := &cli.Command{Name: "analyze", Action: Run}
	err := cmd.Run(ctx, []string{"analyze", "whatever.css"})
	assert.ErrorIs(t, err, context.Canceled)
}
