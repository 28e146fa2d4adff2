package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archscope/archscope/internal/adapters/inbound/cli"
)

// writeProject lays out a small clean source tree in a temp dir so the
// command's cache and history writes never touch checked-in files.
func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"src/Shop.Domain/Order.cs": `namespace Shop.Domain;

internal class Order
{
    public decimal CalculateTotal()
    {
        return 0;
    }
}
`,
		"src/Shop.Application/OrderService.cs": `using Shop.Domain;

namespace Shop.Application;

internal class OrderService
{
    public void ProcessOrder(Order order)
    {
    }
}
`,
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"analyze", writeProject(t), "--json"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), `"composite"`)
	assert.Contains(t, buf.String(), `"layering"`)
	assert.Contains(t, buf.String(), `"level": "Excellent"`)
}

func TestAnalyzeCommand_DefaultTUI(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"analyze", writeProject(t)})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "archscope")
	assert.Contains(t, buf.String(), "5.00 / 5")
}

func TestAnalyzeCommand_MinScoreFails(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "src", "Store.Domain", "Order.cs")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`using Store.Infrastructure;

namespace Store.Domain;

public class Order
{
    public decimal CalculateTotal()
    {
        var command = new SqlCommand("SELECT 1");
        return 0;
    }
}
`), 0o644))

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"analyze", root, "--min-score", "4"})
	err := cmd.Execute()
	assert.ErrorContains(t, err, "below minimum")
}

func TestAnalyzeCommand_MinScorePasses(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"analyze", writeProject(t), "--min-score", "4"})
	assert.NoError(t, cmd.Execute())
}

func TestAnalyzeCommand_MinScoreFromConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".archscope.yaml"), []byte("min_score: 4\n"), 0o644))
	path := filepath.Join(root, "src", "Store.Domain", "Order.cs")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`using Store.Infrastructure;

namespace Store.Domain;

public class Order
{
}
`), 0o644))

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"analyze", root})
	err := cmd.Execute()
	assert.ErrorContains(t, err, "below minimum")
}

func TestAnalyzeCommand_History(t *testing.T) {
	root := writeProject(t)

	first := cli.NewRootCmdForTest()
	first.SetOut(new(bytes.Buffer))
	first.SetArgs([]string{"analyze", root})
	require.NoError(t, first.Execute())

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"analyze", root, "--history"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Score history")
	assert.Contains(t, buf.String(), "5.00")
}

func TestAnalyzeCommand_MissingPath(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"analyze", filepath.Join(t.TempDir(), "absent")})
	assert.Error(t, cmd.Execute())
}

func TestAnalyzeCommand_NoCache(t *testing.T) {
	root := writeProject(t)

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"analyze", root, "--no-cache"})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(filepath.Join(root, ".archscope", "cache", "hashes.json"))
	assert.True(t, os.IsNotExist(err))
}
