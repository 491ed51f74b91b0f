package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/remotebuild/internal/config"
	foundationerrors "git.home.luguber.info/inful/remotebuild/internal/foundation/errors"
	"git.home.luguber.info/inful/remotebuild/internal/remote"
)

// run parses args like the real binary and executes the selected command.
func run(t *testing.T, args ...string) (string, *Global, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("remotebuild"), Vars("test"))
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	require.NoError(t, err)

	var out bytes.Buffer
	g := NewGlobal(&out)
	g.MetricsTextfile = cli.MetricsTextfile
	err = kctx.Run(g, &cli)
	return out.String(), g, err
}

func writeProjectConfig(t *testing.T, projectDir, baseDir string, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "remotebuild.yaml")
	content := "application: testapp\n" +
		"project:\n  name: demo\n  directory: " + projectDir + "\n" +
		"architectures: [amd64, arm64]\n" +
		"workspace:\n  base_directory: " + baseDir + "\n" +
		extra
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestBuildIDCmd(t *testing.T) {
	project := t.TempDir()

	out, _, err := run(t, "--config", filepath.Join(t.TempDir(), "none.yaml"),
		"build-id", "--app", "test-app", "--project", "test-project", project)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^test-app-test-project-[0-9a-f]{32}\n$`), out)

	want, err := remote.BuildID("test-app", "test-project", project)
	require.NoError(t, err)
	assert.Equal(t, want+"\n", out)
}

func TestBuildIDCmd_FromConfig(t *testing.T) {
	project := t.TempDir()
	cfgPath := writeProjectConfig(t, project, t.TempDir(), "")

	out, _, err := run(t, "-c", cfgPath, "build-id")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "testapp-demo-"), out)
}

func TestBuildIDCmd_MissingDirectory(t *testing.T) {
	_, _, err := run(t, "-c", filepath.Join(t.TempDir(), "none.yaml"), "build-id", "/does-not-exist")
	require.Error(t, err)
	assert.Equal(t, 4, foundationerrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestValidateCmd(t *testing.T) {
	out, _, err := run(t, "validate", "riscv64", "amd64")
	require.NoError(t, err)
	assert.Equal(t, "Building for 'amd64' and 'riscv64'\n", out)

	_, _, err = run(t, "validate", "amd64", "unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "['unknown']")
	assert.Equal(t, 2, foundationerrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestPrepareAndCleanWorkspace(t *testing.T) {
	project := t.TempDir()
	base := t.TempDir()
	metricsFile := filepath.Join(t.TempDir(), "remotebuild.prom")
	cfgPath := writeProjectConfig(t, project, base, "metrics:\n  textfile: "+metricsFile+"\n")

	out, g, err := run(t, "-c", cfgPath, "prepare")
	require.NoError(t, err)

	id, err := remote.BuildID("testapp", "demo", project)
	require.NoError(t, err)
	wsPath := filepath.Join(base, id)
	assert.Contains(t, out, "Build "+id+" for 'amd64' and 'arm64'")
	assert.Contains(t, out, "Workspace: "+wsPath)
	assert.DirExists(t, wsPath)
	assert.Equal(t, metricsFile, g.MetricsTextfile)

	require.NoError(t, os.WriteFile(filepath.Join(wsPath, "artifact"), []byte("1234"), 0o444))

	out, g, err = run(t, "-c", cfgPath, "clean")
	require.NoError(t, err)
	assert.Equal(t, "Removed "+wsPath+" (2 entries, 4 B)\n", out)
	assert.NoDirExists(t, wsPath)

	require.NoError(t, g.WriteMetrics())
	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `remotebuild_tree_removals_total{result="success"} 1`)
}

func TestCleanCmd_WorkspaceNotCreated(t *testing.T) {
	project := t.TempDir()
	base := t.TempDir()
	cfgPath := writeProjectConfig(t, project, base, "")

	id, err := remote.BuildID("testapp", "demo", project)
	require.NoError(t, err)

	out, _, err := run(t, "-c", cfgPath, "clean")
	require.NoError(t, err)
	assert.Equal(t, "Skipped "+filepath.Join(base, id)+" (not found)\n", out)
}

func TestCleanCmd_EphemeralWorkspaceRejected(t *testing.T) {
	cfgPath := writeProjectConfig(t, t.TempDir(), t.TempDir(), "  persistent: false\n")

	out, _, err := run(t, "-c", cfgPath, "clean")
	require.Error(t, err)
	assert.Empty(t, out)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryValidation))
}

func TestCleanCmd_Paths(t *testing.T) {
	root := filepath.Join(t.TempDir(), "tree")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "ro"), nil, 0o444))
	missing := filepath.Join(t.TempDir(), "missing")

	_, _, err := run(t, "clean", root, missing)
	require.Error(t, err)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryNotFound))
	assert.NoDirExists(t, root)

	out, _, err := run(t, "clean", "--missing-ok", missing)
	require.NoError(t, err)
	assert.Equal(t, "Skipped "+missing+" (not found)\n", out)
}

func TestCLI_DefaultConfigPath(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, Vars("test"))
	require.NoError(t, err)
	_, err = parser.Parse([]string{"validate", "amd64"})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPath, cli.Config)
}

func TestInitCmd(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "remotebuild.yaml")

	out, _, err := run(t, "-c", cfgPath, "init")
	require.NoError(t, err)
	assert.Equal(t, "Wrote configuration to "+cfgPath+"\n", out)
	assert.FileExists(t, cfgPath)

	_, _, err = run(t, "-c", cfgPath, "init")
	assert.Error(t, err)

	_, _, err = run(t, "-c", cfgPath, "init", "--force")
	assert.NoError(t, err)
}
