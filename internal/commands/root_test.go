package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhattientran/handlergen"
	"github.com/nhattientran/handlergen/internal/output"
)

// run executes the root command inside a fresh working directory and
// returns stdout, stderr and the error from Execute.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(output.Reset)

	cmd := RootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRoot_NoArgsPrintsUsage(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	stdout, _, err := run(t)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, UsageLine+"\n"))
	assert.Contains(t, stdout, "handlergen -- -user")
	assert.Empty(t, listDir(t, dir), "no file may be written without an entity name")
}

func TestRoot_GeneratesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	stdout, _, err := run(t, "user")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Generated user_handler.go")
	assert.Equal(t, []string{"user_handler.go"}, listDir(t, dir))

	content := readFile(t, filepath.Join(dir, "user_handler.go"))
	assert.Contains(t, content, "type UserHandler struct {")
	assert.Contains(t, content, "func NewUserHandler(u usecase.UserUsecase) *UserHandler {")
	assert.Contains(t, content, "type CreateUserRequest struct {")
	assert.Contains(t, content, `"user created"`)
}

func TestRoot_MixedCaseName(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	stdout, _, err := run(t, "userProfile")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Generated userprofile_handler.go")
	content := readFile(t, filepath.Join(dir, "userprofile_handler.go"))
	assert.Contains(t, content, "UserProfileHandler")
	assert.Contains(t, content, `"userprofile created"`)
}

func TestRoot_EmptyEntityName(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	stdout, _, err := run(t, "")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Generated _handler.go")
	assert.Contains(t, readFile(t, filepath.Join(dir, "_handler.go")), "type Handler struct {")
}

func TestRoot_NameWithPathSeparatorFails(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	stdout, _, err := run(t, "nested/deep/thing")
	require.Error(t, err)

	assert.NotContains(t, stdout, "Generated")
	assert.NoDirExists(t, filepath.Join(dir, "nested"))
	assert.Empty(t, listDir(t, dir))
}

func TestRoot_LeadingDashName(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, _, err := run(t, "-user")
	require.Error(t, err, "without -- the name is parsed as flags")

	stdout, _, err := run(t, "--", "-user")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Generated -user_handler.go")
	assert.Contains(t, readFile(t, filepath.Join(dir, "-user_handler.go")), "type -userHandler struct {")
}

func TestRoot_ExtraArgsIgnored(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, _, err := run(t, "order", "ignored")
	require.NoError(t, err)

	assert.Equal(t, []string{"order_handler.go"}, listDir(t, dir))
}

func TestRoot_OverwritesSilently(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "user_handler.go")
	require.NoError(t, os.WriteFile(path, []byte("hand-edited"), 0644))

	stdout, stderr, err := run(t, "user")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Generated user_handler.go")
	assert.Empty(t, stderr)
	assert.Contains(t, readFile(t, path), "UserHandler")
}

func TestRoot_Idempotent(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "user_handler.go")

	_, _, err := run(t, "user")
	require.NoError(t, err)
	first := readFile(t, path)

	_, _, err = run(t, "user")
	require.NoError(t, err)

	assert.Equal(t, first, readFile(t, path))
}

func TestRoot_OutputDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	stdout, _, err := run(t, "--output-dir", filepath.Join("internal", "handler"), "account")
	require.NoError(t, err)

	want := filepath.Join("internal", "handler", "account_handler.go")
	assert.Contains(t, stdout, "Generated "+want)
	assert.FileExists(t, filepath.Join(dir, want))
}

func TestRoot_OutputDirFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HANDLERGEN_OUTPUT_DIR", "gen")

	_, _, err := run(t, "account")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "gen", "account_handler.go"))
}

func TestRoot_FlagBeatsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HANDLERGEN_OUTPUT_DIR", "from-env")

	_, _, err := run(t, "-o", "from-flag", "account")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "from-flag", "account_handler.go"))
	assert.NoDirExists(t, filepath.Join(dir, "from-env"))
}

func TestRoot_DryRun(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	stdout, _, err := run(t, "--dry-run", "user")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "package handler\n"))
	assert.Contains(t, stdout, "type UserHandler struct {")
	assert.NotContains(t, stdout, "Generated")
	assert.Empty(t, listDir(t, dir))
}

func TestRoot_NoClobber(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "user_handler.go")
	require.NoError(t, os.WriteFile(path, []byte("hand-edited"), 0644))

	stdout, _, err := run(t, "--no-clobber", "user")
	require.Error(t, err)

	assert.Contains(t, err.Error(), "file already exists")
	assert.NotContains(t, stdout, "Generated")
	assert.Equal(t, "hand-edited", readFile(t, path))
}

func TestRoot_NoClobberWithoutExistingFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, _, err := run(t, "--no-clobber", "user")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "user_handler.go"))
}

func TestRoot_Diff(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "user_handler.go")

	_, _, err := run(t, "user")
	require.NoError(t, err)

	edited := strings.Replace(readFile(t, path), "// TODO: Call usecase", "h.usecase.Create(req)", 1)
	require.NoError(t, os.WriteFile(path, []byte(edited), 0644))

	stdout, _, err := run(t, "--diff", "user")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Changes to user_handler.go:")
	assert.Contains(t, stdout, "--- user_handler.go")
	// tabs are expanded in diff output
	assert.Contains(t, stdout, "-    h.usecase.Create(req)")
	assert.Contains(t, stdout, "+    // TODO: Call usecase")
	assert.Contains(t, stdout, "Generated user_handler.go")
	assert.NotContains(t, readFile(t, path), "h.usecase.Create(req)")
}

func TestRoot_DiffUpToDate(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, _, err := run(t, "user")
	require.NoError(t, err)

	stdout, _, err := run(t, "--diff", "user")
	require.NoError(t, err)
	assert.Contains(t, stdout, "user_handler.go is up to date")
	assert.NotContains(t, stdout, "@@")
}

func TestRoot_DiffFinalNewlineOnly(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "user_handler.go")

	_, _, err := run(t, "user")
	require.NoError(t, err)
	generated := readFile(t, path)
	require.NoError(t, os.WriteFile(path, []byte(strings.TrimSuffix(generated, "\n")), 0644))

	stdout, _, err := run(t, "--diff", "user")
	require.NoError(t, err)

	assert.Contains(t, stdout, "user_handler.go differs only in its final newline")
	assert.NotContains(t, stdout, "is up to date")
	assert.Equal(t, generated, readFile(t, path))
}

func TestRoot_WriteFailure(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "user_handler.go"), 0755))

	stdout, _, err := run(t, "user")
	require.Error(t, err)

	assert.Contains(t, err.Error(), "execution failed")
	assert.NotContains(t, stdout, "Generated")
}

func TestRoot_OutputDirIsAFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blocker"), []byte("x"), 0644))

	stdout, _, err := run(t, "-o", "blocker", "user")
	require.Error(t, err)

	assert.Contains(t, err.Error(), "not a directory")
	assert.NotContains(t, stdout, "Generated")
	assert.Equal(t, "x", readFile(t, filepath.Join(dir, "blocker")))
}

func TestRoot_Verbose(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	stdout, stderr, err := run(t, "-v", "user")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Generated user_handler.go")
	assert.Contains(t, stderr, "Rendered user_handler.go")
	assert.Contains(t, stderr, "✓ Write user_handler.go")
}

func TestRoot_Version(t *testing.T) {
	stdout, _, err := run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, handlergen.Version)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cmd := RootCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, Config{OutputDir: "."}, cfg)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("HANDLERGEN_DRY_RUN", "true")
	t.Setenv("HANDLERGEN_NO_CLOBBER", "1")
	t.Setenv("HANDLERGEN_VERBOSE", "true")

	cmd := RootCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.True(t, cfg.DryRun)
	assert.True(t, cfg.NoClobber)
	assert.True(t, cfg.Verbose)
	assert.False(t, cfg.Diff)
}
