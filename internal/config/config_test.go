package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/taskscan/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// emptyEnv keeps tests away from the real user config.
func emptyEnv(t *testing.T) map[string]string {
	t.Helper()

	return map[string]string{"XDG_CONFIG_HOME": t.TempDir()}
}

func Test_Load_ReturnsDefaults_When_NoConfigFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := config.Load(config.LoadInput{WorkDirOverride: dir, Env: emptyEnv(t)})
	require.NoError(t, err)

	want := config.Config{
		ProjectsDir:    "projects",
		Output:         filepath.Join("state", "backlog.yaml"),
		EffectiveCwd:   dir,
		ProjectsDirAbs: filepath.Join(dir, "projects"),
		OutputAbs:      filepath.Join(dir, "state", "backlog.yaml"),
	}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func Test_Load_AppliesPrecedence_When_AllLayersPresent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	env := emptyEnv(t)

	writeFile(t, filepath.Join(env["XDG_CONFIG_HOME"], "taskscan", "config.json"),
		`{"projects_dir": "global-projects", "output": "global.yaml", "format": "json"}`)
	writeFile(t, filepath.Join(dir, config.FileName), `{
		// comments and trailing commas are fine
		"output": "project.yaml",
	}`)

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: dir,
		FormatOverride:  "yaml",
		Env:             env,
	})
	require.NoError(t, err)

	got := []string{cfg.ProjectsDir, cfg.Output, cfg.Format}
	want := []string{"global-projects", "project.yaml", "yaml"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("resolved values mismatch (-want +got):\n%s", diff)
	}

	if got, want := cfg.Sources.Project, filepath.Join(dir, config.FileName); got != want {
		t.Fatalf("project source=%q, want=%q", got, want)
	}

	if cfg.Sources.Global == "" {
		t.Fatal("global source should be recorded")
	}
}

func Test_Load_ExplicitConfigReplacesProjectFile_When_ConfigPathGiven(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, config.FileName), `{"projects_dir": "from-project"}`)
	writeFile(t, filepath.Join(dir, "ci.json"), `{"projects_dir": "from-ci"}`)

	cfg, err := config.Load(config.LoadInput{WorkDirOverride: dir, ConfigPath: "ci.json", Env: emptyEnv(t)})
	require.NoError(t, err)

	if got, want := cfg.ProjectsDirAbs, filepath.Join(dir, "from-ci"); got != want {
		t.Fatalf("projects=%q, want=%q", got, want)
	}
}

func Test_Load_CLIOverridesWin_When_FilesSetSameKeys(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "elsewhere")
	writeFile(t, filepath.Join(dir, config.FileName), `{"projects_dir": "from-file", "output": "from-file.yaml"}`)

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride:     dir,
		ProjectsDirOverride: abs,
		OutputOverride:      "out/backlog.json",
		Verbose:             true,
		Env:                 emptyEnv(t),
	})
	require.NoError(t, err)

	if got, want := cfg.ProjectsDirAbs, abs; got != want {
		t.Fatalf("projects=%q, want=%q", got, want)
	}

	if got, want := cfg.OutputAbs, filepath.Join(dir, "out", "backlog.json"); got != want {
		t.Fatalf("output=%q, want=%q", got, want)
	}

	if !cfg.Verbose {
		t.Fatal("verbose should be set")
	}

	if cfg.IndexAbs != "" {
		t.Fatalf("index=%q, want disabled", cfg.IndexAbs)
	}
}

func Test_Load_ResolvesIndex_When_ConfiguredInFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, config.FileName), `{"index": "state/backlog.db"}`)

	cfg, err := config.Load(config.LoadInput{WorkDirOverride: dir, Env: emptyEnv(t)})
	require.NoError(t, err)

	if got, want := cfg.IndexAbs, filepath.Join(dir, "state", "backlog.db"); got != want {
		t.Fatalf("index=%q, want=%q", got, want)
	}
}

func Test_Load_UsesHomeConfig_When_XDGUnset(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	home := t.TempDir()
	writeFile(t, filepath.Join(home, ".config", "taskscan", "config.json"), `{"output": "home.yaml"}`)

	cfg, err := config.Load(config.LoadInput{WorkDirOverride: dir, Env: map[string]string{"HOME": home}})
	require.NoError(t, err)

	if got, want := cfg.Output, "home.yaml"; got != want {
		t.Fatalf("output=%q, want=%q", got, want)
	}
}

func Test_Load_ReturnsError_When_ConfigInvalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
		want    error
	}{
		{name: "syntax", content: `{"projects_dir": `, want: config.ErrConfigInvalid},
		{name: "empty projects", content: `{"projects_dir": ""}`, want: config.ErrProjectsDirEmpty},
		{name: "empty output", content: `{"output": ""}`, want: config.ErrOutputEmpty},
		{name: "wrong type", content: `{"output": 12}`, want: config.ErrConfigInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, config.FileName), tc.content)

			_, err := config.Load(config.LoadInput{WorkDirOverride: dir, Env: emptyEnv(t)})

			require.ErrorIs(t, err, tc.want)
		})
	}
}

func Test_Load_ReturnsErrConfigFileNotFound_When_ExplicitConfigMissing(t *testing.T) {
	t.Parallel()

	_, err := config.Load(config.LoadInput{
		WorkDirOverride: t.TempDir(),
		ConfigPath:      "missing.json",
		Env:             emptyEnv(t),
	})

	require.ErrorIs(t, err, config.ErrConfigFileNotFound)
}
