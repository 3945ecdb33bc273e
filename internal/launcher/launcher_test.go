package launcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LaunchpadPlatform/pkg/errors"
)

// fakeRuntime создает поддельный исполняемый файл рантайма и возвращает
// домашнюю директорию
func fakeRuntime(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	binDir := filepath.Join(home, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "java"), []byte("#!/bin/sh\nexit 0\n"), 0755))

	return home
}

// TestBuildCommand_FullVector проверяет порядок финального вектора аргументов
func TestBuildCommand_FullVector(t *testing.T) {
	home := fakeRuntime(t)

	l := New(Options{
		Classpath:        "lib/*",
		DefaultMainClass: "play.core.server.ProdServerStart",
	})

	argv := []string{"-java-home", home, "-no-version-check", "-mem", "512", "-Dfoo=bar", "start"}
	env := map[string]string{EnvJavaOpts: "-Duser.timezone=UTC"}

	cmd, cfg, err := l.BuildCommand(argv, env)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "bin", "java"), cmd.Path)
	assert.Equal(t, 512, cfg.MemoryMB)
	assert.Equal(t, []string{
		"-Duser.timezone=UTC",
		"-Xms512m", "-Xmx512m", "-XX:MaxPermSize=256m", "-XX:ReservedCodeCacheSize=128m",
		"-Dfoo=bar",
		"-cp", "lib/*",
		"play.core.server.ProdServerStart",
		"start",
	}, cmd.Args)
}

// TestBuildCommand_EnvMemoryMarker проверяет, что настройка памяти из окружения подавляет план
func TestBuildCommand_EnvMemoryMarker(t *testing.T) {
	home := fakeRuntime(t)

	l := New(Options{DefaultMainClass: "app.Main"})

	cmd, _, err := l.BuildCommand(
		[]string{"-java-home", home, "-mem", "4096"},
		map[string]string{EnvJavaOpts: "-Xmx2g"},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"-Xmx2g", "app.Main"}, cmd.Args)
}

// TestBuildCommand_MainOverride проверяет приоритет -main над классом по умолчанию
func TestBuildCommand_MainOverride(t *testing.T) {
	home := fakeRuntime(t)

	l := New(Options{DefaultMainClass: "app.Main"})

	cmd, _, err := l.BuildCommand(
		[]string{"-java-home", home, "-no-version-check", "-main", "app.DevServer"},
		nil,
	)
	require.NoError(t, err)

	assert.Contains(t, cmd.Args, "app.DevServer")
	assert.NotContains(t, cmd.Args, "app.Main")
}

// TestBuildCommand_ConfigFileTokens проверяет, что CLI аргументы переопределяют токены файла
func TestBuildCommand_ConfigFileTokens(t *testing.T) {
	home := fakeRuntime(t)

	confPath := filepath.Join(t.TempDir(), "launcher.conf")
	require.NoError(t, os.WriteFile(confPath, []byte("# defaults\n-mem 2048\n"), 0644))

	l := New(Options{
		ConfigFile:       confPath,
		DefaultMainClass: "app.Main",
	})

	// CLI значение идет после токенов файла и выигрывает
	_, cfg, err := l.BuildCommand([]string{"-java-home", home, "-no-version-check", "-mem", "512"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.MemoryMB)

	// Без CLI значения действует токен файла
	_, cfg, err = l.BuildCommand([]string{"-java-home", home, "-no-version-check"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2048, cfg.MemoryMB)
}

// TestBuildCommand_ArgsHook проверяет хук постобработки остаточных аргументов
func TestBuildCommand_ArgsHook(t *testing.T) {
	home := fakeRuntime(t)

	l := New(Options{
		DefaultMainClass: "app.Main",
		ArgsHook: func(args []string) []string {
			out := make([]string, 0, len(args))
			for _, arg := range args {
				if arg != "skip-me" {
					out = append(out, arg)
				}
			}
			return append(out, "injected")
		},
	})

	cmd, cfg, err := l.BuildCommand(
		[]string{"-java-home", home, "-no-version-check", "keep-me", "skip-me"},
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"keep-me", "injected"}, cfg.ResidualArgs)
	assert.Contains(t, cmd.Args, "injected")
	assert.NotContains(t, cmd.Args, "skip-me")
}

// TestBuildCommand_MissingRuntime проверяет ошибку при отсутствующем рантайме
func TestBuildCommand_MissingRuntime(t *testing.T) {
	l := New(Options{DefaultMainClass: "app.Main"})

	_, _, err := l.BuildCommand([]string{"-java-home", "/nonexistent/jdk"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.New(errors.ErrLaunchTarget, ""))
}

// TestResolveRuntime_EnvFallback проверяет разрешение рантайма через переменную окружения
func TestResolveRuntime_EnvFallback(t *testing.T) {
	home := fakeRuntime(t)

	bin, err := ResolveRuntime(&LaunchConfig{}, map[string]string{EnvJavaHome: home})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "bin", "java"), bin)
}

// TestEnvironMap проверяет преобразование окружения в отображение
func TestEnvironMap(t *testing.T) {
	env := EnvironMap([]string{"JAVA_HOME=/opt/jdk", "JAVA_OPTS=-Xmx1g -Dx=y", "MALFORMED"})

	assert.Equal(t, "/opt/jdk", env["JAVA_HOME"])
	assert.Equal(t, "-Xmx1g -Dx=y", env["JAVA_OPTS"])
	_, ok := env["MALFORMED"]
	assert.False(t, ok)
}
