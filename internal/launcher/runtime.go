package launcher

import (
	"os/exec"
	"path/filepath"

	"LaunchpadPlatform/pkg/errors"
)

// EnvJavaHome переменная окружения с домашней директорией рантайма
const EnvJavaHome = "JAVA_HOME"

// EnvJavaOpts переменная окружения с аргументами рантайма по умолчанию
// (низший приоритет при слиянии)
const EnvJavaOpts = "JAVA_OPTS"

// ResolveRuntime определяет путь к исполняемому файлу рантайма.
// Приоритет: явный -java-home, затем домашняя директория из окружения,
// затем голое имя команды через поисковый путь вызывающей стороны.
func ResolveRuntime(cfg *LaunchConfig, env map[string]string) (string, error) {
	if cfg.JavaHome != "" {
		bin := runtimeBinary(cfg.JavaHome)
		if !isExecutable(bin) {
			return "", errors.Newf(errors.ErrLaunchTarget, "runtime binary %s is missing or not executable", bin)
		}
		return bin, nil
	}

	if home := env[EnvJavaHome]; home != "" {
		bin := runtimeBinary(home)
		if isExecutable(bin) {
			return bin, nil
		}
		// Некорректный JAVA_HOME не фатален: падаем обратно на поисковый путь
	}

	bin, err := exec.LookPath("java")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrLaunchTarget, "no java runtime found on search path")
	}
	return bin, nil
}

// runtimeBinary возвращает путь к исполняемому файлу внутри домашней директории
func runtimeBinary(home string) string {
	return filepath.Join(home, "bin", "java")
}

// DetectModernRuntime запускает `<bin> -version` и сообщает, новее ли
// рантайм порогового значения. При любой ошибке определения версии
// возвращает false: legacy-форма флагов безопаснее для старых рантаймов.
func DetectModernRuntime(bin string) bool {
	// `java -version` пишет в stderr
	output, err := exec.Command(bin, "-version").CombinedOutput()
	if err != nil {
		return false
	}
	return ParseJavaMajorVersion(string(output)) > modernVersionThreshold
}
