//go:build windows

package launcher

import (
	"os"
	"strings"
)

// execute порождает дочерний процесс: замещение процесса на этой
// платформе недоступно
func execute(cmd *Command) (int, error) {
	return spawn(cmd)
}

// isExecutable проверяет, что путь указывает на обычный файл.
// Бит исполняемости здесь не несет смысла.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		if !strings.HasSuffix(path, ".exe") {
			return isExecutable(path + ".exe")
		}
		return false
	}
	return info.Mode().IsRegular()
}
