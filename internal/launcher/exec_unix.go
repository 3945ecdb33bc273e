//go:build unix

package launcher

import (
	"os"
	"syscall"
)

// execute замещает текущий процесс командой. syscall.Exec при успехе
// не возвращается; при ошибке замещения падаем обратно на spawn.
func execute(cmd *Command) (int, error) {
	argv := append([]string{cmd.Path}, cmd.Args...)
	if err := syscall.Exec(cmd.Path, argv, os.Environ()); err != nil {
		return spawn(cmd)
	}
	// недостижимо
	return 0, nil
}

// isExecutable проверяет, что путь указывает на исполняемый обычный файл
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0
}
