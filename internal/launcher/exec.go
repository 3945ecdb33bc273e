package launcher

import (
	goerrors "errors"
	"os"
	"os/exec"
	"strings"
)

// spawn порождает дочерний процесс с унаследованными stdio, ждет его
// завершения и возвращает код возврата без изменений.
func spawn(cmd *Command) (int, error) {
	child := exec.Command(cmd.Path, cmd.Args...)
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr

	err := child.Run()
	restoreTerminal()

	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if goerrors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 1, err
}

// restoreTerminal возвращает терминалу канонический режим с эхом после
// завершения дочернего процесса. Нужно только эмулирующим терминал
// окружениям (MSYS, Cygwin), где дочерний процесс мог сменить режим.
// Всегда best-effort: ошибки игнорируются.
func restoreTerminal() {
	if os.Getenv("MSYSTEM") == "" && !strings.Contains(strings.ToLower(os.Getenv("OSTYPE")), "cygwin") {
		return
	}

	stty := exec.Command("stty", "echo", "icanon")
	stty.Stdin = os.Stdin
	_ = stty.Run()
}
