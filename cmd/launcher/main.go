package main

import (
	stderrors "errors"
	"fmt"
	"log"
	"os"

	"LaunchpadPlatform/internal/launcher"
	"LaunchpadPlatform/pkg/errors"
	"LaunchpadPlatform/pkg/logger"
)

// EnvLauncherConf переменная окружения с путем к конфигурационному файлу лаунчера
const EnvLauncherConf = "LAUNCHER_CONF"

const (
	defaultConfigFile = "conf/launcher.conf"
	defaultClasspath  = "lib/*"
	defaultMainClass  = "play.core.server.ProdServerStart"
)

func main() {
	env := launcher.EnvironMap(os.Environ())

	configFile := env[EnvLauncherConf]
	if configFile == "" {
		configFile = defaultConfigFile
	}

	appLogger, err := logger.NewLogger("prod", logLevel(os.Args[1:]), "launcher")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Sync()

	l := launcher.New(launcher.Options{
		ConfigFile:       configFile,
		Classpath:        defaultClasspath,
		DefaultMainClass: defaultMainClass,
		EchoCommand:      true,
		Logger:           appLogger,
	})

	code, err := l.Run(os.Args[1:], env)
	if err != nil {
		switch {
		case stderrors.Is(err, launcher.ErrHelpRequested):
			fmt.Fprint(os.Stderr, launcher.Usage)
			os.Exit(1)
		case stderrors.Is(err, errors.New(errors.ErrArgument, "")):
			fmt.Fprintf(os.Stderr, "launcher: %v\n", err)
			fmt.Fprint(os.Stderr, launcher.Usage)
			os.Exit(1)
		default:
			appLogger.Error("Failed to launch server process", logger.Error(err))
			os.Exit(1)
		}
	}

	os.Exit(code)
}

// logLevel определяет уровень логирования лаунчера до полного разбора
// аргументов: флаги после "--" лаунчеру не принадлежат
func logLevel(args []string) string {
	for _, arg := range args {
		if arg == "--" {
			break
		}
		if arg == "-d" || arg == "-debug" || arg == "-v" || arg == "-verbose" {
			return "debug"
		}
	}
	return "info"
}
