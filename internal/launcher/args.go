package launcher

import (
	"bufio"
	stderrors "errors"
	"os"
	"strconv"
	"strings"

	"LaunchpadPlatform/pkg/errors"
)

// DefaultMemoryMB объем памяти по умолчанию для запускаемого процесса
const DefaultMemoryMB = 1024

// LaunchConfig представляет результат одного прохода разбора аргументов.
// Создается пустым, заполняется при последовательном сканировании аргументов
// и потребляется ровно один раз при сборке финальной командной строки.
type LaunchConfig struct {
	JavaHome          string
	ExtraRuntimeArgs  []string
	MemoryMB          int
	DebugPort         int
	MainClassOverride string
	NoVersionCheck    bool
	Verbose           bool
	Debug             bool
	ResidualArgs      []string
}

// ErrHelpRequested возвращается из ParseArgs при флаге -h/-help.
// Сравнивается по идентичности, а не по коду ошибки: любой другой
// ARGUMENT_ERROR не должен распознаваться как запрос справки.
var ErrHelpRequested = stderrors.New("help requested")

// Usage текст справки по флагам лаунчера
const Usage = `Usage: launcher [options] [residual args...]

Options:
  -h | -help             print this message and exit
  -v | -verbose          verbose output
  -d | -debug            debug output
  -no-version-check      do not probe the runtime version for memory flags
  -mem <integer>         set memory for the launched process in MB (default 1024)
  -jvm-debug <port>      enable remote JVM debugging on the given port
  -main <class>          override the main class to launch
  -java-home <path>      override the runtime home directory
  -D<key>=<value>        pass directly as a runtime property
  -agentlib:<value>      pass directly as a runtime argument
  -J-X<value>            pass -X<value> directly as a runtime argument
  --                     stop option parsing, forward the rest verbatim

All other arguments are forwarded to the launched program unchanged.
`

// ParseArgs разбирает аргументы командной строки за один проход слева направо.
// Токены после литерального "--" никогда не интерпретируются как опции.
func ParseArgs(args []string) (*LaunchConfig, error) {
	cfg := &LaunchConfig{MemoryMB: DefaultMemoryMB}

	i := 0
	for i < len(args) {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "-help":
			return nil, ErrHelpRequested

		case arg == "-v" || arg == "-verbose":
			cfg.Verbose = true

		case arg == "-d" || arg == "-debug":
			cfg.Debug = true

		case arg == "-no-version-check":
			cfg.NoVersionCheck = true

		case arg == "-mem":
			value, err := requireValue(args, i, arg, "integer")
			if err != nil {
				return nil, err
			}
			mem, convErr := strconv.Atoi(value)
			if convErr != nil || mem <= 0 {
				return nil, errors.Newf(errors.ErrArgument, "option %s requires a positive integer value, got %q", arg, value)
			}
			cfg.MemoryMB = mem
			i++

		case arg == "-jvm-debug":
			value, err := requireValue(args, i, arg, "port")
			if err != nil {
				return nil, err
			}
			port, convErr := strconv.Atoi(value)
			if convErr != nil || port <= 0 {
				return nil, errors.Newf(errors.ErrArgument, "option %s requires a valid port value, got %q", arg, value)
			}
			cfg.DebugPort = port
			cfg.ExtraRuntimeArgs = append(cfg.ExtraRuntimeArgs, debugArgs(port)...)
			i++

		case arg == "-main":
			value, err := requireValue(args, i, arg, "class")
			if err != nil {
				return nil, err
			}
			cfg.MainClassOverride = value
			i++

		case arg == "-java-home":
			value, err := requireValue(args, i, arg, "path")
			if err != nil {
				return nil, err
			}
			cfg.JavaHome = value
			i++

		case strings.HasPrefix(arg, "-D") || strings.HasPrefix(arg, "-agentlib"):
			// Передаем рантайму без изменений
			cfg.ExtraRuntimeArgs = append(cfg.ExtraRuntimeArgs, arg)

		case strings.HasPrefix(arg, "-J") && len(arg) > 2:
			// Срезаем префикс -J, остаток уходит рантайму
			cfg.ExtraRuntimeArgs = append(cfg.ExtraRuntimeArgs, arg[2:])

		case arg == "--":
			// Конец опций: все остальное уходит программе как есть
			cfg.ResidualArgs = append(cfg.ResidualArgs, args[i+1:]...)
			return cfg, nil

		default:
			cfg.ResidualArgs = append(cfg.ResidualArgs, arg)
		}
		i++
	}

	return cfg, nil
}

// requireValue возвращает значение, следующее за опцией.
// Отсутствующий или начинающийся с "-" токен является ошибкой аргументов.
func requireValue(args []string, i int, option, kind string) (string, error) {
	if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
		return "", errors.Newf(errors.ErrArgument, "expected %s value after option %s", kind, option)
	}
	return args[i+1], nil
}

// debugArgs возвращает аргументы рантайма для удаленной отладки на заданном порту
func debugArgs(port int) []string {
	return []string{
		"-Xdebug",
		"-Xrunjdwp:transport=dt_socket,server=y,suspend=n,address=" + strconv.Itoa(port),
	}
}

// ReadConfigTokens читает токены опций из конфигурационного файла лаунчера.
// Формат: произвольные токены, разделенные пробелами, по одной или несколько
// на строку; строки, начинающиеся с "#", игнорируются. Отсутствующий файл
// не является ошибкой.
func ReadConfigTokens(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var tokens []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tokens = append(tokens, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return tokens, nil
}
