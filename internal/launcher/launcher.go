package launcher

import (
	"fmt"
	"os"
	"strings"

	"LaunchpadPlatform/pkg/logger"
)

// Options представляет настройки лаунчера, задаваемые встраивающей стороной
type Options struct {
	// ConfigFile путь к текстовому файлу с токенами опций ("#" — комментарий).
	// Токены из файла вставляются перед реальными CLI аргументами, поэтому
	// CLI аргументы имеют приоритет.
	ConfigFile string

	// Classpath значение для флага -cp запускаемого процесса
	Classpath string

	// DefaultMainClass главный класс по умолчанию; -main имеет приоритет
	DefaultMainClass string

	// AppArgs фиксированные аргументы уровня приложения, идущие перед
	// остаточными аргументами
	AppArgs []string

	// ArgsHook необязательный хук постобработки остаточных аргументов.
	// Вызывается после разбора, его результат замещает ResidualArgs.
	ArgsHook func(args []string) []string

	// EchoCommand печатать ли полную командную строку перед запуском
	EchoCommand bool

	Logger logger.Logger
}

// Command представляет готовую к исполнению командную строку
type Command struct {
	Path string
	Args []string
}

// Line возвращает командную строку одной строкой для вывода оператору
func (c *Command) Line() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

// Launcher собирает командную строку серверного процесса из CLI аргументов,
// переменных окружения и конфигурационного файла и исполняет ее.
// Выполняется однопоточно, один раз на старт процесса.
type Launcher struct {
	opts   Options
	logger logger.Logger
}

// New создает новый лаунчер
func New(opts Options) *Launcher {
	return &Launcher{
		opts:   opts,
		logger: opts.Logger,
	}
}

// BuildCommand выполняет полный проход: токены конфигурационного файла,
// разбор аргументов, хук постобработки, разрешение рантайма, план памяти
// и сборка финального вектора аргументов.
func (l *Launcher) BuildCommand(argv []string, env map[string]string) (*Command, *LaunchConfig, error) {
	// Токены из файла настраиваемы, но переопределяемы реальными CLI аргументами
	fileTokens, err := ReadConfigTokens(l.opts.ConfigFile)
	if err != nil {
		return nil, nil, err
	}
	if len(fileTokens) > 0 {
		l.debugf("loaded %d tokens from config file %s", len(fileTokens), l.opts.ConfigFile)
		argv = append(append([]string{}, fileTokens...), argv...)
	}

	cfg, err := ParseArgs(argv)
	if err != nil {
		return nil, nil, err
	}

	// Хук встраивающей стороны переинтерпретирует остаточные аргументы
	if l.opts.ArgsHook != nil {
		cfg.ResidualArgs = l.opts.ArgsHook(cfg.ResidualArgs)
	}

	bin, err := ResolveRuntime(cfg, env)
	if err != nil {
		return nil, nil, err
	}
	l.debugf("resolved runtime binary: %s", bin)

	// Аргументы рантайма из окружения имеют низший приоритет
	envArgs := strings.Fields(env[EnvJavaOpts])

	allRuntimeArgs := append(append([]string{}, envArgs...), cfg.ExtraRuntimeArgs...)

	// План памяти нужен только когда вызывающая сторона не задала свою
	plan := MemoryPlan{}
	if !HasMemoryMarker(allRuntimeArgs) {
		modern := false
		if !cfg.NoVersionCheck {
			modern = DetectModernRuntime(bin)
		}
		plan = ComputeMemoryPlan(cfg.MemoryMB, allRuntimeArgs, modern)
		l.debugf("memory plan: %v", plan.Args())
	}

	mainClass := l.opts.DefaultMainClass
	if cfg.MainClassOverride != "" {
		mainClass = cfg.MainClassOverride
	}

	// Порядок: env аргументы, план памяти, накопленные аргументы рантайма,
	// classpath, главный класс, фиксированные аргументы приложения, остаток
	var args []string
	args = append(args, envArgs...)
	args = append(args, plan.Args()...)
	args = append(args, cfg.ExtraRuntimeArgs...)
	if l.opts.Classpath != "" {
		args = append(args, "-cp", l.opts.Classpath)
	}
	args = append(args, mainClass)
	args = append(args, l.opts.AppArgs...)
	args = append(args, cfg.ResidualArgs...)

	return &Command{Path: bin, Args: args}, cfg, nil
}

// Run собирает команду и передает ей управление. На Unix текущий процесс
// замещается; иначе порождается дочерний процесс, и его код возврата
// возвращается без изменений.
func (l *Launcher) Run(argv []string, env map[string]string) (int, error) {
	cmd, _, err := l.BuildCommand(argv, env)
	if err != nil {
		return 0, err
	}

	if l.opts.EchoCommand {
		fmt.Fprintln(os.Stdout, cmd.Line())
	}

	return execute(cmd)
}

func (l *Launcher) debugf(format string, args ...interface{}) {
	if l.logger != nil {
		l.logger.Debug(fmt.Sprintf(format, args...))
	}
}

// EnvironMap преобразует срез вида KEY=VALUE в отображение
func EnvironMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, entry := range environ {
		if idx := strings.IndexByte(entry, '='); idx > 0 {
			env[entry[:idx]] = entry[idx+1:]
		}
	}
	return env
}
