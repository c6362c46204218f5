// internal/utils/logger/config.go
package logger

type Config struct {
	LogFile     string
	MaxSize     int  // мегабайты
	MaxAge      int  // дни
	MaxBackups  int  // количество файлов
	Compress    bool // сжимать ротированные файлы
	Development bool
	// Console отключается в TUI, чтобы логи не ломали экран.
	Console bool
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		LogFile:     "launcher.log",
		MaxSize:     50,
		MaxAge:      14,
		MaxBackups:  3,
		Compress:    true,
		Development: false,
		Console:     true,
	}
}
