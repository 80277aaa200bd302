// Package logger предоставляет логгер сервиса поверх logrus
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger логгер с printf-интерфейсом, пишет в stdout и в файл
type Logger struct {
	entry *logrus.Entry
	file  *os.File
}

// Option настраивает логгер при создании
type Option func(*options)

type options struct {
	service string
	text    bool
}

// WithService добавляет поле service ко всем записям
func WithService(name string) Option {
	return func(o *options) {
		o.service = name
	}
}

// WithTextFormat включает человекочитаемый формат вместо JSON (для разработки)
func WithTextFormat(enabled bool) Option {
	return func(o *options) {
		o.text = enabled
	}
}

// New создает логгер. Пустой file означает вывод только в stdout.
func New(file, level string, opts ...Option) (*Logger, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	base := logrus.New()
	base.SetLevel(lvl)
	base.SetFormatter(newFormatter(o.text))

	var out io.Writer = os.Stdout
	var f *os.File
	if file != "" {
		if dir := filepath.Dir(file); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("logger: create log dir: %w", err)
			}
		}
		f, err = os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: open log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, f)
	}
	base.SetOutput(out)

	fields := logrus.Fields{}
	if o.service != "" {
		fields["service"] = o.service
	}

	return &Logger{entry: base.WithFields(fields), file: f}, nil
}

// NewFromEntry оборачивает готовую запись logrus (используется в тестах)
func NewFromEntry(entry *logrus.Entry) *Logger {
	return &Logger{entry: entry}
}

// Debug пишет отладочное сообщение
func (l *Logger) Debug(format string, v ...interface{}) {
	l.entry.Debugf(format, v...)
}

// Info пишет информационное сообщение
func (l *Logger) Info(format string, v ...interface{}) {
	l.entry.Infof(format, v...)
}

// Warn пишет предупреждение
func (l *Logger) Warn(format string, v ...interface{}) {
	l.entry.Warnf(format, v...)
}

// Error пишет сообщение об ошибке
func (l *Logger) Error(format string, v ...interface{}) {
	l.entry.Errorf(format, v...)
}

// Fatal пишет сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.entry.Fatalf(format, v...)
}

// With возвращает логгер с дополнительными полями
func (l *Logger) With(fields map[string]interface{}) *Logger {
	return &Logger{entry: l.entry.WithFields(fields), file: l.file}
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func newFormatter(text bool) logrus.Formatter {
	fieldMap := logrus.FieldMap{
		logrus.FieldKeyTime:  "ts",
		logrus.FieldKeyMsg:   "msg",
		logrus.FieldKeyLevel: "level",
	}

	if text {
		return &logrus.TextFormatter{
			FullTimestamp:          true,
			TimestampFormat:        time.RFC3339Nano,
			FieldMap:               fieldMap,
			DisableLevelTruncation: true,
		}
	}

	return &logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap:        fieldMap,
	}
}

func parseLevel(value string) (logrus.Level, error) {
	if strings.TrimSpace(value) == "" {
		return logrus.InfoLevel, nil
	}
	level, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(value)))
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("logger: invalid log level %q: %w", value, err)
	}
	return level, nil
}
