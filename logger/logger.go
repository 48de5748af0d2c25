package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"otpbot/interfaces"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options はログ出力先とローテーションの設定です。
type Options struct {
	File       string
	Level      string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Logger は slog.Logger に Fatal を足したものです。interfaces.Logger を満たします。
type Logger struct {
	*slog.Logger
	file io.Closer
}

// シングルトンとしてロガーを保持
var std = &Logger{Logger: slog.Default()}

// New は標準出力と（設定されていれば）ローテーションされるファイルの両方に
// JSON で書き出すロガーを作成します。
func New(opts Options) *Logger {
	var out io.Writer = os.Stdout
	var file io.Closer
	if opts.File != "" {
		logFile := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		}
		out = io.MultiWriter(os.Stdout, logFile)
		file = logFile
	}

	return &Logger{
		Logger: slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
			AddSource: true,
			Level:     ParseLevel(opts.Level),
		})),
		file: file,
	}
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Init replaces the package-level logger.
func Init(opts Options) *Logger {
	std = New(opts)
	return std
}

// ParseLevel maps debug/info/warn/error to a slog level. Anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Fatal はエラーレベルで出力した後にプログラムを終了します。
func (l *Logger) Fatal(msg string, args ...any) {
	l.Error(msg, args...)
	l.Close()
	os.Exit(1)
}

// With returns a child logger that carries args on every record.
func (l *Logger) With(args ...any) interfaces.Logger {
	return &Logger{Logger: l.Logger.With(args...), file: l.file}
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Infoレベルのログを出力
// 例: logger.Info("Botが起動しました", "version", "1.2.3")
func Info(msg string, args ...any) {
	std.Info(msg, args...)
}

// Fatalレベルのログを出力（出力後にプログラムを終了）
func Fatal(msg string, args ...any) {
	std.Fatal(msg, args...)
}
