package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger define a interface para logging estruturado.
// A aplicação (Shell, Service, Repository) deve depender apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
}

// SimpleLogger é a implementação concreta da interface Logger,
// que escreve uma linha JSON por entrada via log/slog.
type SimpleLogger struct {
	slog *slog.Logger
	exit func(int)
}

// NewLogger cria e retorna uma nova instância do Logger.
// O destino nunca deve ser o stdout do Shell interativo.
func NewLogger(level string, out io.Writer) Logger {
	h := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: parseLevel(level)})
	return &SimpleLogger{slog: slog.New(h), exit: os.Exit}
}

// NewNopLogger descarta tudo. Usado em testes.
func NewNopLogger() Logger {
	return NewLogger("error", io.Discard)
}

// parseLevel implementa o mapeamento de nível (padrão: info).
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "fatal":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *SimpleLogger) log(level slog.Level, msg string, fields map[string]interface{}, err error) {
	if !l.slog.Enabled(context.Background(), level) {
		return
	}
	attrs := make([]slog.Attr, 0, 2)
	if len(fields) > 0 {
		group := make([]any, 0, len(fields)*2)
		for k, v := range fields {
			group = append(group, k, v)
		}
		attrs = append(attrs, slog.Group("fields", group...))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.slog.LogAttrs(context.Background(), level, msg, attrs...)
}

// Implementações da Interface Logger

func (l *SimpleLogger) Debug(msg string, fields map[string]interface{}) {
	l.log(slog.LevelDebug, msg, fields, nil)
}

func (l *SimpleLogger) Info(msg string, fields map[string]interface{}) {
	l.log(slog.LevelInfo, msg, fields, nil)
}

func (l *SimpleLogger) Warn(msg string, fields map[string]interface{}) {
	l.log(slog.LevelWarn, msg, fields, nil)
}

func (l *SimpleLogger) Error(msg string, err error) {
	l.log(slog.LevelError, msg, nil, err)
}

// Fatal registra o erro e encerra o processo.
func (l *SimpleLogger) Fatal(msg string, err error) {
	l.log(slog.LevelError, msg, map[string]interface{}{"fatal": true}, err)
	l.exit(1)
}
