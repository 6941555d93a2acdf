package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Init 设置默认 slog logger，文本格式写到 w（一般是 stderr）。
func Init(w io.Writer, level slog.Level) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// ParseLevel 把 "debug"/"info"/"warn"/"error" 转成 slog.Level，未知值按 warn 处理。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
