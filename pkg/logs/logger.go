package logs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Options selects the sinks of a logger built by New.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means warn.
	Level string
	// Format is text or json for the Writer sink.
	Format string
	Writer io.Writer
	// File, when set, receives JSON records in addition to Writer.
	File string
	// Journal also sends records to systemd-journald when it is reachable.
	Journal bool
}

// New builds a logger fanning out to every configured sink. The returned
// closer releases the log file, if any.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	level := new(slog.LevelVar)
	level.Set(lvl)
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handlers []slog.Handler
	var terminal slog.Handler
	if opts.Writer != nil {
		switch strings.ToLower(opts.Format) {
		case "", "text":
			terminal = slog.NewTextHandler(opts.Writer, handlerOpts)
		case "json":
			terminal = slog.NewJSONHandler(opts.Writer, handlerOpts)
		default:
			return nil, nil, fmt.Errorf("logs: unknown format %q", opts.Format)
		}
		handlers = append(handlers, terminal)
	}

	closer := nopCloser{}
	var file *os.File
	if opts.File != "" {
		file, err = os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("logs: open %s: %w", opts.File, err)
		}
		handlers = append(handlers, slog.NewJSONHandler(file, handlerOpts))
	}

	if opts.Journal {
		journal, err := slogjournal.NewHandler(&slogjournal.Options{
			Level: level,
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			if terminal != nil {
				record := slog.NewRecord(time.Now(), slog.LevelWarn, "systemd journal unavailable", 0)
				record.Add("error", err)
				_ = terminal.Handle(context.Background(), record)
			}
		} else {
			handlers = append(handlers, journal)
		}
	}

	if len(handlers) == 0 {
		handlers = append(handlers, slog.DiscardHandler)
	}
	logger := slog.New(&Handler{Handler: slogmulti.Fanout(handlers...)})
	if file != nil {
		return logger, file, nil
	}
	return logger, closer, nil
}

// ParseLevel maps a level name onto a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("logs: unknown level %q", name)
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
