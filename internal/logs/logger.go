package logs

import (
	"context"
	"crypto/rand"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

type Logger = *slog.Logger

// Level is the minimum level a Logger emits.
type Level slog.Level

func (Module) Level() Level {
	return Level(slog.LevelInfo)
}

// ParseLevel maps debug, info, warn and error to a Level.
func ParseLevel(name string) (Level, bool) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return 0, false
	}
	return Level(l), true
}

func (Module) Logger(
	writer Writer,
	level Level,
) Logger {
	leveler := new(slog.LevelVar)
	leveler.Set(slog.Level(level))

	var handlers []slog.Handler

	isSystemdService := false
	cgroupPath, err := getCgroupPath()
	if err == nil {
		isSystemdService = strings.HasSuffix(
			path.Dir(cgroupPath),
			".service",
		)
	}

	// local
	terminalHandler := slog.NewTextHandler(
		writer,
		&slog.HandlerOptions{
			Level: leveler,
		},
	)
	handlers = append(handlers, terminalHandler)

	// systemd journal
	if isSystemdService {
		journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
			record.Add("error", err)
			_ = terminalHandler.Handle(context.Background(), record)
		} else {
			handlers = append(handlers, journalHandler)
		}
	}

	return slog.New(&Handler{
		Handler: slogmulti.Fanout(handlers...),
		level:   leveler,
	})
}

// NewSession tags every record of one parse run with a random session id.
type NewSession func() (Logger, string)

func (Module) NewSession(
	logger Logger,
) NewSession {
	return func() (Logger, string) {
		id := rand.Text()[:8]
		return logger.With("session", id), id
	}
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	str = strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
	return str
}

func getCgroupPath() (string, error) {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return "", err
	}
	parts := strings.Split(string(content), ":")
	if len(parts) >= 3 {
		return strings.TrimSpace(parts[2]), nil
	}
	return "", nil
}
