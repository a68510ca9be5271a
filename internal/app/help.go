package app

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/powerman/structlog"
)

var (
	log         = structlog.New()
	initLogOnce sync.Once
)

// initLog sets up the keys and formats of structlog.DefaultLogger. structlog
// panics when they change after the first record, so this happens once per
// process, before anything is logged.
func initLog() {
	initLogOnce.Do(func() {
		structlog.DefaultLogger.
			SetPrefixKeys(
				structlog.KeyApp, structlog.KeyPID, structlog.KeyLevel, structlog.KeyUnit, structlog.KeyTime,
			).
			SetDefaultKeyvals(
				structlog.KeyApp, filepath.Base(os.Args[0]),
				structlog.KeySource, structlog.Auto,
			).
			SetSuffixKeys(
				structlog.KeyStack,
			).
			SetSuffixKeys(structlog.KeySource).
			SetKeysFormat(map[string]string{
				structlog.KeyTime:   " %[2]s",
				structlog.KeySource: " %6[2]s",
				structlog.KeyUnit:   " %6[2]s",
				"config":            " %+[2]v",
			}).SetTimeFormat("15:04:05")
		log = structlog.New()
	})
}

// setLogLevel changes the level of structlog.DefaultLogger. Loggers which
// already printed keep their level, so log is created anew.
func setLogLevel(level string) {
	structlog.DefaultLogger.SetLogLevel(structlog.ParseLevel(logLevelName(level)))
	log = structlog.New()
}

// logLevelName maps the configured level to a name structlog.ParseLevel
// knows, info for anything unrecognised.
func logLevelName(s string) string {
	switch strings.ToLower(s) {
	case "debug", "dbg", "trace":
		return "debug"
	case "warn", "warning", "wrn":
		return "warn"
	case "err", "error":
		return "error"
	}
	return "info"
}
