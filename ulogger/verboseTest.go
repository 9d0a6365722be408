package ulogger

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/ordishs/gocore"
)

var verboseRank = map[string]int{"DEBUG": 0, "INFO": 1, "WARN": 2, "ERROR": 3, "FATAL": 4}

var verboseGocoreLevel = map[string]int{
	"DEBUG": int(gocore.DEBUG),
	"INFO":  int(gocore.INFO),
	"WARN":  int(gocore.WARN),
	"ERROR": int(gocore.ERROR),
	"FATAL": int(gocore.FATAL),
}

// VerboseTestLogger sends log lines to t.Logf, so they show up with go test -v
// and next to the failing assertion. Lines look like
// "[WARN] wire: [wire.Builder.AppendMessage] ...".
type VerboseTestLogger struct {
	t       testing.TB
	service string
	mu      *sync.Mutex
	level   string
}

func NewVerboseTestLogger(t testing.TB) *VerboseTestLogger {
	return &VerboseTestLogger{t: t, service: "test", mu: &sync.Mutex{}, level: "DEBUG"}
}

func (l *VerboseTestLogger) LogLevel() int {
	return verboseGocoreLevel[l.level]
}

func (l *VerboseTestLogger) SetLogLevel(level string) {
	level = strings.ToUpper(level)
	if _, ok := verboseRank[level]; ok {
		l.level = level
	}
}

// New returns a logger sharing t and the lock, tagged with service.
func (l *VerboseTestLogger) New(service string, options ...Option) Logger {
	child := &VerboseTestLogger{t: l.t, service: service, mu: l.mu, level: l.level}

	opts := &Options{logLevel: l.level}
	for _, o := range options {
		o(opts)
	}

	child.SetLogLevel(opts.logLevel)

	return child
}

func (l *VerboseTestLogger) Duplicate(options ...Option) Logger {
	return l.New(l.service, options...)
}

func (l *VerboseTestLogger) Debugf(format string, args ...interface{}) {
	l.log("DEBUG", format, args)
}

func (l *VerboseTestLogger) Infof(format string, args ...interface{}) {
	l.log("INFO", format, args)
}

func (l *VerboseTestLogger) Warnf(format string, args ...interface{}) {
	l.log("WARN", format, args)
}

func (l *VerboseTestLogger) Errorf(format string, args ...interface{}) {
	l.log("ERROR", format, args)
}

func (l *VerboseTestLogger) Fatalf(format string, args ...interface{}) {
	l.t.Helper()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.t.Fatalf("[FATAL] %s: %s", l.service, fmt.Sprintf(format, args...))
}

func (l *VerboseTestLogger) log(level, format string, args []interface{}) {
	if verboseRank[level] < verboseRank[l.level] {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.t.Logf("[%s] %s: %s", level, l.service, fmt.Sprintf(format, args...))
}
