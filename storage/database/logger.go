package database

import (
	"fmt"
	"os"
	"strings"

	"github.com/trezcool/escola/core"
)

// gooseLogger sends goose output to the application logger.
type gooseLogger struct {
	logger core.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
	os.Exit(1)
}
