package main

import (
	"os"

	"github.com/google/uuid"

	"github.com/trezcool/escola/core"
	"github.com/trezcool/escola/services/logger"
	"github.com/trezcool/escola/storage/database"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	conf, err := core.NewConfig()
	if err != nil {
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		return 1
	}

	kitLogger := logsvc.NewKitLogger(os.Stderr, conf.Debug).With("app", conf.AppName, "session", uuid.NewString())
	logger := logsvc.NewRollbarLogger(kitLogger, conf)
	defer logger.Close()

	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		logger.Error("opening database", "err", err)
		return 1
	}
	defer func() { _ = db.Close() }()

	// migrate and initdb manage the schema themselves
	if len(args) > 1 && args[1] != "migrate" && args[1] != "initdb" {
		if err := database.Migrate(db, conf.Database.Engine, logger); err != nil {
			logger.Error("migrating database", "err", err)
			return 1
		}
	}

	// start CLI
	cli := newCommandLine(db, conf, logger, os.Stdin, os.Stdout)
	if err := cli.run(args); err != nil {
		if err != errHelp {
			cli.fail(err)
		}
		return 1
	}
	return 0
}
