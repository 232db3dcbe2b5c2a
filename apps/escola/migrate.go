package main

import (
	"github.com/pressly/goose/v3"

	"github.com/trezcool/escola/core"
	"github.com/trezcool/escola/storage/database"
)

var gooseRunFunc = goose.Run // mockable

func (cli *commandLine) migrate(args []string) error {
	dir, err := database.SetupMigrations(cli.conf.Database.Engine, cli.logger)
	if err != nil {
		return err
	}
	return gooseRunFunc(args[0], cli.db.DB, dir, args[1:]...)
}

// initDB creates the database when the engine needs it and applies every migration.
func (cli *commandLine) initDB() error {
	if err := database.CreateIfNotExist(cli.conf); err != nil {
		return err
	}
	if err := database.Migrate(cli.db, cli.conf.Database.Engine, cli.logger); err != nil {
		return err
	}
	cli.printf("Banco de dados %q e tabelas criadas com sucesso.\n", cli.dbName())
	return nil
}

func (cli *commandLine) dbName() string {
	if cli.conf.Database.Engine == core.EngineSQLite {
		return cli.conf.Database.Path
	}
	return cli.conf.Database.Name
}
