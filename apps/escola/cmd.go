package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/escola/core"
	"github.com/trezcool/escola/core/grade"
	"github.com/trezcool/escola/core/student"
	"github.com/trezcool/escola/core/subject"
	"github.com/trezcool/escola/storage/database/sqlx"
)

var (
	errHelp = errors.New("help provided")

	commands = []string{"migrate", "initdb", "student", "subject", "grade", "menu"}
)

type commandLine struct {
	db     *sqlx.DB
	conf   *core.Config
	logger core.Logger

	students *student.Service
	subjects *subject.Service
	grades   *grade.Service

	in  io.Reader
	out io.Writer
}

func newCommandLine(db *sqlx.DB, conf *core.Config, logger core.Logger, in io.Reader, out io.Writer) *commandLine {
	return &commandLine{
		db:       db,
		conf:     conf,
		logger:   logger,
		students: student.NewService(db, sqlxrepos.NewStudentRepository(), logger),
		subjects: subject.NewService(db, sqlxrepos.NewSubjectRepository(), logger),
		grades:   grade.NewService(db, sqlxrepos.NewGradeRepository(), sqlxrepos.NewKeyResolver(), logger),
		in:       in,
		out:      out,
	}
}

func (cli *commandLine) printf(format string, a ...interface{}) {
	_, _ = fmt.Fprintf(cli.out, format, a...)
}

func (cli *commandLine) println(a ...interface{}) {
	_, _ = fmt.Fprintln(cli.out, a...)
}

func (cli *commandLine) printUsage() {
	cli.println("Uso:")
	cli.println("  migrate COMMAND [ARGS]                      - executa um comando do goose (up, down, status, ...)")
	cli.println("  initdb                                      - cria o banco de dados e as tabelas")
	cli.println("  student add|list|update|remove [OPTIONS]    - gerencia alunos")
	cli.println("  subject add|list|update|remove [OPTIONS]    - gerencia matérias")
	cli.println("  grade record|report [OPTIONS]               - lança notas e emite boletins")
	cli.println("  menu [-prompt]                              - abre o menu interativo")
}

// flagSet returns a flag set that reports errors instead of exiting.
func (cli *commandLine) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

// parseFlags parses args into fs. The flag package already printed the problem and the usage.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errHelp
	}
	return nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "initdb":
		return cli.initDB()
	case "student":
		return cli.runStudent(args[2:])
	case "subject":
		return cli.runSubject(args[2:])
	case "grade":
		return cli.runGrade(args[2:])
	case "menu":
		fs := cli.flagSet("menu")
		prompt := fs.Bool("prompt", false, "Sempre exibe os prompts, mesmo fora de um terminal")
		if err := parseFlags(fs, args[2:]); err != nil {
			return err
		}
		return cli.runMenu(*prompt)
	default:
		cli.printUsage()
		if s := suggest(args[1], commands); s != "" {
			cli.printf("Você quis dizer %q?\n", s)
		}
		return errHelp
	}
}

// suggest returns the candidate closest to word, or "" when none is close enough.
func suggest(word string, candidates []string) string {
	const minRatio = 0.6

	var best string
	var bestRatio float64
	for _, c := range candidates {
		m := difflib.NewMatcher(strings.Split(word, ""), strings.Split(c, ""))
		if r := m.Ratio(); r >= minRatio && r > bestRatio {
			best, bestRatio = c, r
		}
	}
	return best
}

// fail prints err as an operator-facing message. Store failures are also logged.
func (cli *commandLine) fail(err error) {
	cli.println(describeErr(err))
	if core.KindOf(err) == core.KindStore {
		cli.logger.Error("operation failed", "err", err)
	}
}
