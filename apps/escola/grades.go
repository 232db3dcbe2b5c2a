package main

import (
	"context"
	"flag"
	"strconv"
	"strings"

	"github.com/trezcool/escola/core"
	"github.com/trezcool/escola/core/grade"
)

func (cli *commandLine) printGradeUsage() {
	cli.println("Uso:")
	cli.println("  grade record -enrollment MATRÍCULA -subject CÓDIGO -term 1|2|3 -score NOTA")
	cli.println("  grade report -enrollment MATRÍCULA [-pass MÉDIA] [-fail MÉDIA]")
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	var found bool
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// parseScore accepts both "7.5" and "7,5".
func parseScore(s string) (float64, error) {
	score, err := strconv.ParseFloat(strings.Replace(core.CleanString(s), ",", ".", 1), 64)
	if err != nil {
		return 0, core.NewValidationError(err, core.FieldError{Field: "nota", Error: "nota inválida, use um número como 7,5"})
	}
	return score, nil
}

func (cli *commandLine) thresholds() grade.Thresholds {
	return grade.Thresholds{Pass: cli.conf.Report.PassThreshold, Fail: cli.conf.Report.FailThreshold}
}

func (cli *commandLine) runGrade(args []string) error {
	if len(args) == 0 {
		cli.printGradeUsage()
		return errHelp
	}

	switch args[0] {
	case "record":
		fs := cli.flagSet("grade record")
		enrollment := fs.String("enrollment", "", "Matrícula do aluno")
		code := fs.String("subject", "", "Código da matéria")
		termStr := fs.String("term", "", "Trimestre (1, 2 ou 3)")
		scoreStr := fs.String("score", "", "Nota")
		if err := parseFlags(fs, args[1:]); err != nil {
			return err
		}
		if *enrollment == "" || *code == "" || *termStr == "" || *scoreStr == "" {
			fs.Usage()
			return errHelp
		}
		term, err := grade.ParseTerm(*termStr)
		if err != nil {
			return err
		}
		score, err := parseScore(*scoreStr)
		if err != nil {
			return err
		}
		return cli.recordGrade(grade.RecordGrade{Enrollment: *enrollment, SubjectCode: *code, Term: term, Score: score})

	case "report":
		th := cli.thresholds()
		fs := cli.flagSet("grade report")
		enrollment := fs.String("enrollment", "", "Matrícula do aluno")
		fs.Float64Var(&th.Pass, "pass", th.Pass, "Média mínima para aprovação")
		fs.Float64Var(&th.Fail, "fail", th.Fail, "Média máxima para reprovação")
		if err := parseFlags(fs, args[1:]); err != nil {
			return err
		}
		if *enrollment == "" {
			fs.Usage()
			return errHelp
		}
		return cli.printReport(*enrollment, th)

	default:
		cli.printGradeUsage()
		return errHelp
	}
}

func (cli *commandLine) recordGrade(rg grade.RecordGrade) error {
	if err := cli.grades.RecordGrade(context.Background(), rg); err != nil {
		return err
	}
	cli.printf("Nota %.2f lançada para a matrícula %s em %s, %sº trimestre.\n",
		rg.Score, core.CleanString(rg.Enrollment), core.CleanString(rg.SubjectCode), rg.Term)
	return nil
}

func (cli *commandLine) printReport(enrollment string, th grade.Thresholds) error {
	rep, err := cli.grades.GenerateReport(context.Background(), enrollment, th)
	if err != nil {
		return err
	}

	cli.printf("---Boletim do aluno com matrícula %s---\n", rep.Enrollment)
	for _, sub := range rep.Subjects {
		cli.printf("Matéria: %s\n", sub.Subject)
		for _, ts := range sub.Scores {
			cli.printf("  %sº trimestre: %.2f\n", ts.Term, ts.Score)
		}
		if sub.Complete {
			cli.printf("  Média final: %.2f - %s\n", sub.Mean, sub.Status)
		} else {
			cli.println("  Notas incompletas, sem status final.")
		}
	}
	return nil
}
