package main

import (
	"context"
	"flag"

	"github.com/trezcool/escola/core/student"
)

func (cli *commandLine) printStudentUsage() {
	cli.println("Uso:")
	cli.println("  student add -name NOME -enrollment MATRÍCULA [-birth-date DATA] [-guardian NOME] [-guardian-phone TELEFONE] [-grade-level SÉRIE]")
	cli.println("  student list")
	cli.println("  student update -enrollment MATRÍCULA [-name NOME] [-grade-level SÉRIE]")
	cli.println("  student remove -enrollment MATRÍCULA")
}

func (cli *commandLine) runStudent(args []string) error {
	if len(args) == 0 {
		cli.printStudentUsage()
		return errHelp
	}

	switch args[0] {
	case "add":
		fs := cli.flagSet("student add")
		name := fs.String("name", "", "Nome do aluno")
		enrollment := fs.String("enrollment", "", "Matrícula do aluno")
		birthDate := fs.String("birth-date", "", "Data de nascimento")
		guardian := fs.String("guardian", "", "Nome do responsável")
		guardianPhone := fs.String("guardian-phone", "", "Telefone do responsável")
		gradeLevel := fs.String("grade-level", "", "Série")
		if err := parseFlags(fs, args[1:]); err != nil {
			return err
		}
		return cli.addStudent(student.NewStudent{
			Name:           *name,
			EnrollmentCode: *enrollment,
			BirthDate:      *birthDate,
			GuardianPhone:  *guardianPhone,
			GuardianName:   *guardian,
			GradeLevel:     *gradeLevel,
		})

	case "list":
		return cli.listStudents()

	case "update":
		fs := cli.flagSet("student update")
		enrollment := fs.String("enrollment", "", "Matrícula do aluno a atualizar")
		name := fs.String("name", "", "Novo nome")
		gradeLevel := fs.String("grade-level", "", "Nova série")
		if err := parseFlags(fs, args[1:]); err != nil {
			return err
		}
		if *enrollment == "" {
			fs.Usage()
			return errHelp
		}

		// only flags given on the command line are updated
		var us student.UpdateStudent
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "name":
				us.Name = name
			case "grade-level":
				us.GradeLevel = gradeLevel
			}
		})
		return cli.updateStudent(*enrollment, us)

	case "remove":
		fs := cli.flagSet("student remove")
		enrollment := fs.String("enrollment", "", "Matrícula do aluno a remover")
		if err := parseFlags(fs, args[1:]); err != nil {
			return err
		}
		if *enrollment == "" {
			fs.Usage()
			return errHelp
		}
		return cli.removeStudent(*enrollment)

	default:
		cli.printStudentUsage()
		return errHelp
	}
}

func (cli *commandLine) addStudent(ns student.NewStudent) error {
	st, err := cli.students.Create(context.Background(), ns)
	if err != nil {
		return err
	}
	cli.printf("Aluno %s adicionado com sucesso.\n", st.Name)
	return nil
}

func (cli *commandLine) listStudents() error {
	students, err := cli.students.QueryAll(context.Background())
	if err != nil {
		return err
	}
	if len(students) == 0 {
		cli.println("Nenhum aluno cadastrado.")
		return nil
	}

	cli.println("---Lista de Alunos---")
	for _, st := range students {
		cli.printf("Nome: %s - Matrícula: %s - Série: %s\n", st.Name, st.EnrollmentCode, orDash(st.GradeLevel))
	}
	return nil
}

func (cli *commandLine) updateStudent(enrollment string, us student.UpdateStudent) error {
	if err := cli.students.Update(context.Background(), enrollment, us); err != nil {
		return err
	}
	cli.printf("Dados do aluno com matrícula %s foram atualizados.\n", enrollment)
	return nil
}

func (cli *commandLine) removeStudent(enrollment string) error {
	if err := cli.students.Delete(context.Background(), enrollment); err != nil {
		return err
	}
	cli.printf("Aluno com matrícula %s foi removido.\n", enrollment)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
