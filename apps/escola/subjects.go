package main

import (
	"context"

	"github.com/trezcool/escola/core/subject"
)

func (cli *commandLine) printSubjectUsage() {
	cli.println("Uso:")
	cli.println("  subject add -name NOME -code CÓDIGO")
	cli.println("  subject list")
	cli.println("  subject update -code CÓDIGO -name NOME")
	cli.println("  subject remove -code CÓDIGO")
}

func (cli *commandLine) runSubject(args []string) error {
	if len(args) == 0 {
		cli.printSubjectUsage()
		return errHelp
	}

	switch args[0] {
	case "add":
		fs := cli.flagSet("subject add")
		name := fs.String("name", "", "Nome da matéria")
		code := fs.String("code", "", "Código da matéria")
		if err := parseFlags(fs, args[1:]); err != nil {
			return err
		}
		return cli.addSubject(subject.NewSubject{Name: *name, Code: *code})

	case "list":
		return cli.listSubjects()

	case "update":
		fs := cli.flagSet("subject update")
		code := fs.String("code", "", "Código da matéria a atualizar")
		name := fs.String("name", "", "Novo nome")
		if err := parseFlags(fs, args[1:]); err != nil {
			return err
		}
		if *code == "" {
			fs.Usage()
			return errHelp
		}
		var us subject.UpdateSubject
		if isFlagSet(fs, "name") {
			us.Name = name
		}
		return cli.updateSubject(*code, us)

	case "remove":
		fs := cli.flagSet("subject remove")
		code := fs.String("code", "", "Código da matéria a remover")
		if err := parseFlags(fs, args[1:]); err != nil {
			return err
		}
		if *code == "" {
			fs.Usage()
			return errHelp
		}
		return cli.removeSubject(*code)

	default:
		cli.printSubjectUsage()
		return errHelp
	}
}

func (cli *commandLine) addSubject(ns subject.NewSubject) error {
	sub, err := cli.subjects.Create(context.Background(), ns)
	if err != nil {
		return err
	}
	cli.printf("Matéria %s cadastrada com sucesso.\n", sub.Name)
	return nil
}

func (cli *commandLine) listSubjects() error {
	subjects, err := cli.subjects.QueryAll(context.Background())
	if err != nil {
		return err
	}
	if len(subjects) == 0 {
		cli.println("Nenhuma matéria cadastrada.")
		return nil
	}

	cli.println("---Lista de Matérias---")
	for _, sub := range subjects {
		cli.printf("Matéria: %s - Código: %s\n", sub.Name, sub.Code)
	}
	return nil
}

func (cli *commandLine) updateSubject(code string, us subject.UpdateSubject) error {
	if err := cli.subjects.Update(context.Background(), code, us); err != nil {
		return err
	}
	cli.printf("Matéria com código %s foi atualizada.\n", code)
	return nil
}

func (cli *commandLine) removeSubject(code string) error {
	if err := cli.subjects.Delete(context.Background(), code); err != nil {
		return err
	}
	cli.printf("Matéria com código %s foi removida.\n", code)
	return nil
}
