package main

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/trezcool/escola/core/grade"
	"github.com/trezcool/escola/core/student"
	"github.com/trezcool/escola/core/subject"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errEndOfInput = errors.New("end of input")
)

// inputError signals that the operator input ended or could not be read.
type inputError struct {
	err error
}

func (e *inputError) Error() string { return "reading input: " + e.err.Error() }
func (e *inputError) Unwrap() error { return e.err }

type menu struct {
	cli     *commandLine
	scanner *bufio.Scanner
	prompt  bool
}

type menuAction struct {
	label string
	do    func() error
}

// question binds a prompt to the string it fills.
type question struct {
	label string
	dst   *string
}

// runMenu reads options line by line until the operator leaves or the input ends.
// Prompts are shown when the input is a terminal or when forced.
func (cli *commandLine) runMenu(forcePrompt bool) error {
	m := &menu{cli: cli, scanner: bufio.NewScanner(cli.in), prompt: forcePrompt}
	if f, ok := cli.in.(*os.File); ok && isTerminalFunc(int(f.Fd())) {
		m.prompt = true
	}

	err := m.run()
	var inErr *inputError
	if errors.As(err, &inErr) && inErr.err == errEndOfInput {
		cli.println()
		return nil
	}
	return err
}

func (m *menu) ask(label string) (string, error) {
	if m.prompt {
		m.cli.printf("%s: ", label)
	}
	if !m.scanner.Scan() {
		if err := m.scanner.Err(); err != nil {
			return "", &inputError{err}
		}
		return "", &inputError{errEndOfInput}
	}
	return strings.TrimSpace(m.scanner.Text()), nil
}

func (m *menu) askAll(questions ...question) error {
	for _, q := range questions {
		answer, err := m.ask(q.label)
		if err != nil {
			return err
		}
		*q.dst = answer
	}
	return nil
}

// askOptional returns nil for a blank answer so the field is left unchanged.
func (m *menu) askOptional(label string) (*string, error) {
	answer, err := m.ask(label + " (deixe em branco para manter)")
	if err != nil || answer == "" {
		return nil, err
	}
	return &answer, nil
}

func (m *menu) run() error {
	for {
		m.cli.println()
		m.cli.println("=== Sistema Escolar ===")
		m.cli.println("1 - Gerenciar alunos")
		m.cli.println("2 - Gerenciar matérias")
		m.cli.println("3 - Gerenciar notas")
		m.cli.println("0 - Sair")
		opt, err := m.ask("Escolha uma opção")
		if err != nil {
			return err
		}

		switch strings.ToLower(opt) {
		case "1":
			err = m.submenu("Alunos", m.studentActions())
		case "2":
			err = m.submenu("Matérias", m.subjectActions())
		case "3":
			err = m.submenu("Notas", m.gradeActions())
		case "0", "sair":
			m.cli.println("Saindo do sistema.")
			return nil
		default:
			m.cli.println("Opção inválida, tente novamente.")
		}
		if err != nil {
			return err
		}
	}
}

// submenu loops over actions until "0". Action failures are shown and the loop goes on;
// only input errors end it.
func (m *menu) submenu(title string, actions []menuAction) error {
	for {
		m.cli.println()
		m.cli.printf("--- %s ---\n", title)
		for i, a := range actions {
			m.cli.printf("%d - %s\n", i+1, a.label)
		}
		m.cli.println("0 - Voltar")
		opt, err := m.ask("Escolha uma opção")
		if err != nil {
			return err
		}
		if opt == "0" {
			return nil
		}

		n, convErr := strconv.Atoi(opt)
		if convErr != nil || n < 1 || n > len(actions) {
			m.cli.println("Opção inválida, tente novamente.")
			continue
		}
		if err := actions[n-1].do(); err != nil {
			var inErr *inputError
			if errors.As(err, &inErr) {
				return err
			}
			m.cli.fail(err)
		}
	}
}

func (m *menu) studentActions() []menuAction {
	return []menuAction{
		{label: "Adicionar aluno", do: func() error {
			var ns student.NewStudent
			err := m.askAll(
				question{"Nome do aluno", &ns.Name},
				question{"Matrícula", &ns.EnrollmentCode},
				question{"Data de nascimento (dd/mm/aaaa)", &ns.BirthDate},
				question{"Nome do responsável", &ns.GuardianName},
				question{"Telefone do responsável", &ns.GuardianPhone},
				question{"Série", &ns.GradeLevel},
			)
			if err != nil {
				return err
			}
			return m.cli.addStudent(ns)
		}},
		{label: "Listar alunos", do: m.cli.listStudents},
		{label: "Atualizar aluno", do: func() error {
			enrollment, err := m.ask("Matrícula do aluno")
			if err != nil {
				return err
			}
			var us student.UpdateStudent
			if us.Name, err = m.askOptional("Novo nome"); err != nil {
				return err
			}
			if us.GradeLevel, err = m.askOptional("Nova série"); err != nil {
				return err
			}
			return m.cli.updateStudent(enrollment, us)
		}},
		{label: "Remover aluno", do: func() error {
			enrollment, err := m.ask("Matrícula do aluno")
			if err != nil {
				return err
			}
			return m.cli.removeStudent(enrollment)
		}},
	}
}

func (m *menu) subjectActions() []menuAction {
	return []menuAction{
		{label: "Cadastrar matéria", do: func() error {
			var ns subject.NewSubject
			if err := m.askAll(question{"Nome da matéria", &ns.Name}, question{"Código da matéria", &ns.Code}); err != nil {
				return err
			}
			return m.cli.addSubject(ns)
		}},
		{label: "Listar matérias", do: m.cli.listSubjects},
		{label: "Atualizar matéria", do: func() error {
			code, err := m.ask("Código da matéria")
			if err != nil {
				return err
			}
			var us subject.UpdateSubject
			if us.Name, err = m.askOptional("Novo nome"); err != nil {
				return err
			}
			return m.cli.updateSubject(code, us)
		}},
		{label: "Remover matéria", do: func() error {
			code, err := m.ask("Código da matéria")
			if err != nil {
				return err
			}
			return m.cli.removeSubject(code)
		}},
	}
}

func (m *menu) gradeActions() []menuAction {
	return []menuAction{
		{label: "Lançar nota", do: func() error {
			var enrollment, code, termStr, scoreStr string
			err := m.askAll(
				question{"Matrícula do aluno", &enrollment},
				question{"Código da matéria", &code},
				question{"Trimestre (1, 2 ou 3)", &termStr},
				question{"Nota", &scoreStr},
			)
			if err != nil {
				return err
			}
			t, err := grade.ParseTerm(termStr)
			if err != nil {
				return err
			}
			score, err := parseScore(scoreStr)
			if err != nil {
				return err
			}
			return m.cli.recordGrade(grade.RecordGrade{Enrollment: enrollment, SubjectCode: code, Term: t, Score: score})
		}},
		{label: "Gerar boletim", do: func() error {
			enrollment, err := m.ask("Matrícula do aluno")
			if err != nil {
				return err
			}
			return m.cli.printReport(enrollment, m.cli.thresholds())
		}},
	}
}
