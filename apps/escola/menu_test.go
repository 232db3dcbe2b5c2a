package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/escola/tests"
)

func lines(ll ...string) string {
	return strings.Join(ll, "\n") + "\n"
}

func Test_commandLine_menu(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		prompt  bool
		wantOut []string
		notOut  []string
	}{
		{
			name:    "leave immediately",
			input:   lines("0"),
			wantOut: []string{"=== Sistema Escolar ===", "Saindo do sistema."},
			notOut:  []string{"Escolha uma opção:"},
		},
		{
			name:    "leave with sair",
			input:   lines("SAIR"),
			wantOut: []string{"Saindo do sistema."},
		},
		{
			name:    "end of input",
			input:   "",
			wantOut: []string{"=== Sistema Escolar ==="},
			notOut:  []string{"Saindo do sistema."},
		},
		{
			name:    "forced prompts",
			input:   lines("0"),
			prompt:  true,
			wantOut: []string{"Escolha uma opção: "},
		},
		{
			name:    "invalid options",
			input:   lines("9", "1", "7", "x", "0", "0"),
			wantOut: []string{"Opção inválida, tente novamente.", "--- Alunos ---", "0 - Voltar"},
		},
		{
			name: "manage students",
			input: lines(
				"1",
				"1", "Ana Souza", "2024001", "01/02/2010", "Marta Souza", "11 99999-0000", "1º Ano",
				"1", "Outra Ana", "2024001", "", "", "", "",
				"1", "", "2024009", "", "", "", "",
				"3", "2024001", "", "2º Ano",
				"3", "2024001", "", "",
				"3", "999", "Ninguém", "",
				"2",
				"4", "999",
				"4", "2024001",
				"2",
				"0", "0",
			),
			wantOut: []string{
				"Aluno Ana Souza adicionado com sucesso.",
				"Erro: A matrícula 2024001 já está no sistema.",
				"Erro: nome é obrigatório",
				"Dados do aluno com matrícula 2024001 foram atualizados.",
				"Erro: informe ao menos um campo para atualizar",
				"Erro: Matrícula 999 não encontrada.",
				"Nome: Ana Souza - Matrícula: 2024001 - Série: 2º Ano",
				"Aluno com matrícula 2024001 foi removido.",
				"Nenhum aluno cadastrado.",
				"Saindo do sistema.",
			},
		},
		{
			name: "manage subjects",
			input: lines(
				"2",
				"1", "Matemática", "MAT",
				"1", "Mat", "MAT",
				"3", "MAT", "Matemática I",
				"2",
				"4", "MAT",
				"4", "MAT",
				"0", "0",
			),
			wantOut: []string{
				"Matéria Matemática cadastrada com sucesso.",
				"Erro: O código MAT já está no sistema.",
				"Matéria com código MAT foi atualizada.",
				"Matéria: Matemática I - Código: MAT",
				"Matéria com código MAT foi removida.",
				"Erro: Matéria com código MAT não encontrada.",
			},
		},
		{
			name: "manage grades",
			input: lines(
				"1", "1", "Ana Souza", "2024001", "", "", "", "", "0",
				"2", "1", "Química", "QUI", "0",
				"3",
				"2", "2024001",
				"1", "2024001", "QUI", "1", "6",
				"1", "2024001", "QUI", "2", "6,5",
				"1", "2024001", "QUI", "2", "6",
				"1", "2024001", "QUI", "5", "6",
				"1", "2024001", "QUI", "3", "seis",
				"1", "2024001", "GEO", "3", "6",
				"1", "2024001", "QUI", "3", "6",
				"2", "2024001",
				"0", "0",
			),
			wantOut: []string{
				"Nenhuma nota encontrada para este aluno.",
				"Nota 6.50 lançada para a matrícula 2024001 em QUI, 2º trimestre.",
				"Erro: trimestre inválido, use um de: 1, 2, 3",
				"Erro: nota inválida, use um número como 7,5",
				"Erro: Matéria com código GEO não encontrada.",
				"Matéria: Química\n  1º trimestre: 6.00\n  2º trimestre: 6.00\n  3º trimestre: 6.00\n  Média final: 6.00 - Recuperação",
			},
		},
		{
			name:    "input ends inside a submenu",
			input:   lines("1", "1", "Ana Souza"),
			wantOut: []string{"--- Alunos ---"},
			notOut:  []string{"adicionado com sucesso"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, out, _ := setup(t, tt.input)

			args := []string{"escola", "menu"}
			if tt.prompt {
				args = append(args, "-prompt")
			}
			require.NoError(t, cli.run(args))

			for _, want := range tt.wantOut {
				assert.Contains(t, out.String(), want)
			}
			for _, not := range tt.notOut {
				assert.NotContains(t, out.String(), not)
			}
		})
	}
}

func Test_commandLine_menu_cascade(t *testing.T) {
	cli, _, db := setup(t, lines("1", "4", "2024001", "0", "0"))

	st := testutil.CreateStudent(t, db, "Ana Souza", "2024001")
	sub := testutil.CreateSubject(t, db, "Matemática", "MAT")
	testutil.InsertGrade(t, db, st.ID, sub.ID, 1, 7)
	testutil.InsertGrade(t, db, st.ID, sub.ID, 2, 8)

	require.NoError(t, cli.run([]string{"escola", "menu"}))
	assert.Zero(t, testutil.CountGrades(t, db))
	assert.Zero(t, testutil.CountOrphanGrades(t, db))
}

func Test_commandLine_menu_terminal(t *testing.T) {
	orig := isTerminalFunc
	t.Cleanup(func() { isTerminalFunc = orig })

	var calls int
	isTerminalFunc = func(fd int) bool {
		calls++
		return true
	}

	// a strings.Reader is never a terminal, the check only applies to files
	cli, out, _ := setup(t, lines("0"))
	require.NoError(t, cli.run([]string{"escola", "menu"}))
	assert.Zero(t, calls)
	assert.NotContains(t, out.String(), "Escolha uma opção:")
}
