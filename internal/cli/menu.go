package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"despesas/internal/core"
	"despesas/internal/log"
)

// Recorder adds expenses and loads the sample data set.
type Recorder interface {
	Add(ctx context.Context, description, category, rawAmount, rawDate string) (core.Expense, error)
	LoadSeed(ctx context.Context) (int, error)
}

// Reporter answers the read-only questions asked from the menu.
type Reporter interface {
	List(ctx context.Context) ([]core.Expense, error)
	Analyze(ctx context.Context) (core.Analysis, error)
	MonthlyReport(ctx context.Context, rawPeriod string) (core.MonthOverview, error)
}

// Exporter writes the store to a file.
type Exporter interface {
	Export(ctx context.Context, path string) (int, error)
}

// MenuOptions holds the menu settings that come from configuration.
type MenuOptions struct {
	ExportPath   string
	ExportFormat string
}

// Menu is the interactive loop over stdin/stdout.
type Menu struct {
	in       io.Reader
	out      io.Writer
	expenses Recorder
	reports  Reporter
	exporter Exporter
	opts     MenuOptions
	logger   *log.Logger

	lines <-chan inputLine
}

type choice int

const (
	choiceSeed choice = iota
	choiceAdd
	choiceList
	choiceAnalyze
	choiceMonthly
	choiceExport
	choiceExit
)

func NewMenu(in io.Reader, out io.Writer, expenses Recorder, reports Reporter, exporter Exporter, opts MenuOptions, logger *log.Logger) *Menu {
	if logger == nil {
		logger = log.Discard()
	}
	if opts.ExportFormat == "" {
		opts.ExportFormat = "csv"
	}
	return &Menu{
		in:       in,
		out:      out,
		expenses: expenses,
		reports:  reports,
		exporter: exporter,
		opts:     opts,
		logger:   logger.WithComponent(log.ComponentMenu),
	}
}

// Run shows the menu until the user picks exit, input ends or ctx is done.
// None of those is an error.
func (m *Menu) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	m.lines = readLines(m.in, done)

	for {
		m.printf("\n%s\n\n", strings.Repeat("=", 40))
		m.printMenu()

		token, err := m.prompt(ctx, "Escolha uma opção: ")
		if err != nil {
			return m.stop(ctx, err)
		}

		c, err := parseChoice(token)
		switch {
		case err != nil:
			m.logger.DebugContext(ctx, "Invalid menu choice", log.FieldChoice, token)
			m.println("Opção inválida.")
		case c == choiceExit:
			m.println("Saindo... Até logo!")
			return nil
		default:
			m.logger.DebugContext(ctx, "Menu choice", log.FieldChoice, token)
			if err := m.dispatch(ctx, c); err != nil {
				return m.stop(ctx, err)
			}
		}

		if _, err := m.prompt(ctx, "\nPressione Enter para continuar..."); err != nil {
			return m.stop(ctx, err)
		}
	}
}

func (m *Menu) printMenu() {
	m.println("=== CONTROLE DE DESPESAS PESSOAIS ===")
	m.println("0. CARREGAR DADOS DE TESTE (Preencher automático)")
	m.println("1. Adicionar Despesa")
	m.println("2. Listar Todas as Despesas")
	m.println("3. Analisar Gastos (Gráfico)")
	m.println("4. Relatório Mensal")
	m.printf("5. Exportar para %s\n", strings.ToUpper(m.opts.ExportFormat))
	m.println("6. Sair")
}

func parseChoice(token string) (choice, error) {
	token = strings.TrimSpace(token)
	if len(token) != 1 || token[0] < '0' || token[0] > '6' {
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidMenuChoice, token)
	}
	return choice(token[0] - '0'), nil
}

// dispatch runs one action. Action failures are reported to the user; only
// the end of input is returned.
func (m *Menu) dispatch(ctx context.Context, c choice) error {
	switch c {
	case choiceSeed:
		m.loadSeed(ctx)
	case choiceAdd:
		return m.addExpense(ctx)
	case choiceList:
		m.listExpenses(ctx)
	case choiceAnalyze:
		m.analyze(ctx)
	case choiceMonthly:
		return m.monthlyReport(ctx)
	case choiceExport:
		m.export(ctx)
	}
	return nil
}

func (m *Menu) loadSeed(ctx context.Context) {
	n, err := m.expenses.LoadSeed(ctx)
	if err != nil {
		m.reportError(ctx, "load seed", err)
		return
	}
	m.println("✅ Dados de teste carregados com sucesso!")
	m.printf("Foram adicionadas %d despesas.\n", n)
}

func (m *Menu) addExpense(ctx context.Context) error {
	m.println("--- Adicionar Nova Despesa ---")

	description, err := m.prompt(ctx, "Descrição (ex: Supermercado): ")
	if err != nil {
		return err
	}
	category, err := m.prompt(ctx, "Categoria (ex: Alimentação, Transporte): ")
	if err != nil {
		return err
	}
	amount, err := m.prompt(ctx, "Valor (R$): ")
	if err != nil {
		return err
	}
	// A bad amount is reported before the date is asked for.
	if _, err := core.ParseAmount(amount); err != nil {
		m.println(invalidEntryMessage)
		return nil
	}
	date, err := m.prompt(ctx, "Data (DD/MM/AAAA) ou deixe vazio para hoje: ")
	if err != nil {
		return err
	}

	if _, err := m.expenses.Add(ctx, description, category, amount, date); err != nil {
		if errors.Is(err, core.ErrInvalidAmount) || errors.Is(err, core.ErrInvalidDate) {
			m.println(invalidEntryMessage)
			return nil
		}
		m.reportError(ctx, "add expense", err)
		return nil
	}
	m.println("✅ Despesa adicionada com sucesso!")
	return nil
}

const invalidEntryMessage = "❌ Erro: Certifique-se de digitar um valor numérico e a data no formato correto."

func (m *Menu) listExpenses(ctx context.Context) {
	m.println("--- Lista de Despesas ---")
	expenses, err := m.reports.List(ctx)
	if err != nil {
		m.reportError(ctx, "list expenses", err)
		return
	}
	if len(expenses) == 0 {
		m.println("Nenhuma despesa registrada.")
		return
	}
	renderList(m.out, expenses)
}

func (m *Menu) analyze(ctx context.Context) {
	a, err := m.reports.Analyze(ctx)
	if errors.Is(err, core.ErrNoData) {
		m.println("Sem dados para analisar.")
		return
	}
	if err != nil {
		m.reportError(ctx, "analyze", err)
		return
	}
	renderAnalysis(m.out, a)
}

func (m *Menu) monthlyReport(ctx context.Context) error {
	raw, err := m.prompt(ctx, "Digite o mês e ano para filtrar (MM/AAAA): ")
	if err != nil {
		return err
	}

	overview, err := m.reports.MonthlyReport(ctx, raw)
	if errors.Is(err, core.ErrInvalidPeriod) {
		m.println("❌ Formato inválido. Use MM/AAAA (ex: 10/2024).")
		return nil
	}
	if err != nil {
		m.reportError(ctx, "monthly report", err)
		return nil
	}
	if len(overview.Expenses) == 0 {
		m.printf("Nenhuma despesa encontrada em %s.\n", raw)
		return nil
	}
	renderMonth(m.out, raw, overview)
	return nil
}

func (m *Menu) export(ctx context.Context) {
	_, err := m.exporter.Export(ctx, m.opts.ExportPath)
	switch {
	case errors.Is(err, core.ErrNothingToExport):
		m.println("Nada para exportar.")
	case err != nil:
		m.printf("❌ Erro ao exportar: %v\n", err)
	default:
		m.printf("✅ Dados exportados com sucesso para '%s'.\n", m.opts.ExportPath)
	}
}

func (m *Menu) reportError(ctx context.Context, op string, err error) {
	m.logger.ErrorContext(ctx, "Menu action failed", log.FieldOperation, op, log.FieldError, err)
	m.printf("❌ Erro: %v\n", err)
}

// stop turns the end of input or a cancelled context into a clean exit.
func (m *Menu) stop(ctx context.Context, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		m.println("\nSaindo... Até logo!")
		m.logger.InfoContext(ctx, "Menu closed", log.FieldOperation, log.OpShutdown, "reason", err.Error())
		return nil
	}
	m.logger.ErrorContext(ctx, "Reading input failed", log.FieldError, err)
	return fmt.Errorf("read input: %w", err)
}

func (m *Menu) prompt(ctx context.Context, label string) (string, error) {
	m.printf("%s", label)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-m.lines:
		if !ok {
			return "", io.EOF
		}
		if line.err != nil {
			return "", line.err
		}
		return line.text, nil
	}
}

// inputLine is one line read from the menu input, or the error that ended it.
type inputLine struct {
	text string
	err  error
}

// readLines feeds lines from r until it fails or until done is closed. The
// last value carries the error, io.EOF when input simply ended. It runs on its
// own goroutine so a pending read never holds up shutdown. Lines have no
// length limit.
func readLines(r io.Reader, done <-chan struct{}) <-chan inputLine {
	lines := make(chan inputLine)
	send := func(l inputLine) bool {
		select {
		case lines <- l:
			return true
		case <-done:
			return false
		}
	}
	go func() {
		defer close(lines)
		br := bufio.NewReader(r)
		for {
			text, err := br.ReadString('\n')
			if text != "" || err == nil {
				if !send(inputLine{text: strings.TrimRight(text, "\r\n")}) {
					return
				}
			}
			if err != nil {
				send(inputLine{err: err})
				return
			}
		}
	}()
	return lines
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}
