package command

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/accounting-office/backend/internal/application/usecase/parametrization"
	"github.com/accounting-office/backend/internal/domain/valueobject"
)

var (
	successSymbol = "✓"
	errorSymbol   = "✗"
	infoSymbol    = "→"
	warnSymbol    = "!"

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD75F"})
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	numberStyle  = cellStyle.Align(lipgloss.Right)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#585858"})
)

func printSuccess(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		successStyle.Render(successSymbol),
		message,
	)
}

func printError(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		errorStyle.Render(errorSymbol),
		errorStyle.Render(message),
	)
}

func printInfof(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		infoStyle.Render(infoSymbol),
		fmt.Sprintf(format, args...),
	)
}

func printWarn(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		warnStyle.Render(warnSymbol),
		warnStyle.Render(message),
	)
}

func printWarnings(w io.Writer, warnings []valueobject.ConfigurationWarning) {
	for _, warning := range warnings {
		printWarn(w, fmt.Sprintf("[%s] %s", warning.Kind, warning.Message))
	}
}

// newTable builds a bordered table whose columns listed in numeric are
// right-aligned.
func newTable(headers []string, numeric map[int]bool) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case numeric[col]:
				return numberStyle
			default:
				return cellStyle
			}
		})
}

func renderFindings(w io.Writer, findings []valueobject.ValidationFinding, includeConsistent bool) int {
	t := newTable(
		[]string{"Month", "Code", "Account", "Nature", "Parametrized", "Calculated", "Difference", "Status"},
		map[int]bool{4: true, 5: true, 6: true},
	)
	rows := 0
	for _, f := range findings {
		if f.IsConsistent() && !includeConsistent {
			continue
		}
		status := successStyle.Render(string(f.Status))
		if !f.IsConsistent() {
			status = errorStyle.Render(string(f.Status))
		}
		t.Row(
			fmt.Sprintf("%02d", f.Month),
			f.Code,
			f.Name,
			string(f.Nature),
			f.ParametrizedValue.StringFixed(2),
			f.CalculatedValue.StringFixed(2),
			f.AbsoluteDifference.StringFixed(2),
			status,
		)
		rows++
	}
	if rows > 0 {
		_, _ = fmt.Fprintln(w, t)
	}
	return rows
}

func renderBalance(w io.Writer, findings []valueobject.BalanceEquationFinding) {
	if len(findings) == 0 {
		return
	}
	t := newTable(
		[]string{"Month", "Assets", "Liabilities", "Revenues", "Costs/Expenses", "A - L", "R - C", "Difference", "Status"},
		map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true},
	)
	for _, b := range findings {
		status := successStyle.Render("consistent")
		if !b.IsConsistent {
			status = errorStyle.Render("inconsistent")
		}
		t.Row(
			fmt.Sprintf("%02d", b.Month),
			b.Assets.StringFixed(2),
			b.Liabilities.StringFixed(2),
			b.Revenues.StringFixed(2),
			b.CostsAndExpenses.StringFixed(2),
			b.PatrimonialDelta.StringFixed(2),
			b.ResultDelta.StringFixed(2),
			b.Difference.StringFixed(2),
			status,
		)
	}
	_, _ = fmt.Fprintln(w, t)
}

func renderStatement(w io.Writer, output *parametrization.GetStatementOutput) {
	t := newTable([]string{"Code", "Account", "Level", "Nature", "Value"}, map[int]bool{2: true, 4: true})
	for _, l := range output.Lines {
		t.Row(l.Code, l.Name, strconv.Itoa(l.Level), string(l.Nature), l.Value.StringFixed(2))
	}
	_, _ = fmt.Fprintln(w, t)
}
