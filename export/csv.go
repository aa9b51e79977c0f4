/*
Package export reads and writes the CSV interchange formats.

PURPOSE:
  Two formats live here:

  Projection CSV - a flat table of the projected ledger, one row per day.
  Plan CSV       - the full input data as named sections, each with its
                   own fixed column order, so a plan can be backed up and
                   restored (or moved between accounts) as a single file.

PLAN CSV LAYOUT:
  # comment preamble
  [STARTING_BALANCE]   Amount
  [PROJECTION_DAYS]    Days
  [INCOME_SOURCES]     ID,Name,Amount,Frequency,NextPayDate
  [CREDIT_CARDS]       ID,Name,Balance,DueDate,PayDate
  [RECURRING_EXPENSES] ID,Name,Amount,Category,Frequency,NextDueDate
  [ONE_TIME_EXPENSES]  ID,Name,Amount,Category,Date

IMPORT TOLERANCE:
  Import never fails on a bad row. Unknown sections are skipped, malformed
  numbers become zero, a missing frequency defaults to monthly, a missing
  category to Other, and rows with too few columns are dropped. A single
  garbled line must not cost the user the rest of their data.

SEE ALSO:
  - cashflow/types.go: Plan and item shapes
  - api/handlers.go: The import/export endpoints
*/
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/warp/cashflow-engine/cashflow"
)

// Section markers in the plan CSV.
const (
	sectionStartingBalance   = "STARTING_BALANCE"
	sectionProjectionDays    = "PROJECTION_DAYS"
	sectionIncomes           = "INCOME_SOURCES"
	sectionCreditCards       = "CREDIT_CARDS"
	sectionRecurringExpenses = "RECURRING_EXPENSES"
	sectionOneTimeExpenses   = "ONE_TIME_EXPENSES"
)

// =============================================================================
// PROJECTION CSV
// =============================================================================

// ProjectionHeader is the column order of the projection export.
var ProjectionHeader = []string{"Date", "Income", "Expenses", "Net Change", "Running Balance"}

// WriteProjection writes the ledger as a flat CSV table, amounts fixed to
// two decimal places.
func WriteProjection(w io.Writer, ledger []cashflow.LedgerDay) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(ProjectionHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, day := range ledger {
		row := []string{
			day.Date.String(),
			day.Income.StringFixed(2),
			day.Expenses.StringFixed(2),
			day.NetChange.StringFixed(2),
			day.RunningBalance.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// =============================================================================
// PLAN CSV - WRITE
// =============================================================================

// WritePlan writes the full plan in the sectioned interchange format.
func WritePlan(w io.Writer, p cashflow.Plan) error {
	if _, err := fmt.Fprintf(w, "# Cashflow Engine - Input Data Export\n# Exported on: %s\n\n",
		time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	sections := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{sectionStartingBalance, []string{"Amount"},
			[][]string{{p.StartingBalance.String()}}},
		{sectionProjectionDays, []string{"Days"},
			[][]string{{strconv.Itoa(p.ProjectionDays)}}},
		{sectionIncomes, []string{"ID", "Name", "Amount", "Frequency", "NextPayDate"},
			incomeRows(p.Incomes)},
		{sectionCreditCards, []string{"ID", "Name", "Balance", "DueDate", "PayDate"},
			creditCardRows(p.CreditCards)},
		{sectionRecurringExpenses, []string{"ID", "Name", "Amount", "Category", "Frequency", "NextDueDate"},
			recurringExpenseRows(p.RecurringExpenses)},
		{sectionOneTimeExpenses, []string{"ID", "Name", "Amount", "Category", "Date"},
			oneTimeExpenseRows(p.OneTimeExpenses)},
	}

	for i, sec := range sections {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%s]\n", sec.name); err != nil {
			return err
		}
		cw := csv.NewWriter(w)
		if err := cw.Write(sec.header); err != nil {
			return fmt.Errorf("section %s: %w", sec.name, err)
		}
		for _, row := range sec.rows {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("section %s: %w", sec.name, err)
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("section %s: %w", sec.name, err)
		}
	}
	return nil
}

func incomeRows(items []cashflow.Income) [][]string {
	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = []string{item.ID, item.Name, item.Amount.String(), string(item.Frequency), item.NextPayDate}
	}
	return rows
}

func creditCardRows(items []cashflow.CreditCard) [][]string {
	rows := make([][]string, len(items))
	for i, card := range items {
		rows[i] = []string{card.ID, card.Name, card.Balance.String(), card.DueDate, card.PayDate}
	}
	return rows
}

func recurringExpenseRows(items []cashflow.RecurringExpense) [][]string {
	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = []string{item.ID, item.Name, item.Amount.String(), item.Category, string(item.Frequency), item.NextDueDate}
	}
	return rows
}

func oneTimeExpenseRows(items []cashflow.OneTimeExpense) [][]string {
	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = []string{item.ID, item.Name, item.Amount.String(), item.Category, item.Date}
	}
	return rows
}

// =============================================================================
// PLAN CSV - READ
// =============================================================================

// ReadPlan parses a sectioned plan CSV back into a Plan. Parsing is
// tolerant per the package contract; only an unreadable stream is an error.
func ReadPlan(r io.Reader) (cashflow.Plan, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	plan := cashflow.NewPlan()
	plan.Incomes = []cashflow.Income{}
	plan.CreditCards = []cashflow.CreditCard{}
	plan.RecurringExpenses = []cashflow.RecurringExpense{}
	plan.OneTimeExpenses = []cashflow.OneTimeExpense{}

	section := ""
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return plan, fmt.Errorf("reading plan CSV: %w", err)
		}
		if len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "") {
			continue
		}

		first := strings.TrimSpace(rec[0])
		if strings.HasPrefix(first, "[") && strings.HasSuffix(first, "]") {
			section = first[1 : len(first)-1]
			continue
		}
		if isHeaderRow(first) {
			continue
		}

		switch section {
		case sectionStartingBalance:
			plan.StartingBalance = cashflow.ParseAmount(first)

		case sectionProjectionDays:
			if days, err := strconv.Atoi(first); err == nil && days > 0 {
				plan.ProjectionDays = days
			}

		case sectionIncomes:
			if len(rec) >= 5 {
				plan.Incomes = append(plan.Incomes, cashflow.Income{
					ID:          rec[0],
					Name:        rec[1],
					Amount:      cashflow.ParseAmount(rec[2]),
					Frequency:   frequencyOrMonthly(rec[3]),
					NextPayDate: rec[4],
				})
			}

		case sectionCreditCards:
			if len(rec) >= 5 {
				plan.CreditCards = append(plan.CreditCards, cashflow.CreditCard{
					ID:      rec[0],
					Name:    rec[1],
					Balance: cashflow.ParseAmount(rec[2]),
					DueDate: rec[3],
					PayDate: rec[4],
				})
			}

		case sectionRecurringExpenses:
			if len(rec) >= 6 {
				plan.RecurringExpenses = append(plan.RecurringExpenses, cashflow.RecurringExpense{
					ID:          rec[0],
					Name:        rec[1],
					Amount:      cashflow.ParseAmount(rec[2]),
					Category:    categoryOrOther(rec[3]),
					Frequency:   frequencyOrMonthly(rec[4]),
					NextDueDate: rec[5],
				})
			}

		case sectionOneTimeExpenses:
			if len(rec) >= 5 {
				plan.OneTimeExpenses = append(plan.OneTimeExpenses, cashflow.OneTimeExpense{
					ID:       rec[0],
					Name:     rec[1],
					Amount:   cashflow.ParseAmount(rec[2]),
					Category: categoryOrOther(rec[3]),
					Date:     rec[4],
				})
			}
		}
	}

	return plan, nil
}

// isHeaderRow recognizes the per-section column header lines.
func isHeaderRow(first string) bool {
	switch first {
	case "ID", "Amount", "Days":
		return true
	}
	return false
}

func frequencyOrMonthly(s string) cashflow.Frequency {
	if freq, ok := cashflow.ParseFrequency(s); ok {
		return freq
	}
	return cashflow.Monthly
}

func categoryOrOther(s string) string {
	if s == "" {
		return "Other"
	}
	return s
}
