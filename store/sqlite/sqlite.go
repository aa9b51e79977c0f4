/*
Package sqlite provides a SQLite-backed implementation of cashflow.Store.

PURPOSE:
  Persists budget plans in SQLite. Plans are tiny (a handful of
  user-entered rows per collection), so SavePlan replaces the plan's rows
  wholesale inside one transaction instead of diffing per item.

KEY TABLES:
  plans:              Starting balance and projection horizon per plan
  incomes:            Income items, ordered by position
  credit_cards:       Credit-card obligations
  recurring_expenses: Scheduled expenses
  one_time_expenses:  Single-date expenses

MONEY COLUMNS:
  Amounts are stored as TEXT and parsed back through decimal, never as
  REAL, so balances round-trip exactly.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/cashflow.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - cashflow/store.go: Interface definition
  - cashflow/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/cashflow-engine/cashflow"
)

// Store implements cashflow.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A :memory: database exists per connection, so the pool must not
	// grow past one. Writes are mutex-serialized anyway.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS plans (
		id TEXT PRIMARY KEY,
		starting_balance TEXT NOT NULL,
		projection_days INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS incomes (
		plan_id TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		amount TEXT NOT NULL,
		frequency TEXT NOT NULL,
		next_pay_date TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 1,
		position INTEGER NOT NULL,
		PRIMARY KEY (plan_id, id)
	);

	CREATE TABLE IF NOT EXISTS credit_cards (
		plan_id TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		balance TEXT NOT NULL,
		due_date TEXT NOT NULL,
		pay_date TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 1,
		position INTEGER NOT NULL,
		PRIMARY KEY (plan_id, id)
	);

	CREATE TABLE IF NOT EXISTS recurring_expenses (
		plan_id TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		amount TEXT NOT NULL,
		category TEXT NOT NULL,
		frequency TEXT NOT NULL,
		next_due_date TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 1,
		position INTEGER NOT NULL,
		PRIMARY KEY (plan_id, id)
	);

	CREATE TABLE IF NOT EXISTS one_time_expenses (
		plan_id TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		amount TEXT NOT NULL,
		category TEXT NOT NULL,
		date TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 1,
		position INTEGER NOT NULL,
		PRIMARY KEY (plan_id, id)
	);

	CREATE INDEX IF NOT EXISTS idx_incomes_plan ON incomes(plan_id, position);
	CREATE INDEX IF NOT EXISTS idx_credit_cards_plan ON credit_cards(plan_id, position);
	CREATE INDEX IF NOT EXISTS idx_recurring_expenses_plan ON recurring_expenses(plan_id, position);
	CREATE INDEX IF NOT EXISTS idx_one_time_expenses_plan ON one_time_expenses(plan_id, position);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// STORE INTERFACE
// =============================================================================

// GetPlan loads a full plan, or returns nil if the ID is unknown.
func (s *Store) GetPlan(ctx context.Context, id string) (*cashflow.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := cashflow.NewPlan()
	var balance string
	err := s.db.QueryRowContext(ctx,
		`SELECT starting_balance, projection_days FROM plans WHERE id = ?`, id,
	).Scan(&balance, &p.ProjectionDays)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load plan %s: %w", id, err)
	}
	p.StartingBalance = cashflow.ParseAmount(balance)

	if p.Incomes, err = s.loadIncomes(ctx, id); err != nil {
		return nil, err
	}
	if p.CreditCards, err = s.loadCreditCards(ctx, id); err != nil {
		return nil, err
	}
	if p.RecurringExpenses, err = s.loadRecurringExpenses(ctx, id); err != nil {
		return nil, err
	}
	if p.OneTimeExpenses, err = s.loadOneTimeExpenses(ctx, id); err != nil {
		return nil, err
	}

	return &p, nil
}

// SavePlan replaces the stored plan under the ID.
func (s *Store) SavePlan(ctx context.Context, id string, p cashflow.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO plans (id, starting_balance, projection_days, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			starting_balance = excluded.starting_balance,
			projection_days = excluded.projection_days,
			updated_at = excluded.updated_at`,
		id, p.StartingBalance.String(), p.ProjectionDays, now, now)
	if err != nil {
		return fmt.Errorf("failed to save plan %s: %w", id, err)
	}

	for _, table := range []string{"incomes", "credit_cards", "recurring_expenses", "one_time_expenses"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE plan_id = ?`, table), id); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, item := range p.Incomes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO incomes (plan_id, id, name, amount, frequency, next_pay_date, active, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, item.ID, item.Name, item.Amount.String(), string(item.Frequency),
			item.NextPayDate, boolToInt(item.IsActive()), i)
		if err != nil {
			return fmt.Errorf("failed to save income %s: %w", item.ID, err)
		}
	}
	for i, card := range p.CreditCards {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO credit_cards (plan_id, id, name, balance, due_date, pay_date, active, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, card.ID, card.Name, card.Balance.String(), card.DueDate,
			card.PayDate, boolToInt(card.IsActive()), i)
		if err != nil {
			return fmt.Errorf("failed to save credit card %s: %w", card.ID, err)
		}
	}
	for i, item := range p.RecurringExpenses {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO recurring_expenses (plan_id, id, name, amount, category, frequency, next_due_date, active, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, item.ID, item.Name, item.Amount.String(), item.Category,
			string(item.Frequency), item.NextDueDate, boolToInt(item.IsActive()), i)
		if err != nil {
			return fmt.Errorf("failed to save recurring expense %s: %w", item.ID, err)
		}
	}
	for i, item := range p.OneTimeExpenses {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO one_time_expenses (plan_id, id, name, amount, category, date, active, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, item.ID, item.Name, item.Amount.String(), item.Category,
			item.Date, boolToInt(item.IsActive()), i)
		if err != nil {
			return fmt.Errorf("failed to save one-time expense %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit plan %s: %w", id, err)
	}
	return nil
}

// DeletePlan removes a plan and, via cascade, all of its items.
func (s *Store) DeletePlan(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete plan %s: %w", id, err)
	}
	return nil
}

// ListPlans returns all plan IDs, sorted.
func (s *Store) ListPlans(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id FROM plans ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan plan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// =============================================================================
// ITEM LOADERS
// =============================================================================

func (s *Store) loadIncomes(ctx context.Context, planID string) ([]cashflow.Income, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, amount, frequency, next_pay_date, active
		FROM incomes WHERE plan_id = ? ORDER BY position`, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to load incomes: %w", err)
	}
	defer rows.Close()

	var items []cashflow.Income
	for rows.Next() {
		var item cashflow.Income
		var amount, freq string
		var active int
		if err := rows.Scan(&item.ID, &item.Name, &amount, &freq, &item.NextPayDate, &active); err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		item.Amount = cashflow.ParseAmount(amount)
		item.Frequency = cashflow.Frequency(freq)
		item.Active = intToBoolPtr(active)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) loadCreditCards(ctx context.Context, planID string) ([]cashflow.CreditCard, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, balance, due_date, pay_date, active
		FROM credit_cards WHERE plan_id = ? ORDER BY position`, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to load credit cards: %w", err)
	}
	defer rows.Close()

	var items []cashflow.CreditCard
	for rows.Next() {
		var card cashflow.CreditCard
		var balance string
		var active int
		if err := rows.Scan(&card.ID, &card.Name, &balance, &card.DueDate, &card.PayDate, &active); err != nil {
			return nil, fmt.Errorf("failed to scan credit card: %w", err)
		}
		card.Balance = cashflow.ParseAmount(balance)
		card.Active = intToBoolPtr(active)
		items = append(items, card)
	}
	return items, rows.Err()
}

func (s *Store) loadRecurringExpenses(ctx context.Context, planID string) ([]cashflow.RecurringExpense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, amount, category, frequency, next_due_date, active
		FROM recurring_expenses WHERE plan_id = ? ORDER BY position`, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring expenses: %w", err)
	}
	defer rows.Close()

	var items []cashflow.RecurringExpense
	for rows.Next() {
		var item cashflow.RecurringExpense
		var amount, freq string
		var active int
		if err := rows.Scan(&item.ID, &item.Name, &amount, &item.Category, &freq, &item.NextDueDate, &active); err != nil {
			return nil, fmt.Errorf("failed to scan recurring expense: %w", err)
		}
		item.Amount = cashflow.ParseAmount(amount)
		item.Frequency = cashflow.Frequency(freq)
		item.Active = intToBoolPtr(active)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) loadOneTimeExpenses(ctx context.Context, planID string) ([]cashflow.OneTimeExpense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, amount, category, date, active
		FROM one_time_expenses WHERE plan_id = ? ORDER BY position`, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to load one-time expenses: %w", err)
	}
	defer rows.Close()

	var items []cashflow.OneTimeExpense
	for rows.Next() {
		var item cashflow.OneTimeExpense
		var amount string
		var active int
		if err := rows.Scan(&item.ID, &item.Name, &amount, &item.Category, &item.Date, &active); err != nil {
			return nil, fmt.Errorf("failed to scan one-time expense: %w", err)
		}
		item.Amount = cashflow.ParseAmount(amount)
		item.Active = intToBoolPtr(active)
		items = append(items, item)
	}
	return items, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBoolPtr(i int) *bool {
	// Active items stay nil (the default) so JSON output omits the flag.
	if i != 0 {
		return nil
	}
	b := false
	return &b
}
