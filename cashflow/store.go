/*
store.go - Storage interface for plans

PURPOSE:
  Defines the persistence boundary. The engine treats storage as an
  external key-value collaborator: whole plans in, whole plans out, keyed
  by an opaque plan ID. Plans are small (tens of user-entered rows) so
  replace-on-save is simpler and safer than per-field diffing.

IMPLEMENTATIONS:
  cashflow/store:  In-memory, for tests and dev
  store/sqlite:    SQLite-backed, for production

SEE ALSO:
  - types.go: The Plan aggregate
*/
package cashflow

import (
	"context"
)

// Store persists plans keyed by ID.
type Store interface {
	// GetPlan returns the plan, or nil if no plan exists under the ID.
	GetPlan(ctx context.Context, id string) (*Plan, error)

	// SavePlan replaces the plan stored under the ID.
	SavePlan(ctx context.Context, id string, p Plan) error

	// DeletePlan removes the plan. Deleting a missing plan is not an error.
	DeletePlan(ctx context.Context, id string) error

	// ListPlans returns the IDs of all stored plans, sorted.
	ListPlans(ctx context.Context) ([]string, error)
}
