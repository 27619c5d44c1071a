package inventory

import (
	"strings"

	"catalogadmin/internal/domain/models"
)

// ErrorSeverity tells a renderer how to surface Snapshot.Err.
type ErrorSeverity int

const (
	ErrorNone ErrorSeverity = iota
	// ErrorBanner: products are still displayed next to an inline notice.
	ErrorBanner
	// ErrorBlocking: nothing to display, the error replaces the list.
	ErrorBlocking
)

func (s ErrorSeverity) String() string {
	switch s {
	case ErrorBanner:
		return "banner"
	case ErrorBlocking:
		return "blocking"
	}
	return "none"
}

// Snapshot is a point-in-time copy of the controller state. Renderers only
// ever see snapshots.
type Snapshot struct {
	Category      string
	Search        string
	SortField     SortField
	SortDirection SortDirection
	Offset        int

	// Products is the derived view: displayed products in sort order.
	Products    []models.Product
	LoadedCount int

	HasMore     bool
	CanLoadMore bool

	Loading     bool
	LoadingMore bool
	Searching   bool

	Err      error
	Severity ErrorSeverity

	Categories []string
}

func (s Snapshot) SearchActive() bool {
	return strings.TrimSpace(s.Search) != ""
}

// CanToggleDirection is false while no sort field is active.
func (s Snapshot) CanToggleDirection() bool {
	return s.SortField != SortNone && s.SortField != ""
}
