// Package store holds the orchestrator's materialized view of the
// dashboard. It is the single mutable shared resource: the sync
// coordinator writes raw data, the reducers write derived data, and
// presentation layers only ever read consistent snapshots.
package store

import (
	"sync"
	"time"

	"github.com/biguard-dev/biguard/internal/model"
)

// Resource names a sub-resource with its own loading/error state.
// A failed fetch flags only its resource; the rest of the dashboard
// stays interactive.
type Resource string

const (
	ResourceLink    Resource = "link"
	ResourceSync    Resource = "sync"
	ResourceBudgets Resource = "budgets"
	ResourceAnomaly Resource = "anomaly"
	ResourceStats   Resource = "stats"
)

// Status is the loading/error state of one sub-resource.
type Status struct {
	Loading bool
	Err     string
}

// Snapshot is a consistent, caller-owned copy of the store's state.
type Snapshot struct {
	Accounts     []model.Account
	Transactions []model.Transaction
	Budgets      []model.Budget
	Anomaly      *model.AnomalySummary
	Stats        *model.DashboardStats
	Status       map[Resource]Status
	LastSynced   time.Time
}

// Store is safe for concurrent use.
type Store struct {
	mu           sync.RWMutex
	accounts     []model.Account
	transactions []model.Transaction
	budgets      []model.Budget
	anomaly      *model.AnomalySummary
	stats        *model.DashboardStats
	status       map[Resource]Status
	lastSynced   time.Time
}

// New creates an empty Store.
func New() *Store {
	return &Store{status: make(map[Resource]Status)}
}

// SetLoading marks a resource as loading and clears its prior error.
func (s *Store) SetLoading(r Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[r] = Status{Loading: true}
}

// SetError records a scoped failure. Data already held for the
// resource is retained (stale-but-available).
func (s *Store) SetError(r Resource, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[r] = Status{Err: msg}
}

// SetSyncResult replaces accounts and transactions after a successful
// sync and clears the sync status.
func (s *Store) SetSyncResult(accounts []model.Account, transactions []model.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = accounts
	s.transactions = transactions
	s.lastSynced = time.Now()
	s.status[ResourceSync] = Status{}
}

// SetBudgets replaces the budget set and clears the budgets status.
func (s *Store) SetBudgets(budgets []model.Budget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets = budgets
	s.status[ResourceBudgets] = Status{}
}

// SetAnomalySummary replaces the anomaly summary and clears the
// anomaly status. Pass nil to show no anomaly card at all; the store
// never fabricates a risk level.
func (s *Store) SetAnomalySummary(summary *model.AnomalySummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.anomaly = summary
	s.status[ResourceAnomaly] = Status{}
}

// SetAnomalyFailure records an anomaly backend failure and drops the
// summary, so the dashboard shows no card instead of a stale risk
// level.
func (s *Store) SetAnomalyFailure(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.anomaly = nil
	s.status[ResourceAnomaly] = Status{Err: msg}
}

// SetStats replaces the server-computed dashboard stats and clears the
// stats status.
func (s *Store) SetStats(stats *model.DashboardStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = stats
	s.status[ResourceStats] = Status{}
}

// MarkLinkReady clears the link status after a completed link flow.
func (s *Store) MarkLinkReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[ResourceLink] = Status{}
}

// Snapshot returns a deep copy of the current state. Mutating the
// snapshot never affects the store or other readers.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Accounts:     append([]model.Account(nil), s.accounts...),
		Transactions: append([]model.Transaction(nil), s.transactions...),
		Budgets:      append([]model.Budget(nil), s.budgets...),
		Stats:        s.stats,
		Status:       make(map[Resource]Status, len(s.status)),
		LastSynced:   s.lastSynced,
	}
	if s.anomaly != nil {
		a := *s.anomaly
		a.Transactions = append([]model.Transaction(nil), s.anomaly.Transactions...)
		snap.Anomaly = &a
	}
	for r, st := range s.status {
		snap.Status[r] = st
	}
	return snap
}
