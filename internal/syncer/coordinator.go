// Package syncer sequences the link and sync flows. It owns the
// per-user state machine (Idle -> Linking -> Syncing -> Ready) and the
// concurrency guard that keeps at most one sync in flight per user.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/biguard-dev/biguard/internal/model"
	"github.com/biguard-dev/biguard/internal/provider"
	"github.com/biguard-dev/biguard/internal/store"
)

// ErrSyncFailed means the account or transaction pull failed. Prior
// in-memory data is retained.
var ErrSyncFailed = errors.New("transaction sync failed")

// State of the per-user link/sync machine.
type State string

const (
	StateIdle    State = "idle"
	StateLinking State = "linking"
	StateSyncing State = "syncing"
	StateReady   State = "ready"
	StateError   State = "error"
)

// Gateway is the provider surface the coordinator drives.
type Gateway interface {
	CreateLinkSession(ctx context.Context, sess model.SessionContext) (provider.LinkSession, error)
	ExchangePublicToken(ctx context.Context, sess model.SessionContext, publicToken string) (provider.AccessGrant, error)
	IsSandboxGrant(grant provider.AccessGrant) bool
	GenerateSandboxTransactions(ctx context.Context, grant provider.AccessGrant) error
}

// Source pulls accounts and transactions from the backend.
type Source interface {
	ListAccounts(ctx context.Context, sess model.SessionContext) ([]model.Account, error)
	SyncTransactions(ctx context.Context, sess model.SessionContext, pageSize int) ([]model.Transaction, error)
}

// DashboardSource fetches the remaining dashboard sub-resources.
type DashboardSource interface {
	ListBudgets(ctx context.Context, sess model.SessionContext) ([]model.Budget, error)
	GetAnomalySummary(ctx context.Context, sess model.SessionContext) (*model.AnomalySummary, error)
	GetDashboardStats(ctx context.Context, sess model.SessionContext) (*model.DashboardStats, error)
}

// SyncResult is the outcome of one guarded sync operation. Coalesced
// callers all receive the same result.
type SyncResult struct {
	Accounts     []model.Account
	Transactions []model.Transaction
}

type inflight struct {
	done   chan struct{}
	result SyncResult
	err    error
}

// Coordinator serializes link and sync operations per user and feeds
// results into the dashboard store.
type Coordinator struct {
	gateway  Gateway
	source   Source
	dash     DashboardSource
	store    *store.Store
	pageSize int
	log      zerolog.Logger

	mu       sync.Mutex
	states   map[string]State
	grants   map[string]provider.AccessGrant
	seeded   map[string]bool
	synced   map[string]bool
	inflight map[string]*inflight
}

// New creates a Coordinator.
func New(gateway Gateway, source Source, dash DashboardSource, st *store.Store, pageSize int, log zerolog.Logger) *Coordinator {
	return &Coordinator{
		gateway:  gateway,
		source:   source,
		dash:     dash,
		store:    st,
		pageSize: pageSize,
		log:      log,
		states:   make(map[string]State),
		grants:   make(map[string]provider.AccessGrant),
		seeded:   make(map[string]bool),
		synced:   make(map[string]bool),
		inflight: make(map[string]*inflight),
	}
}

// State returns the user's current machine state.
func (c *Coordinator) State(userID string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.states[userID]; ok {
		return s
	}
	return StateIdle
}

// NeedsLink reports whether the user has no access grant yet. The link
// flow starts because no grant exists, not because a timer fired.
func (c *Coordinator) NeedsLink(userID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.grants[userID]
	return !ok
}

// StartLink moves Idle -> Linking and requests a link session. The
// returned session token is handed to the external link UI, which
// produces the public token for CompleteLink.
func (c *Coordinator) StartLink(ctx context.Context, sess model.SessionContext) (provider.LinkSession, error) {
	c.setState(sess.UserID, StateLinking)
	c.store.SetLoading(store.ResourceLink)

	linkSession, err := c.gateway.CreateLinkSession(ctx, sess)
	if err != nil {
		c.setState(sess.UserID, StateIdle)
		c.store.SetError(store.ResourceLink, err.Error())
		return provider.LinkSession{}, err
	}
	return linkSession, nil
}

// CompleteLink exchanges the public token, seeds sandbox data exactly
// once for sandbox grants, and runs the post-link sync.
func (c *Coordinator) CompleteLink(ctx context.Context, sess model.SessionContext, publicToken string) (SyncResult, error) {
	grant, err := c.gateway.ExchangePublicToken(ctx, sess, publicToken)
	if err != nil {
		c.setState(sess.UserID, StateIdle)
		c.store.SetError(store.ResourceLink, err.Error())
		return SyncResult{}, err
	}

	c.mu.Lock()
	c.grants[sess.UserID] = grant
	needSeed := c.gateway.IsSandboxGrant(grant) && !c.seeded[sess.UserID]
	if needSeed {
		c.seeded[sess.UserID] = true
	}
	c.mu.Unlock()

	if needSeed {
		c.log.Info().Str("user", sess.UserID).Msg("seeding sandbox transactions")
		if err := c.gateway.GenerateSandboxTransactions(ctx, grant); err != nil {
			// Seeding is best-effort bootstrap; the sync still runs.
			c.log.Warn().Err(err).Str("user", sess.UserID).Msg("sandbox seeding failed")
		}
	}

	c.store.MarkLinkReady()
	return c.Sync(ctx, sess)
}

// Sync is the single guarded entry point for initial-load, post-link,
// and manual-refresh synchronization. A call arriving while a sync for
// the same user is in flight attaches to the pending operation and
// receives its result; exactly one network-level sync runs.
func (c *Coordinator) Sync(ctx context.Context, sess model.SessionContext) (SyncResult, error) {
	c.mu.Lock()
	if fl, ok := c.inflight[sess.UserID]; ok {
		c.mu.Unlock()
		<-fl.done
		return fl.result, fl.err
	}
	fl := &inflight{done: make(chan struct{})}
	c.inflight[sess.UserID] = fl
	hadData := c.synced[sess.UserID]
	c.states[sess.UserID] = StateSyncing
	c.mu.Unlock()

	c.store.SetLoading(store.ResourceSync)
	log := c.log.With().Str("user", sess.UserID).Str("sync_id", uuid.NewString()).Logger()
	log.Info().Msg("sync started")

	accounts, err := c.source.ListAccounts(ctx, sess)
	var txs []model.Transaction
	if err == nil {
		txs, err = c.source.SyncTransactions(ctx, sess, c.pageSize)
	}

	c.mu.Lock()
	delete(c.inflight, sess.UserID)
	if err != nil {
		wrapped := fmt.Errorf("%w: %v", ErrSyncFailed, err)
		fl.err = wrapped
		if hadData {
			// Refresh failure: stay Ready on stale data.
			c.states[sess.UserID] = StateReady
		} else {
			// Initial sync failure: back to Idle so linking can
			// restart.
			c.states[sess.UserID] = StateIdle
		}
		c.mu.Unlock()

		c.store.SetError(store.ResourceSync, wrapped.Error())
		log.Error().Err(err).Msg("sync failed")
		close(fl.done)
		return SyncResult{}, wrapped
	}
	c.synced[sess.UserID] = true
	c.states[sess.UserID] = StateReady
	c.mu.Unlock()

	fl.result = SyncResult{Accounts: accounts, Transactions: txs}
	c.store.SetSyncResult(accounts, txs)
	log.Info().Int("accounts", len(accounts)).Int("transactions", len(txs)).Msg("sync complete")
	close(fl.done)
	return fl.result, nil
}

// LoadBudgets refreshes the budget sub-resource.
func (c *Coordinator) LoadBudgets(ctx context.Context, sess model.SessionContext) error {
	c.store.SetLoading(store.ResourceBudgets)
	budgets, err := c.dash.ListBudgets(ctx, sess)
	if err != nil {
		c.store.SetError(store.ResourceBudgets, err.Error())
		return err
	}
	c.store.SetBudgets(budgets)
	return nil
}

// LoadAnomalySummary refreshes the anomaly sub-resource. On failure
// the summary is dropped entirely; a risk level is never fabricated.
func (c *Coordinator) LoadAnomalySummary(ctx context.Context, sess model.SessionContext) error {
	c.store.SetLoading(store.ResourceAnomaly)
	summary, err := c.dash.GetAnomalySummary(ctx, sess)
	if err != nil {
		c.store.SetAnomalyFailure(err.Error())
		return err
	}
	c.store.SetAnomalySummary(summary)
	return nil
}

// LoadStats refreshes the server-computed dashboard stats.
func (c *Coordinator) LoadStats(ctx context.Context, sess model.SessionContext) error {
	c.store.SetLoading(store.ResourceStats)
	stats, err := c.dash.GetDashboardStats(ctx, sess)
	if err != nil {
		c.store.SetError(store.ResourceStats, err.Error())
		return err
	}
	c.store.SetStats(stats)
	return nil
}

func (c *Coordinator) setState(userID string, s State) {
	c.mu.Lock()
	c.states[userID] = s
	c.mu.Unlock()
}
