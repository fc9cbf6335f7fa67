package links

import (
	"context"
	"sync"
	"testing"

	"travel-admin/core/database"
	"travel-admin/core/reconcile"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestStore returns a migrated store on an in-memory sqlite database.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	store := NewStore(db)
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func newTestService(t *testing.T, repo Repository, archive *Archive) *Service {
	t.Helper()
	cfg := reconcile.Config{MaxConcurrency: 4, OperationTimeoutSeconds: 5, CacheTTLSeconds: 60}
	return NewService(repo, cfg, archive, nil, zap.NewNop())
}

func seed(t *testing.T, store *Store, kind string, parent uint, children ...uint) {
	t.Helper()
	rel, err := LookupRelation(kind)
	require.NoError(t, err)
	for _, c := range children {
		_, err := store.Create(context.Background(), rel, parent, c)
		require.NoError(t, err)
	}
}

// flakyRepo fails selected operations and counts calls.
type flakyRepo struct {
	Repository

	mu         sync.Mutex
	failCreate map[uint]error
	failDelete map[uint]error
	creates    int
	deletes    int
	listCalls  int
	liveErr    error
}

func (f *flakyRepo) List(ctx context.Context, rel Relation) ([]Link, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()
	return f.Repository.List(ctx, rel)
}

func (f *flakyRepo) Live(ctx context.Context, rel Relation, parent uint) ([]Link, error) {
	if f.liveErr != nil {
		return nil, f.liveErr
	}
	return f.Repository.Live(ctx, rel, parent)
}

func (f *flakyRepo) Create(ctx context.Context, rel Relation, parent, child uint) (uint, error) {
	f.mu.Lock()
	f.creates++
	err := f.failCreate[child]
	f.mu.Unlock()
	if err != nil {
		return 0, err
	}
	return f.Repository.Create(ctx, rel, parent, child)
}

func (f *flakyRepo) DeleteByPair(ctx context.Context, rel Relation, parent, child uint) error {
	f.mu.Lock()
	f.deletes++
	err := f.failDelete[child]
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Repository.DeleteByPair(ctx, rel, parent, child)
}

func (f *flakyRepo) DeleteByID(ctx context.Context, rel Relation, id uint) error {
	f.mu.Lock()
	f.deletes++
	f.mu.Unlock()
	return f.Repository.DeleteByID(ctx, rel, id)
}
