package links

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"travel-admin/core/metrics"
	"travel-admin/core/reconcile"

	"go.uber.org/zap"
)

// Report is the result of one reconciliation, as returned by the API and archived.
type Report struct {
	Kind     string `json:"kind"`
	ParentID uint   `json:"parent_id"`
	// Status is "ok" when every operation succeeded, "partial" otherwise.
	Status  string `json:"status"`
	Message string `json:"message"`
	reconcile.Outcome[uint]
}

const (
	StatusOK      = "ok"
	StatusPartial = "partial"
)

func newReport(rel Relation, parent uint, outcome *reconcile.Outcome[uint]) *Report {
	status := StatusOK
	if outcome.Partial() {
		status = StatusPartial
	}
	return &Report{
		Kind:     rel.Kind,
		ParentID: parent,
		Status:   status,
		Message:  outcome.Message(),
		Outcome:  *outcome,
	}
}

// ParentLinks holds the live links of one parent.
type ParentLinks struct {
	ParentID uint   `json:"parent_id"`
	ChildIDs []uint `json:"child_ids"`
	// LinkIDs maps each child id to its association id.
	LinkIDs map[uint]uint `json:"link_ids"`
}

// SchemaStatus reports whether a relation table exposes its expected columns.
type SchemaStatus struct {
	Kind    string   `json:"kind"`
	Table   string   `json:"table"`
	OK      bool     `json:"ok"`
	Missing []string `json:"missing,omitempty"`
}

// Service owns the association tables and routes every mutation through the reconciler.
type Service struct {
	store   Repository
	cfg     reconcile.Config
	cache   *reconcile.BaselineCache
	archive *Archive
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewService creates a new link service. archive and m may be nil.
func NewService(store Repository, cfg reconcile.Config, archive *Archive, m *metrics.Metrics, logger *zap.Logger) *Service {
	return &Service{
		store:   store,
		cfg:     cfg,
		cache:   reconcile.NewBaselineCache(cfg.CacheTTL()),
		archive: archive,
		metrics: m,
		logger:  logger,
	}
}

// Kinds returns every relationship kind.
func (s *Service) Kinds() []Relation {
	return Relations()
}

// ListGrouped returns the live links of every parent of a kind, ordered by parent id.
func (s *Service) ListGrouped(ctx context.Context, kind string) ([]ParentLinks, error) {
	rel, err := LookupRelation(kind)
	if err != nil {
		return nil, err
	}

	records, err := reconcile.Load(ctx, s.cache, rel.Kind, func(ctx context.Context) ([]Link, error) {
		return s.store.List(ctx, rel)
	})
	if err != nil {
		return nil, err
	}

	grouped := reconcile.GroupByParent(records)
	parents := make([]uint, 0, len(grouped))
	for parent := range grouped {
		parents = append(parents, parent)
	}
	slices.Sort(parents)

	out := make([]ParentLinks, 0, len(parents))
	for _, parent := range parents {
		out = append(out, ParentLinks{
			ParentID: parent,
			ChildIDs: grouped[parent],
			LinkIDs:  reconcile.IndexByChild(records, parent),
		})
	}
	return out, nil
}

// Get returns the live child ids of one parent.
func (s *Service) Get(ctx context.Context, kind string, parent uint) ([]uint, error) {
	rel, err := LookupRelation(kind)
	if err != nil {
		return nil, err
	}
	if parent == 0 {
		return nil, reconcile.ErrInvalidParent
	}

	live, err := s.store.Live(ctx, rel, parent)
	if err != nil {
		return nil, err
	}
	return childIDs(live), nil
}

// Preview returns the plan that Update would apply, without mutating anything.
func (s *Service) Preview(ctx context.Context, kind string, parent uint, desired []uint) (*reconcile.Plan[uint], error) {
	baseline, err := s.Get(ctx, kind, parent)
	if err != nil {
		return nil, err
	}
	if err := validate(desired); err != nil {
		return nil, err
	}

	plan := reconcile.Diff(baseline, desired)
	return &plan, nil
}

// Create links children to a parent that has no links yet.
func (s *Service) Create(ctx context.Context, kind string, parent uint, children []uint) (*Report, error) {
	rel, err := LookupRelation(kind)
	if err != nil {
		return nil, err
	}
	return s.reconcile(ctx, rel, parent, nil, children)
}

// Update reconciles the links of a parent to exactly desired.
func (s *Service) Update(ctx context.Context, kind string, parent uint, desired []uint) (*Report, error) {
	rel, err := LookupRelation(kind)
	if err != nil {
		return nil, err
	}
	if parent == 0 {
		return nil, reconcile.ErrInvalidParent
	}

	live, err := s.store.Live(ctx, rel, parent)
	if err != nil {
		return nil, err
	}
	return s.reconcile(ctx, rel, parent, live, desired)
}

// DeleteAll removes every link of a parent.
func (s *Service) DeleteAll(ctx context.Context, kind string, parent uint) (*Report, error) {
	return s.Update(ctx, kind, parent, []uint{})
}

// CheckSchema verifies that every relation table exposes its expected columns.
func (s *Service) CheckSchema(ctx context.Context) ([]SchemaStatus, error) {
	out := make([]SchemaStatus, 0, len(relations))
	for _, rel := range Relations() {
		missing, err := s.store.MissingColumns(ctx, rel)
		if err != nil {
			return nil, err
		}
		out = append(out, SchemaStatus{
			Kind:    rel.Kind,
			Table:   rel.Table,
			OK:      len(missing) == 0,
			Missing: missing,
		})
	}
	return out, nil
}

// ErrArchiveDisabled is returned by History when reports are not archived.
var ErrArchiveDisabled = errors.New("report archive is disabled")

// History returns the archived reports of one parent, newest first.
func (s *Service) History(ctx context.Context, kind string, parent uint, limit int) ([]ArchivedReport, error) {
	rel, err := LookupRelation(kind)
	if err != nil {
		return nil, err
	}
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.archive.History(ctx, rel.Kind, parent, limit)
}

// Migrate creates or upgrades every relation table and drops every cached baseline.
func (s *Service) Migrate(ctx context.Context) error {
	if err := s.store.Migrate(ctx); err != nil {
		return err
	}
	s.cache.Flush()
	return nil
}

func (s *Service) reconcile(ctx context.Context, rel Relation, parent uint, baseline []Link, desired []uint) (*Report, error) {
	start := time.Now()
	index := reconcile.IndexByChild(baseline, parent)

	link := func(parent, child uint) reconcile.Operation {
		return func(ctx context.Context) error {
			_, err := s.store.Create(ctx, rel, parent, child)
			return err
		}
	}
	unlink := func(parent, child uint) reconcile.Operation {
		if !rel.UnlinkByID {
			return func(ctx context.Context) error {
				return s.store.DeleteByPair(ctx, rel, parent, child)
			}
		}
		id, ok := index[child]
		return func(ctx context.Context) error {
			if !ok {
				return fmt.Errorf("%s has no association id: %w", rel.describe(parent, child), reconcile.ErrNotFound)
			}
			return s.store.DeleteByID(ctx, rel, id)
		}
	}

	outcome, err := reconcile.Reconcile(ctx, parent, childIDs(baseline), desired, link, unlink, s.cfg.Options()...)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(rel.Kind)
	report := newReport(rel, parent, outcome)
	s.observe(rel, report, time.Since(start))

	if s.archive != nil {
		if _, err := s.archive.Save(ctx, report); err != nil {
			s.logger.Warn("Failed to archive link report",
				zap.String("kind", rel.Kind),
				zap.Uint("parent_id", parent),
				zap.Error(err),
			)
		}
	}

	return report, nil
}

func (s *Service) observe(rel Relation, report *Report, elapsed time.Duration) {
	s.metrics.ObserveRun(rel.Kind, report.Status, elapsed)
	s.metrics.AddOperations(rel.Kind, string(reconcile.OperationAdd), "success", report.AddedCount)
	s.metrics.AddOperations(rel.Kind, string(reconcile.OperationRemove), "success", report.RemovedCount)
	for _, f := range report.Failures {
		s.metrics.AddOperations(rel.Kind, string(f.Kind), string(f.Class()), 1)
	}

	fields := []zap.Field{
		zap.String("kind", rel.Kind),
		zap.Uint("parent_id", report.ParentID),
		zap.Int("added", report.AddedCount),
		zap.Int("removed", report.RemovedCount),
		zap.Int("failed", len(report.Failures)),
		zap.Duration("elapsed", elapsed),
	}
	if report.Status == StatusOK {
		s.logger.Info("Links reconciled", fields...)
		return
	}

	for _, f := range report.Failures {
		fields = append(fields, zap.NamedError(fmt.Sprintf("%s_%d", f.Kind, f.ChildID), f.Err))
	}
	s.logger.Warn("Links partially reconciled", append(fields, zap.Bool("incomplete", report.Incomplete))...)
}

func childIDs(links []Link) []uint {
	ids := make([]uint, 0, len(links))
	for _, l := range links {
		if !l.IsDeleted {
			ids = append(ids, l.ChildID)
		}
	}
	return reconcile.Dedupe(ids)
}

func validate(ids []uint) error {
	for _, id := range ids {
		if id == 0 {
			return reconcile.ErrInvalidChild
		}
	}
	return nil
}
