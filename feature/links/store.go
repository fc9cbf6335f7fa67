package links

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"travel-admin/core/database"
	"travel-admin/core/reconcile"

	"gorm.io/gorm"
)

// Link is one stored association between a parent and a child id.
type Link = reconcile.Association[uint, uint]

// Repository is the association store used by the Service.
type Repository interface {
	// List returns every row of the relation table, soft-deleted rows included.
	List(ctx context.Context, rel Relation) ([]Link, error)
	// Live returns the live links of one parent.
	Live(ctx context.Context, rel Relation, parent uint) ([]Link, error)
	// Create links child to parent and returns the association id.
	Create(ctx context.Context, rel Relation, parent, child uint) (uint, error)
	// DeleteByPair unlinks child from parent.
	DeleteByPair(ctx context.Context, rel Relation, parent, child uint) error
	// DeleteByID unlinks the association with the given id.
	DeleteByID(ctx context.Context, rel Relation, id uint) error
	// MissingColumns lists the expected columns absent from the relation table.
	MissingColumns(ctx context.Context, rel Relation) ([]string, error)
	// Migrate creates or upgrades every relation table.
	Migrate(ctx context.Context) error
}

// Store is the gorm implementation of Repository.
// Errors are wrapped with the reconcile failure taxonomy.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStore creates a store on db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

type linkRow struct {
	ID        uint
	ParentID  uint
	ChildID   uint
	IsDeleted bool
}

func (r linkRow) toLink() Link {
	return Link{ID: r.ID, ParentID: r.ParentID, ChildID: r.ChildID, IsDeleted: r.IsDeleted}
}

func selectLinks(rel Relation) string {
	return fmt.Sprintf("id, %s AS parent_id, %s AS child_id, is_deleted", rel.ParentColumn, rel.ChildColumn)
}

func pairClause(rel Relation) string {
	return fmt.Sprintf("%s = ? AND %s = ?", rel.ParentColumn, rel.ChildColumn)
}

// List returns every row of the relation table ordered by id.
func (s *Store) List(ctx context.Context, rel Relation) ([]Link, error) {
	var rows []linkRow
	err := s.db.WithContext(ctx).Table(rel.Table).
		Select(selectLinks(rel)).
		Order("id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", rel.Table, classify(err))
	}

	out := make([]Link, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toLink())
	}
	return out, nil
}

// Live returns the live links of one parent ordered by id.
func (s *Store) Live(ctx context.Context, rel Relation, parent uint) ([]Link, error) {
	var rows []linkRow
	err := s.db.WithContext(ctx).Table(rel.Table).
		Select(selectLinks(rel)).
		Where(rel.ParentColumn+" = ? AND is_deleted = ?", parent, false).
		Order("id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load %s %d links: %w", rel.Parent, parent, classify(err))
	}

	out := make([]Link, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toLink())
	}
	return out, nil
}

// Create links child to parent. A soft-deleted pair is revived, a live pair is a conflict.
func (s *Store) Create(ctx context.Context, rel Relation, parent, child uint) (uint, error) {
	var id uint
	now := s.now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing linkRow
		err := tx.Table(rel.Table).
			Select("id, is_deleted").
			Where(pairClause(rel), parent, child).
			Take(&existing).Error

		switch {
		case err == nil && !existing.IsDeleted:
			return fmt.Errorf("%s already linked: %w", rel.describe(parent, child), reconcile.ErrConflict)
		case err == nil:
			id = existing.ID
			return tx.Table(rel.Table).
				Where("id = ?", existing.ID).
				Updates(map[string]any{"is_deleted": false, "updated_at": now}).Error
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		err = tx.Table(rel.Table).Create(map[string]any{
			rel.ParentColumn: parent,
			rel.ChildColumn:  child,
			"is_deleted":     false,
			"created_at":     now,
			"updated_at":     now,
		}).Error
		if err != nil {
			return err
		}

		var created linkRow
		if err := tx.Table(rel.Table).Select("id").Where(pairClause(rel), parent, child).Take(&created).Error; err != nil {
			return err
		}
		id = created.ID
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to link %s: %w", rel.describe(parent, child), classify(err))
	}
	return id, nil
}

// DeleteByPair soft-deletes the live link between parent and child.
func (s *Store) DeleteByPair(ctx context.Context, rel Relation, parent, child uint) error {
	res := s.db.WithContext(ctx).Table(rel.Table).
		Where(pairClause(rel)+" AND is_deleted = ?", parent, child, false).
		Updates(map[string]any{"is_deleted": true, "updated_at": s.now()})
	if res.Error != nil {
		return fmt.Errorf("failed to unlink %s: %w", rel.describe(parent, child), classify(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s is not linked: %w", rel.describe(parent, child), reconcile.ErrNotFound)
	}
	return nil
}

// DeleteByID soft-deletes the live link with the given association id.
func (s *Store) DeleteByID(ctx context.Context, rel Relation, id uint) error {
	res := s.db.WithContext(ctx).Table(rel.Table).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{"is_deleted": true, "updated_at": s.now()})
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s link %d: %w", rel.Kind, id, classify(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s link %d: %w", rel.Kind, id, reconcile.ErrNotFound)
	}
	return nil
}

// MissingColumns lists the expected columns absent from the relation table.
func (s *Store) MissingColumns(ctx context.Context, rel Relation) ([]string, error) {
	return database.MissingColumns(s.db.WithContext(ctx), rel.Table, rel.Columns()...)
}

// Migrate creates or upgrades every relation table.
func (s *Store) Migrate(ctx context.Context) error {
	for _, rel := range relations {
		if err := s.db.WithContext(ctx).AutoMigrate(rel.Model); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", rel.Table, err)
		}
	}
	return nil
}

// classify wraps driver errors with the reconcile failure taxonomy.
func classify(err error) error {
	var netErr net.Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, reconcile.ErrConflict), errors.Is(err, reconcile.ErrNotFound), errors.Is(err, reconcile.ErrNetwork):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", reconcile.ErrConflict, err)
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr):
		return fmt.Errorf("%w: %w", reconcile.ErrNetwork, err)
	default:
		return err
	}
}
