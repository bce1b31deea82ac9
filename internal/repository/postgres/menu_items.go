package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/beanleaf/cafeapi/internal/domain"
	"github.com/beanleaf/cafeapi/pkg/errors"
)

type menuItemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMenuItemRepository creates a new menu item repository
func NewMenuItemRepository(db *sql.DB, logger *zap.Logger) *menuItemRepository {
	return &menuItemRepository{
		db:     db,
		logger: logger,
	}
}

const menuItemColumns = `
	id, name, description, price, category, prep_time_minutes, is_available,
	created_at, updated_at
`

func (r *menuItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = $1`

	item, err := scanMenuItem(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "menu item", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get menu item by ID", zap.Error(err))
		return nil, err
	}

	return item, nil
}

func (r *menuItemRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.MenuItem, error) {
	items := make(map[uuid.UUID]*domain.MenuItem, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(idsToStrings(ids)))
	if err != nil {
		r.logger.Error("Failed to query menu items by IDs", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			r.logger.Error("Failed to scan menu item row", zap.Error(err))
			return nil, err
		}
		items[item.ID] = item
	}

	return items, rows.Err()
}

func (r *menuItemRepository) ListAvailable(ctx context.Context) ([]*domain.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE is_available = true ORDER BY category, name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list menu items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.MenuItem, 0)
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			r.logger.Error("Failed to scan menu item row", zap.Error(err))
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func scanMenuItem(row rowScanner) (*domain.MenuItem, error) {
	var item domain.MenuItem
	var description sql.NullString
	var prepTime sql.NullInt64

	err := row.Scan(
		&item.ID,
		&item.Name,
		&description,
		&item.Price,
		&item.Category,
		&prepTime,
		&item.IsAvailable,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		item.Description = description.String
	}
	if prepTime.Valid {
		item.PrepTimeMinutes = int(prepTime.Int64)
	}

	return &item, nil
}
