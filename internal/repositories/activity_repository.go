package repositories

import (
	"context"
	"database/sql"

	intconfig "backoffice/internal/config"
	intdb "backoffice/internal/db"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

type ActivityRepository struct {
	DB *sql.DB
}

func (r ActivityRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const activitySelect = `
		SELECT a.id,
		       a.day_id,
		       COALESCE(d.day_number,0),
		       a.title,
		       COALESCE(a.description,''),
		       COALESCE(a.location,''),
		       COALESCE(a.time_start,''),
		       COALESCE(a.time_end,''),
		       a.is_transfer,
		       a.sort_order
		FROM activities a
		LEFT JOIN itinerary_days d ON d.id = a.day_id`

func scanActivity(s rowScanner) (models.Activity, error) {
	var a models.Activity
	err := s.Scan(
		&a.ID,
		&a.DayID,
		&a.DayNumber,
		&a.Title,
		&a.Description,
		&a.Location,
		&a.TimeStart,
		&a.TimeEnd,
		&a.IsTransfer,
		&a.SortOrder,
	)
	return a, err
}

func (r ActivityRepository) list(ctx context.Context, where string, args ...any) ([]models.Activity, error) {
	rows, err := r.db().QueryContext(ctx, activitySelect+" WHERE "+where+`
		ORDER BY d.day_number ASC, a.sort_order ASC, a.id ASC`, args...)
	if err != nil {
		return nil, storeErr("fetch activities", "activity", err)
	}
	defer rows.Close()

	out := []models.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return out, storeErr("scan activity", "activity", err)
		}
		out = append(out, a)
	}
	return out, storeErr("fetch activities", "activity", rows.Err())
}

// FetchActivities returns every activity of an itinerary.
func (r ActivityRepository) FetchActivities(ctx context.Context, itineraryID int64) ([]models.Activity, error) {
	return r.list(ctx, "d.itinerary_id=?", itineraryID)
}

// FetchDayActivities returns the activities of one day.
func (r ActivityRepository) FetchDayActivities(ctx context.Context, dayID int64) ([]models.Activity, error) {
	return r.list(ctx, "a.day_id=?", dayID)
}

func (r ActivityRepository) GetActivity(ctx context.Context, id int64) (models.Activity, error) {
	a, err := scanActivity(r.db().QueryRowContext(ctx, activitySelect+" WHERE a.id=? LIMIT 1", id))
	if err != nil {
		return models.Activity{}, storeErr("get activity", "activity", err)
	}
	return a, nil
}

func (r ActivityRepository) InsertActivity(ctx context.Context, a models.Activity) (models.Activity, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO activities (day_id, title, description, location, time_start, time_end, is_transfer, sort_order)
		VALUES (?,?,?,?,?,?,?,?)`,
		a.DayID, a.Title,
		intdb.NullIfEmpty(a.Description), intdb.NullIfEmpty(a.Location),
		intdb.NullIfEmpty(a.TimeStart), intdb.NullIfEmpty(a.TimeEnd),
		a.IsTransfer, a.SortOrder,
	)
	if err != nil {
		return models.Activity{}, storeErr("insert activity", "activity", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Activity{}, storeErr("insert activity", "activity", err)
	}
	a.ID = id
	return a, nil
}

// UpdateActivity edits content fields; sort order is changed only by
// SwapSortOrder.
func (r ActivityRepository) UpdateActivity(ctx context.Context, a models.Activity) error {
	res, err := r.db().ExecContext(ctx, `
		UPDATE activities SET title=?, description=?, location=?, time_start=?, time_end=?, is_transfer=?
		WHERE id=?`,
		a.Title,
		intdb.NullIfEmpty(a.Description), intdb.NullIfEmpty(a.Location),
		intdb.NullIfEmpty(a.TimeStart), intdb.NullIfEmpty(a.TimeEnd),
		a.IsTransfer, a.ID,
	)
	if err != nil {
		return storeErr("update activity", "activity", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "activity"}
	}
	return nil
}

func (r ActivityRepository) DeleteActivity(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM activities WHERE id=?`, id)
	if err != nil {
		return storeErr("delete activity", "activity", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "activity"}
	}
	return nil
}

// SwapSortOrder exchanges the sort orders of two activities of one day.
// A parking value keeps the (day_id, sort_order) key unique mid-swap.
func (r ActivityRepository) SwapSortOrder(ctx context.Context, a, b models.Activity) error {
	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return storeErr("swap sort order", "activity", err)
	}
	defer func() { _ = tx.Rollback() }()

	steps := []struct {
		order int
		id    int64
	}{
		{-1 - a.SortOrder, a.ID},
		{a.SortOrder, b.ID},
		{b.SortOrder, a.ID},
	}
	for _, s := range steps {
		if _, err := tx.ExecContext(ctx, `UPDATE activities SET sort_order=? WHERE id=?`, s.order, s.id); err != nil {
			return storeErr("swap sort order", "activity", err)
		}
	}
	return storeErr("swap sort order", "activity", tx.Commit())
}
