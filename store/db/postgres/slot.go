package postgres

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/hrygo/meetcal/internal/timefmt"
	"github.com/hrygo/meetcal/store"
)

func (d *DB) CreateSlot(ctx context.Context, create *store.Slot) (*store.Slot, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM person WHERE username = $1`, create.Username).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, store.ErrPersonNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to check referenced person")
	}

	stmt := `INSERT INTO slot (uid, username, start_ts, end_ts) VALUES ($1, $2, $3, $4) RETURNING id, created_ts`
	if err := tx.QueryRowContext(ctx, stmt,
		create.UID,
		create.Username,
		timefmt.Format(create.Start),
		timefmt.Format(create.End),
	).Scan(&create.ID, &create.CreatedTs); err != nil {
		return nil, errors.Wrap(err, "failed to create slot")
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit transaction")
	}
	return create, nil
}

func (d *DB) ListSlots(ctx context.Context, find *store.FindSlot) ([]*store.Slot, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.Username; v != nil {
		where, args = append(where, "slot.username = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT id, uid, username, start_ts, end_ts, created_ts FROM slot
		WHERE ` + joinAnd(where) + ` ORDER BY slot.id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query slots")
	}
	defer rows.Close()

	list := make([]*store.Slot, 0)
	for rows.Next() {
		var slot store.Slot
		var startRaw, endRaw string
		if err := rows.Scan(
			&slot.ID,
			&slot.UID,
			&slot.Username,
			&startRaw,
			&endRaw,
			&slot.CreatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan slot")
		}
		if slot.Start, err = timefmt.Parse(startRaw); err != nil {
			return nil, errors.Wrapf(err, "corrupt start_ts for slot %d", slot.ID)
		}
		if slot.End, err = timefmt.Parse(endRaw); err != nil {
			return nil, errors.Wrapf(err, "corrupt end_ts for slot %d", slot.ID)
		}
		list = append(list, &slot)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate slots")
	}
	return list, nil
}
