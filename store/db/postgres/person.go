package postgres

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/hrygo/meetcal/store"
)

func (d *DB) CreatePerson(ctx context.Context, create *store.Person) (*store.Person, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM person WHERE username = $1`, create.Username).Scan(&exists)
	if err == nil {
		return nil, store.ErrAlreadyExists
	}
	if err != sql.ErrNoRows {
		return nil, errors.Wrap(err, "failed to check for existing person")
	}

	stmt := `INSERT INTO person (username, name) VALUES ($1, $2) RETURNING created_ts`
	if err := tx.QueryRowContext(ctx, stmt, create.Username, create.Name).Scan(&create.CreatedTs); err != nil {
		return nil, errors.Wrap(err, "failed to create person")
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit transaction")
	}
	return create, nil
}

func (d *DB) GetPerson(ctx context.Context, find *store.FindPerson) (*store.Person, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.Username; v != nil {
		where, args = append(where, "person.username = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT username, name, created_ts FROM person WHERE ` + joinAnd(where)

	var person store.Person
	err := d.db.QueryRowContext(ctx, query, args...).Scan(
		&person.Username,
		&person.Name,
		&person.CreatedTs,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get person")
	}
	return &person, nil
}
