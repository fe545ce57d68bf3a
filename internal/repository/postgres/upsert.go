package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// upsertByKey returns the id of the row in table matching the natural key,
// inserting values when no such row exists. created is true when this call
// inserted the row. A concurrent insert of the same key resolves to the
// winner's row.
func upsertByKey(ctx context.Context, q Querier, table string, key squirrel.Sqlizer, values map[string]any) (id int64, created bool, err error) {
	id, err = selectIDByKey(ctx, q, table, key)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, err
	}

	query, args, err := psql.Insert(table).
		SetMap(values).
		Suffix("ON CONFLICT DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return 0, false, err
	}

	err = q.GetContext(ctx, &id, query, args...)
	if err == nil {
		return id, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, err
	}

	// Lost the race: another writer inserted the same key
	id, err = selectIDByKey(ctx, q, table, key)
	return id, false, err
}

func selectIDByKey(ctx context.Context, q Querier, table string, key squirrel.Sqlizer) (int64, error) {
	query, args, err := psql.Select("id").From(table).Where(key).Limit(1).ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := q.GetContext(ctx, &id, query, args...); err != nil {
		return 0, err
	}
	return id, nil
}
