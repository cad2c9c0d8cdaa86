package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"habitTrackerAPI/internal/record"
)

const recordColumns = `date, checked, image_url, image_public_id, note, utc_offset_minutes, created_at, updated_at`

type PostgresRecordStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewPostgresRecordStore(pool *pgxpool.Pool) *PostgresRecordStore {
	return &PostgresRecordStore{pool: pool, now: time.Now}
}

func (s *PostgresRecordStore) SetClock(now func() time.Time) {
	s.now = now
}

func scanRecord(row pgx.Row) (*record.WakeupRecord, error) {
	var r record.WakeupRecord
	err := row.Scan(
		&r.Date,
		&r.Checked,
		&r.ImageURL,
		&r.ImagePublicID,
		&r.Note,
		&r.UTCOffsetMinutes,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *PostgresRecordStore) FetchOne(ctx context.Context, date string) (*record.WakeupRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM wakeup_records WHERE date = $1`

	r, err := scanRecord(s.pool.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch record %s: %w", date, err)
	}
	return r, nil
}

func (s *PostgresRecordStore) FetchRange(ctx context.Context, from, to string) ([]record.WakeupRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM wakeup_records
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC`

	rows, err := s.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	defer rows.Close()

	records := make([]record.WakeupRecord, 0)
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return records, nil
}

func (s *PostgresRecordStore) Upsert(ctx context.Context, in record.UpsertInput) error {
	offsetSet := `
			utc_offset_minutes = EXCLUDED.utc_offset_minutes,`
	if in.KeepUTCOffset {
		offsetSet = ""
	}

	query := `
		INSERT INTO wakeup_records (date, checked, image_url, image_public_id, note, utc_offset_minutes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (date)
		DO UPDATE SET
			checked = EXCLUDED.checked,
			image_url = EXCLUDED.image_url,
			image_public_id = EXCLUDED.image_public_id,
			note = EXCLUDED.note,` + offsetSet + `
			updated_at = EXCLUDED.updated_at`

	_, err := s.pool.Exec(ctx, query,
		in.Date, in.Checked, in.ImageURL, in.ImagePublicID, in.Note, in.UTCOffsetMinutes, s.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert record %s: %w", in.Date, err)
	}
	return nil
}

func (s *PostgresRecordStore) Patch(ctx context.Context, date string, p record.Patch) error {
	now := s.now().UTC()

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO wakeup_records (date, checked, created_at, updated_at)
			VALUES ($1, FALSE, $2, $2)
			ON CONFLICT (date) DO NOTHING`, date, now)
		if err != nil {
			return fmt.Errorf("failed to ensure record %s: %w", date, err)
		}

		sets := []string{"updated_at = $1"}
		args := []interface{}{now}
		add := func(column string, value interface{}) {
			args = append(args, value)
			sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
		}
		if p.Checked != nil {
			add("checked", *p.Checked)
		}
		if p.ImageURL.Set {
			add("image_url", p.ImageURL.Value)
		}
		if p.ImagePublicID.Set {
			add("image_public_id", p.ImagePublicID.Value)
		}
		if p.Note.Set {
			add("note", p.Note.Value)
		}
		args = append(args, date)

		query := fmt.Sprintf(`UPDATE wakeup_records SET %s WHERE date = $%d`, strings.Join(sets, ", "), len(args))
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to patch record %s: %w", date, err)
		}
		return nil
	})
}

func (s *PostgresRecordStore) Delete(ctx context.Context, date string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM wakeup_records WHERE date = $1`, date)
	if err != nil {
		return false, fmt.Errorf("failed to delete record %s: %w", date, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresRecordStore) BackfillUTCOffset(ctx context.Context, minutes int) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE wakeup_records SET utc_offset_minutes = $1 WHERE utc_offset_minutes IS NULL`, minutes)
	if err != nil {
		return 0, fmt.Errorf("failed to backfill utc offset: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *PostgresRecordStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresRecordStore) Close() {
	s.pool.Close()
}
