package record

import "context"

// Store is the persistence contract for wakeup records. Date bounds are
// compared as strings; YYYY-MM-DD sorts in calendar order.
type Store interface {
	// FetchOne returns nil, nil when no record exists for date.
	FetchOne(ctx context.Context, date string) (*WakeupRecord, error)
	// FetchRange returns records with from <= date <= to, ascending by date.
	FetchRange(ctx context.Context, from, to string) ([]WakeupRecord, error)
	Upsert(ctx context.Context, in UpsertInput) error
	// Patch creates an unchecked record when the date is missing, then sets
	// only the provided fields.
	Patch(ctx context.Context, date string, p Patch) error
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, date string) (bool, error)
	BackfillUTCOffset(ctx context.Context, minutes int) (int64, error)
	Ping(ctx context.Context) error
	Close()
}
