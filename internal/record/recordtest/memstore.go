// Package recordtest provides an in-memory record.Store for tests.
package recordtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"habitTrackerAPI/internal/record"
)

// RangeCall is one FetchRange invocation.
type RangeCall struct {
	From string
	To   string
}

// MemStore keeps records in a map and counts calls so tests can assert
// which store operations ran.
type MemStore struct {
	mu      sync.Mutex
	records map[string]record.WakeupRecord

	// Err, when set, is returned by every operation.
	Err error
	// FailUpsert makes Upsert fail for the listed dates.
	FailUpsert map[string]error

	UpsertCalls   int
	PatchCalls    int
	DeleteCalls   int
	FetchOneCalls int
	RangeCalls    []RangeCall

	Now func() time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{
		records:    make(map[string]record.WakeupRecord),
		FailUpsert: make(map[string]error),
		Now:        time.Now,
	}
}

// Seed stores records as-is, bypassing the call counters.
func (m *MemStore) Seed(records ...record.WakeupRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		m.records[r.Date] = r
	}
}

func (m *MemStore) Get(date string) (record.WakeupRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[date]
	return r, ok
}

func (m *MemStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func (m *MemStore) FetchOne(_ context.Context, date string) (*record.WakeupRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchOneCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	r, ok := m.records[date]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *MemStore) FetchRange(_ context.Context, from, to string) ([]record.WakeupRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RangeCalls = append(m.RangeCalls, RangeCall{From: from, To: to})
	if m.Err != nil {
		return nil, m.Err
	}

	out := make([]record.WakeupRecord, 0)
	for date, r := range m.records {
		if date >= from && date <= to {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (m *MemStore) Upsert(_ context.Context, in record.UpsertInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertCalls++
	if m.Err != nil {
		return m.Err
	}
	if err := m.FailUpsert[in.Date]; err != nil {
		return err
	}

	now := m.Now().UTC()
	r, ok := m.records[in.Date]
	if !ok {
		r = record.WakeupRecord{Date: in.Date, CreatedAt: now}
	}
	r.Checked = in.Checked
	r.ImageURL = in.ImageURL
	r.ImagePublicID = in.ImagePublicID
	r.Note = in.Note
	if !ok || !in.KeepUTCOffset {
		r.UTCOffsetMinutes = in.UTCOffsetMinutes
	}
	r.UpdatedAt = now
	m.records[in.Date] = r
	return nil
}

func (m *MemStore) Patch(_ context.Context, date string, p record.Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PatchCalls++
	if m.Err != nil {
		return m.Err
	}

	now := m.Now().UTC()
	r, ok := m.records[date]
	if !ok {
		r = record.WakeupRecord{Date: date, CreatedAt: now}
	}
	if p.Checked != nil {
		r.Checked = *p.Checked
	}
	if p.ImageURL.Set {
		r.ImageURL = p.ImageURL.Value
	}
	if p.ImagePublicID.Set {
		r.ImagePublicID = p.ImagePublicID.Value
	}
	if p.Note.Set {
		r.Note = p.Note.Value
	}
	r.UpdatedAt = now
	m.records[date] = r
	return nil
}

func (m *MemStore) Delete(_ context.Context, date string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.records[date]; !ok {
		return false, nil
	}
	delete(m.records, date)
	return true, nil
}

func (m *MemStore) BackfillUTCOffset(_ context.Context, minutes int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	var n int64
	for date, r := range m.records {
		if r.UTCOffsetMinutes == nil {
			v := minutes
			r.UTCOffsetMinutes = &v
			m.records[date] = r
			n++
		}
	}
	return n, nil
}

func (m *MemStore) Ping(context.Context) error {
	return m.Err
}

func (m *MemStore) Close() {}
