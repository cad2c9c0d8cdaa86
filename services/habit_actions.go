package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"habitTrackerAPI/internal/action"
	"habitTrackerAPI/internal/apperror"
	"habitTrackerAPI/internal/record"
	"habitTrackerAPI/utils"
)

const statsWindowDays = 60
const defaultQueryDays = 7

type checkinParams struct {
	Date     string          `json:"date"`
	Checked  json.RawMessage `json:"checked"`
	Note     string          `json:"note"`
	WakeTime string          `json:"wakeTime"`
}

// checkinEntry is a check-in after defaults are applied; it is what gets
// validated and stored.
type checkinEntry struct {
	Date     string `json:"date" validate:"required,datekey"`
	Checked  bool   `json:"checked"`
	Note     string `json:"note" validate:"max=500"`
	WakeTime string `json:"wakeTime"`
}

type CheckinRecord struct {
	Date             string `json:"date"`
	Checked          bool   `json:"checked"`
	Note             string `json:"note,omitempty"`
	WakeTime         string `json:"wakeTime,omitempty"`
	UTCOffsetMinutes *int   `json:"utcOffsetMinutes,omitempty"`
}

type CheckinResult struct {
	Message string        `json:"message"`
	Record  CheckinRecord `json:"record"`
	UserID  string        `json:"userId"`
}

type CheckinBatchResult struct {
	BatchResult
	UserID string `json:"userId"`
}

type QueryDateResult struct {
	Date   string               `json:"date"`
	Found  bool                 `json:"found"`
	Record *record.PublicRecord `json:"record"`
}

type QueryRangeResult struct {
	From    string                `json:"from"`
	To      string                `json:"to"`
	Count   int                   `json:"count"`
	Records []record.PublicRecord `json:"records"`
}

type StatsBlock struct {
	CompletedDays  int    `json:"completedDays"`
	TotalDays      int    `json:"totalDays"`
	CompletionRate string `json:"completionRate"`
	CurrentStreak  *int   `json:"currentStreak,omitempty"`
	LongestStreak  *int   `json:"longestStreak,omitempty"`
}

type StatsResult struct {
	Month   string     `json:"month"`
	Stats   StatsBlock `json:"stats"`
	Summary string     `json:"summary"`
}

type DeleteResult struct {
	Message string `json:"message"`
	Date    string `json:"date"`
}

// composeNote folds the wake time into the note.
func composeNote(note, wakeTime string) string {
	if wakeTime == "" {
		return note
	}
	if note == "" {
		return fmt.Sprintf("Woke up at %s", wakeTime)
	}
	return fmt.Sprintf("%s (Woke up at %s)", note, wakeTime)
}

func (s *ActionService) prepareCheckin(inv invocation, p checkinParams) (checkinEntry, error) {
	entry := checkinEntry{
		Date:     p.Date,
		Checked:  !isExplicitFalse(p.Checked),
		Note:     composeNote(p.Note, p.WakeTime),
		WakeTime: p.WakeTime,
	}
	if entry.Date == "" {
		entry.Date = inv.dates.Today()
	}
	if err := s.validate.Struct(entry); err != nil {
		return entry, apperror.FromValidation(err)
	}
	return entry, nil
}

func (s *ActionService) storeCheckin(ctx context.Context, inv invocation, entry checkinEntry) error {
	in := record.UpsertInput{
		Date:             entry.Date,
		Checked:          entry.Checked,
		UTCOffsetMinutes: inv.offset,
	}
	if entry.Note != "" {
		note := entry.Note
		in.Note = &note
	}
	if err := s.store.Upsert(ctx, in); err != nil {
		s.log.Error("failed to store check-in", zap.String("date", entry.Date), zap.Error(err))
		return apperror.Internal("Failed to record check-in", err)
	}
	return nil
}

func (s *ActionService) checkin(ctx context.Context, inv invocation) (*action.Response, error) {
	if raw, ok := inv.params["checkins"]; ok && isJSONArray(raw) {
		return s.checkinBatch(ctx, inv, raw)
	}

	var p checkinParams
	if err := decodeParams(inv.raw, &p); err != nil {
		return nil, err
	}

	entry, err := s.prepareCheckin(inv, p)
	if err != nil {
		return nil, err
	}
	if err := s.storeCheckin(ctx, inv, entry); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Marked as not completed for %s.", entry.Date)
	if entry.Checked {
		message = fmt.Sprintf("Check-in recorded for %s. Great job!", entry.Date)
	}

	return action.OK(CheckinResult{
		Message: message,
		Record: CheckinRecord{
			Date:             entry.Date,
			Checked:          entry.Checked,
			Note:             entry.Note,
			WakeTime:         entry.WakeTime,
			UTCOffsetMinutes: inv.offset,
		},
		UserID: inv.userID,
	}), nil
}

func (s *ActionService) checkinBatch(ctx context.Context, inv invocation, raw json.RawMessage) (*action.Response, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, apperror.Validation("checkins must be an array")
	}
	if len(items) == 0 || len(items) > maxBatchItems {
		return nil, apperror.Validation(fmt.Sprintf("checkins must contain between 1 and %d items", maxBatchItems))
	}

	result := runBatch(ctx, s.log, items, func(ctx context.Context, item json.RawMessage) (string, error) {
		var p checkinParams
		if err := decodeParams(item, &p); err != nil {
			return "", err
		}
		entry, err := s.prepareCheckin(inv, p)
		if err != nil {
			return entry.Date, err
		}
		return entry.Date, s.storeCheckin(ctx, inv, entry)
	})

	return action.OK(CheckinBatchResult{BatchResult: result, UserID: inv.userID}), nil
}

type queryParams struct {
	Date string `json:"date"`
	From string `json:"from"`
	To   string `json:"to"`
}

type dateParam struct {
	Date string `json:"date" validate:"datekey"`
}

func (s *ActionService) query(ctx context.Context, inv invocation) (*action.Response, error) {
	var p queryParams
	if err := decodeParams(inv.raw, &p); err != nil {
		return nil, err
	}

	if p.Date != "" {
		if err := s.validate.Struct(dateParam{Date: p.Date}); err != nil {
			return nil, apperror.FromValidation(err)
		}

		r, err := s.store.FetchOne(ctx, p.Date)
		if err != nil {
			s.log.Error("failed to fetch record", zap.String("date", p.Date), zap.Error(err))
			return nil, apperror.Internal("Failed to fetch record", err)
		}

		result := QueryDateResult{Date: p.Date, Found: r != nil}
		if r != nil {
			pub := r.Public()
			result.Record = &pub
		}
		return action.OK(result), nil
	}

	bounds := record.RangeQuery{From: p.From, To: p.To}
	if err := s.validate.Struct(bounds); err != nil {
		return nil, apperror.FromValidation(err)
	}
	if bounds.From == "" {
		bounds.From = inv.dates.DaysAgo(defaultQueryDays)
	}
	if bounds.To == "" {
		bounds.To = inv.dates.Today()
	}

	rows, err := s.store.FetchRange(ctx, bounds.From, bounds.To)
	if err != nil {
		s.log.Error("failed to fetch records", zap.String("from", bounds.From), zap.String("to", bounds.To), zap.Error(err))
		return nil, apperror.Internal("Failed to fetch records", err)
	}

	records := make([]record.PublicRecord, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].Public())
	}

	return action.OK(QueryRangeResult{
		From:    bounds.From,
		To:      bounds.To,
		Count:   len(records),
		Records: records,
	}), nil
}

type statsParams struct {
	Month         string          `json:"month" validate:"omitempty,monthkey"`
	IncludeStreak json.RawMessage `json:"includeStreak"`
}

// statsWindow is the fetch range for a stats request. With streaks the
// window trails today; without them it is the literal month, where the end
// bound "-31" is a string bound and needs no calendar check.
func statsWindow(dates utils.DateResolver, month string, includeStreak bool) (string, string) {
	if includeStreak {
		return dates.DaysAgo(statsWindowDays), dates.Today()
	}
	return month + "-01", month + "-31"
}

func (s *ActionService) stats(ctx context.Context, inv invocation) (*action.Response, error) {
	var p statsParams
	if err := decodeParams(inv.raw, &p); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(p); err != nil {
		return nil, apperror.FromValidation(err)
	}

	month := p.Month
	if month == "" {
		month = inv.dates.CurrentMonth()
	}
	includeStreak := !isExplicitFalse(p.IncludeStreak)

	from, to := statsWindow(inv.dates, month, includeStreak)
	rows, err := s.store.FetchRange(ctx, from, to)
	if err != nil {
		s.log.Error("failed to fetch stats window", zap.String("from", from), zap.String("to", to), zap.Error(err))
		return nil, apperror.Internal("Failed to fetch records", err)
	}

	marks := record.Marks(rows)
	summary := utils.SummarizeMonth(marks, month)

	block := StatsBlock{
		CompletedDays:  summary.CompletedDays,
		TotalDays:      summary.TotalDays,
		CompletionRate: fmt.Sprintf("%d%%", summary.CompletionRate),
	}

	current := 0
	if includeStreak {
		current = utils.CurrentStreak(marks, inv.dates.Today())
		longest := utils.LongestStreak(marks)
		block.CurrentStreak = &current
		block.LongestStreak = &longest
	}

	return action.OK(StatsResult{
		Month:   month,
		Stats:   block,
		Summary: summaryLine(current, summary),
	}), nil
}

func summaryLine(currentStreak int, m utils.MonthSummary) string {
	if currentStreak > 0 {
		return fmt.Sprintf("You're on a %d-day streak! This month: %d/%d days (%d%%).",
			currentStreak, m.CompletedDays, m.TotalDays, m.CompletionRate)
	}
	return fmt.Sprintf("This month: %d/%d days (%d%%). Start your streak today!",
		m.CompletedDays, m.TotalDays, m.CompletionRate)
}

func (s *ActionService) delete(ctx context.Context, inv invocation) (*action.Response, error) {
	var p queryParams
	if err := decodeParams(inv.raw, &p); err != nil {
		return nil, err
	}
	if p.Date == "" {
		return action.Fail(apperror.CodeMissingParam, "date parameter is required"), nil
	}
	if err := s.validate.Struct(dateParam{Date: p.Date}); err != nil {
		return nil, apperror.FromValidation(err)
	}

	existing, err := s.store.FetchOne(ctx, p.Date)
	if err != nil {
		s.log.Error("failed to fetch record", zap.String("date", p.Date), zap.Error(err))
		return nil, apperror.Internal("Failed to fetch record", err)
	}
	if existing == nil {
		return action.Fail(apperror.CodeNotFound, fmt.Sprintf("No record found for %s", p.Date)), nil
	}

	if _, err := s.store.Delete(ctx, p.Date); err != nil {
		s.log.Error("failed to delete record", zap.String("date", p.Date), zap.Error(err))
		return nil, apperror.Internal("Failed to delete record", err)
	}

	return action.OK(DeleteResult{
		Message: fmt.Sprintf("Record for %s has been deleted.", p.Date),
		Date:    p.Date,
	}), nil
}
