package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"habitTrackerAPI/internal/apperror"
	"habitTrackerAPI/internal/record"
	"habitTrackerAPI/internal/validation"
)

const (
	minDateKey = "0000-01-01"
	maxDateKey = "9999-12-31"
)

type RecordService struct {
	store    record.Store
	validate *validator.Validate
	log      *zap.Logger
}

func NewRecordService(store record.Store, log *zap.Logger) *RecordService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RecordService{store: store, validate: validation.New(), log: log}
}

func (s *RecordService) validDate(date string) error {
	if err := s.validate.Struct(dateParam{Date: date}); err != nil {
		return apperror.FromValidation(err)
	}
	return nil
}

func (s *RecordService) List(ctx context.Context, q record.RangeQuery) ([]record.WakeupRecord, error) {
	if err := s.validate.Struct(q); err != nil {
		return nil, apperror.FromValidation(err)
	}
	if q.From == "" {
		q.From = minDateKey
	}
	if q.To == "" {
		q.To = maxDateKey
	}

	records, err := s.store.FetchRange(ctx, q.From, q.To)
	if err != nil {
		s.log.Error("failed to list records", zap.String("from", q.From), zap.String("to", q.To), zap.Error(err))
		return nil, apperror.Internal("Failed to fetch records", err)
	}
	return records, nil
}

func (s *RecordService) Get(ctx context.Context, date string) (*record.WakeupRecord, error) {
	if err := s.validDate(date); err != nil {
		return nil, err
	}

	r, err := s.store.FetchOne(ctx, date)
	if err != nil {
		s.log.Error("failed to fetch record", zap.String("date", date), zap.Error(err))
		return nil, apperror.Internal("Failed to fetch record", err)
	}
	return r, nil
}

// Upsert replaces the record for the request's date. The UTC offset stored
// by an earlier action check-in is left to the store to keep.
func (s *RecordService) Upsert(ctx context.Context, req *record.UpsertRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return apperror.FromValidation(err)
	}

	in := req.Input()
	if err := s.store.Upsert(ctx, in); err != nil {
		s.log.Error("failed to upsert record", zap.String("date", in.Date), zap.Error(err))
		return apperror.Internal("Failed to save record", err)
	}
	return nil
}

type patchCheck struct {
	Date     string  `json:"date" validate:"datekey"`
	ImageURL *string `json:"imageUrl" validate:"omitempty,url"`
	Note     *string `json:"note" validate:"omitempty,max=500"`
}

func (s *RecordService) Patch(ctx context.Context, date string, req *record.PatchRequest) error {
	check := patchCheck{Date: date, ImageURL: req.ImageURL.Value, Note: req.Note.Value}
	if err := s.validate.Struct(check); err != nil {
		return apperror.FromValidation(err)
	}

	if err := s.store.Patch(ctx, date, req.Patch()); err != nil {
		s.log.Error("failed to patch record", zap.String("date", date), zap.Error(err))
		return apperror.Internal("Failed to update record", err)
	}
	return nil
}

// Delete succeeds whether or not a record existed.
func (s *RecordService) Delete(ctx context.Context, date string) error {
	if err := s.validDate(date); err != nil {
		return err
	}

	removed, err := s.store.Delete(ctx, date)
	if err != nil {
		s.log.Error("failed to delete record", zap.String("date", date), zap.Error(err))
		return apperror.Internal("Failed to delete record", err)
	}
	s.log.Debug("record delete", zap.String("date", date), zap.Bool("removed", removed))
	return nil
}

// CheckinBatch stores each check-in independently and reports per-item
// outcomes.
func (s *RecordService) CheckinBatch(ctx context.Context, req *record.CheckinBatchRequest) (BatchResult, error) {
	if len(req.Checkins) == 0 || len(req.Checkins) > maxBatchItems {
		return BatchResult{}, apperror.Validation(fmt.Sprintf("checkins must contain between 1 and %d items", maxBatchItems))
	}

	return runBatch(ctx, s.log, req.Checkins, func(ctx context.Context, item record.UpsertRequest) (string, error) {
		return item.Date, s.Upsert(ctx, &item)
	}), nil
}
