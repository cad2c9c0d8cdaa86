package services

import (
	"context"

	"go.uber.org/zap"

	"habitTrackerAPI/internal/apperror"
)

const maxBatchItems = 100

type BatchItemResult struct {
	Date    string `json:"date"`
	Success bool   `json:"success"`
}

type BatchItemError struct {
	Index int    `json:"index"`
	Date  string `json:"date,omitempty"`
	Error string `json:"error"`
}

// BatchResult reports every item of a batch. A failing item never stops the
// items after it.
type BatchResult struct {
	Processed int               `json:"processed"`
	Failed    int               `json:"failed"`
	Results   []BatchItemResult `json:"results"`
	Errors    []BatchItemError  `json:"errors,omitempty"`
}

// runBatch applies fn to each item in order. fn returns the date the item
// resolved to, which is reported even when the item fails.
func runBatch[T any](ctx context.Context, log *zap.Logger, items []T, fn func(ctx context.Context, item T) (string, error)) BatchResult {
	result := BatchResult{Results: make([]BatchItemResult, 0, len(items))}

	for i, item := range items {
		date, err := fn(ctx, item)
		if err != nil {
			log.Warn("batch item failed", zap.Int("index", i), zap.String("date", date), zap.Error(err))
			result.Errors = append(result.Errors, BatchItemError{Index: i, Date: date, Error: apperror.PublicMessage(err)})
			continue
		}
		result.Results = append(result.Results, BatchItemResult{Date: date, Success: true})
	}

	result.Processed = len(result.Results)
	result.Failed = len(result.Errors)
	return result
}
