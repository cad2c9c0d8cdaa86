package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"habitTrackerAPI/internal/action"
	"habitTrackerAPI/internal/apperror"
	"habitTrackerAPI/internal/record"
	"habitTrackerAPI/internal/validation"
	"habitTrackerAPI/utils"
)

// ActionService runs the multiplexed habit actions: it checks identity and
// scopes, resolves the caller's calendar day and dispatches to the handler
// for the action.
type ActionService struct {
	store    record.Store
	validate *validator.Validate
	log      *zap.Logger
	now      func() time.Time
}

func NewActionService(store record.Store, log *zap.Logger) *ActionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ActionService{
		store:    store,
		validate: validation.New(),
		log:      log,
		now:      time.Now,
	}
}

func (s *ActionService) SetClock(now func() time.Time) {
	s.now = now
}

// invocation is the request-scoped state handed to each action handler.
type invocation struct {
	kind   action.Kind
	userID string
	raw    json.RawMessage
	params map[string]json.RawMessage
	offset *int
	dates  utils.DateResolver
}

// Invoke returns a response for every outcome that is expressed as data
// (including UNKNOWN_ACTION, MISSING_PARAM and NOT_FOUND). Structural,
// identity, scope and store failures come back as errors carrying their
// HTTP status.
func (s *ActionService) Invoke(ctx context.Context, req *action.InvokeRequest, caller action.CallerHeaders) (*action.Response, error) {
	name, ok := req.Name()
	if !ok {
		return nil, apperror.BadRequest("action is required")
	}

	var reqCtx action.InvokeContext
	if req.Context != nil {
		reqCtx = *req.Context
	}

	userID := resolveUserID(reqCtx.UserID, caller.UserID)
	if userID == "" {
		return nil, apperror.Unauthorized("Missing caller id")
	}

	scopes, err := resolveScopes(reqCtx.Scopes, caller.Scopes)
	if err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	kind := action.Parse(name)
	if !action.Authorize(scopes, kind.RequiredScopes()) {
		s.log.Info("action forbidden", zap.String("action", name), zap.String("userId", userID), zap.Strings("scopes", scopes))
		return nil, apperror.Forbidden("Missing required scopes")
	}
	if kind == action.KindUnknown {
		return action.Fail(apperror.CodeUnknownAction, fmt.Sprintf("Unknown action: %s", name)), nil
	}

	params, err := decodeParamsObject(req.Params)
	if err != nil {
		return nil, err
	}

	offset, err := resolveOffset(params["utcOffsetMinutes"], reqCtx.UTCOffsetMinutes, caller.UTCOffsetMinutes)
	if err != nil {
		return nil, err
	}

	inv := invocation{
		kind:   kind,
		userID: userID,
		raw:    req.Params,
		params: params,
		offset: offset,
		dates:  utils.NewDateResolver(s.now(), offset),
	}

	switch kind {
	case action.KindCheckin:
		return s.checkin(ctx, inv)
	case action.KindQuery:
		return s.query(ctx, inv)
	case action.KindStats:
		return s.stats(ctx, inv)
	case action.KindDelete:
		return s.delete(ctx, inv)
	default:
		return action.Fail(apperror.CodeUnknownAction, fmt.Sprintf("Unknown action: %s", name)), nil
	}
}

// resolveUserID accepts a string or numeric context value before falling
// back to the header.
func resolveUserID(raw json.RawMessage, header string) string {
	if len(raw) > 0 {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		} else if v, ok := action.FiniteNumber(raw); ok {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return strings.TrimSpace(header)
}

func resolveScopes(raw json.RawMessage, header string) ([]string, error) {
	scopes, err := action.ParseScopesJSON(raw)
	if err != nil {
		return nil, err
	}
	if scopes != nil {
		return scopes, nil
	}
	return action.ParseScopes(header), nil
}

func resolveOffset(params, context json.RawMessage, header string) (*int, error) {
	v, ok := action.ResolveOffset(params, context, header)
	if !ok {
		return nil, nil
	}
	if !action.ValidOffset(v) {
		return nil, apperror.Validation(fmt.Sprintf(
			"utcOffsetMinutes must be an integer between %d and %d",
			action.MinUTCOffsetMinutes, action.MaxUTCOffsetMinutes))
	}
	minutes := int(v)
	return &minutes, nil
}

func decodeParamsObject(raw json.RawMessage) (map[string]json.RawMessage, error) {
	params := map[string]json.RawMessage{}
	if isJSONNull(raw) {
		return params, nil
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, apperror.BadRequest("params must be an object")
	}
	return params, nil
}

// decodeParams fills dst from raw, reporting a field of the wrong JSON type
// as a validation failure.
func decodeParams(raw json.RawMessage, dst interface{}) error {
	if isJSONNull(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return apperror.Validation(fmt.Sprintf("%s has the wrong type", typeErr.Field))
		}
		return apperror.Validation("params are malformed")
	}
	return nil
}

func isJSONNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// isExplicitFalse is true only for the JSON literal false. Absent and any
// other value count as true.
func isExplicitFalse(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("false"))
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
