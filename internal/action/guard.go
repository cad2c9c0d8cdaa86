package action

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseScopes flattens a comma-separated header value into trimmed,
// non-empty scopes.
func ParseScopes(raw string) []string {
	scopes := make([]string, 0)
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			scopes = append(scopes, s)
		}
	}
	return scopes
}

// ParseScopesJSON accepts the context form of scopes: either a string or an
// array whose elements may themselves be comma-joined.
func ParseScopesJSON(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return ParseScopes(single), nil
	}

	var list []any
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("scopes must be a string or an array")
	}

	scopes := make([]string, 0, len(list))
	for _, item := range list {
		scopes = append(scopes, ParseScopes(fmt.Sprint(item))...)
	}
	return scopes, nil
}

// Authorize passes unconditionally for admin, otherwise every required
// scope must be held.
func Authorize(held []string, required []string) bool {
	set := make(map[string]struct{}, len(held))
	for _, s := range held {
		set[s] = struct{}{}
	}
	if _, ok := set[ScopeAdmin]; ok {
		return true
	}
	for _, s := range required {
		if _, ok := set[s]; !ok {
			return false
		}
	}
	return true
}
