// Package action describes the multiplexed action protocol: the known
// actions, their required scopes, the request body and the response
// envelope.
package action

type Kind int

const (
	KindUnknown Kind = iota
	KindCheckin
	KindQuery
	KindStats
	KindDelete
)

const (
	NameCheckin = "habit.checkin"
	NameQuery   = "habit.query"
	NameStats   = "habit.stats"
	NameDelete  = "habit.delete"
)

const (
	ScopeRead   = "habit:read"
	ScopeWrite  = "habit:write"
	ScopeDelete = "habit:delete"
	ScopeAdmin  = "admin"
)

var kindsByName = map[string]Kind{
	NameCheckin: KindCheckin,
	NameQuery:   KindQuery,
	NameStats:   KindStats,
	NameDelete:  KindDelete,
}

var scopesByKind = map[Kind][]string{
	KindCheckin: {ScopeWrite},
	KindQuery:   {ScopeRead},
	KindStats:   {ScopeRead},
	KindDelete:  {ScopeDelete},
}

// Parse maps an action name to its Kind. Unknown names yield KindUnknown.
func Parse(name string) Kind {
	return kindsByName[name]
}

func (k Kind) String() string {
	switch k {
	case KindCheckin:
		return NameCheckin
	case KindQuery:
		return NameQuery
	case KindStats:
		return NameStats
	case KindDelete:
		return NameDelete
	default:
		return "unknown"
	}
}

// RequiredScopes is empty for unknown actions.
func (k Kind) RequiredScopes() []string {
	return scopesByKind[k]
}

func Names() []string {
	return []string{NameCheckin, NameQuery, NameStats, NameDelete}
}
