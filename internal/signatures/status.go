package signatures

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Status is the state of a signature or signature request.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusSigned     Status = "SIGNED"
	StatusRejected   Status = "REJECTED"
	StatusExpired    Status = "EXPIRED"
	StatusRevoked    Status = "REVOKED"
	StatusFailed     Status = "FAILED"
	StatusCanceled   Status = "CANCELED"
)

// Statuses lists every status in workflow order.
var Statuses = []Status{
	StatusPending,
	StatusInProgress,
	StatusSigned,
	StatusRejected,
	StatusExpired,
	StatusRevoked,
	StatusFailed,
	StatusCanceled,
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

// Terminal reports whether s admits no further transitions.
func (s Status) Terminal() bool {
	switch s {
	case StatusPending, StatusInProgress:
		return false
	default:
		return true
	}
}

// CanTransition reports whether the state machine allows moving from s to next.
// PENDING may move to any other state, IN_PROGRESS to any terminal state, and
// terminal states never move.
func (s Status) CanTransition(next Status) bool {
	if !next.Valid() || s == next {
		return false
	}
	switch s {
	case StatusPending:
		return true
	case StatusInProgress:
		return next.Terminal()
	default:
		return false
	}
}

// DefaultLocalStatus is applied to external statuses absent from the mapping table.
// PENDING never advances a workflow, so unknown provider values are inert.
const DefaultLocalStatus = StatusPending

type statusMapping struct {
	local    Status
	external string
	aliases  []string
}

// statusTable is the bidirectional mapping between local and provider statuses.
// external is the canonical provider value for local; aliases are further
// provider values that map back to local.
var statusTable = []statusMapping{
	{StatusPending, "CREATED", []string{"SENT", "DELIVERED"}},
	{StatusInProgress, "IN_PROGRESS", []string{"VIEWED", "OPENED"}},
	{StatusSigned, "COMPLETED", []string{"SIGNED"}},
	{StatusRejected, "DECLINED", []string{"REJECTED"}},
	{StatusExpired, "EXPIRED", nil},
	{StatusRevoked, "VOIDED", []string{"REVOKED"}},
	{StatusFailed, "ERROR", []string{"FAILED"}},
	{StatusCanceled, "CANCELLED", []string{"CANCELED"}},
}

// ToExternal returns the provider status for s.
func ToExternal(s Status) (string, bool) {
	for _, m := range statusTable {
		if m.local == s {
			return m.external, true
		}
	}
	return "", false
}

// FromExternal returns the local status for a provider status, matched
// case-insensitively, or DefaultLocalStatus when it is unmapped.
func FromExternal(external string) Status {
	external = strings.ToUpper(strings.TrimSpace(external))
	for _, m := range statusTable {
		if m.external == external || slices.Contains(m.aliases, external) {
			return m.local
		}
	}
	return DefaultLocalStatus
}

// ValidateStatusMapping checks that every local status has exactly one
// provider counterpart that maps back to it, and that no provider value is
// claimed by two local statuses.
func ValidateStatusMapping() error {
	var errs []error
	claimed := map[string]Status{}

	for _, m := range statusTable {
		for _, ext := range append([]string{m.external}, m.aliases...) {
			if owner, ok := claimed[ext]; ok {
				errs = append(errs, fmt.Errorf("provider status %s mapped to both %s and %s", ext, owner, m.local))
				continue
			}
			claimed[ext] = m.local
		}
	}

	for _, s := range Statuses {
		ext, ok := ToExternal(s)
		if !ok {
			errs = append(errs, fmt.Errorf("status %s has no provider mapping", s))
			continue
		}
		if back := FromExternal(ext); back != s {
			errs = append(errs, fmt.Errorf("status %s maps to %s which maps back to %s", s, ext, back))
		}
	}

	return errors.Join(errs...)
}
