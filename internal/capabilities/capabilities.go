// Package capabilities defines the optional external capability ports and the
// registry that reports which of them are configured for this deployment.
//
// Absence of a capability is an expected outcome. Callers branch on the ok
// result of each accessor so that required and best-effort calls stay visible
// at the call site.
package capabilities

import (
	"errors"
	"fmt"
)

// Kind identifies a functional area that an external backend may provide.
type Kind string

const (
	KindContent    Kind = "content"
	KindVersion    Kind = "version"
	KindSearch     Kind = "search"
	KindSignature  Kind = "signature"
	KindPermission Kind = "permission"
)

// Kinds lists every capability kind in a stable order.
var Kinds = []Kind{
	KindContent,
	KindVersion,
	KindSearch,
	KindSignature,
	KindPermission,
}

// ErrUnavailable indicates a required capability is not configured.
var ErrUnavailable = errors.New("capability not configured")

// Unavailable returns an error naming the missing capability that matches ErrUnavailable.
func Unavailable(kind Kind) error {
	return fmt.Errorf("%s %w", kind, ErrUnavailable)
}

// ParseKind converts a string to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown capability kind %q", s)
}
