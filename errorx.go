package pulsegen

import "github.com/cbegin/pulsegen/xerr"

// Kind and Error are re-exported from the xerr leaf package: xerr exists
// separately so that shape/schedule/exec/sampler/postproc (all imported
// by this package) can return typed errors without importing back up
// into it.
type (
	Kind  = xerr.Kind
	Error = xerr.Error
)

const (
	InvalidInput   = xerr.InvalidInput
	InvalidShape   = xerr.InvalidShape
	Oversize       = xerr.Oversize
	UnresolvedGrid = xerr.UnresolvedGrid
	Internal       = xerr.Internal
)

// IsKind reports whether err (or anything it wraps) is a *Error of kind k.
func IsKind(err error, k Kind) bool { return xerr.Is(err, k) }
