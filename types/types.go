// Package types defines the identity and message primitives shared by every module.
package types

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxPrincipalLength is the maximum length of a principal in bytes
const MaxPrincipalLength = 128

// Principal identifies a caller: a member, a profile owner or another union
type Principal string

// String returns the principal as a string
func (p Principal) String() string {
	return string(p)
}

// ValidateBasic returns an error if the principal is malformed
func (p Principal) ValidateBasic() error {
	if len(p) == 0 {
		return fmt.Errorf("principal must not be empty")
	}

	if len(p) > MaxPrincipalLength {
		return fmt.Errorf("principal must not be longer than %d bytes", MaxPrincipalLength)
	}

	if !utf8.ValidString(string(p)) {
		return fmt.Errorf("principal is not an utf8 string")
	}

	if strings.ContainsAny(string(p), "_/ ") {
		return fmt.Errorf("principal %s contains a forbidden character", p)
	}

	return nil
}

// Msg is a request routed through a module handler
type Msg interface {
	// Route returns the name of the endpoint the message is addressed to
	Route() string
	ValidateBasic() error
}

// Handler processes a message on behalf of the caller
type Handler func(ctx context.Context, caller Principal, msg Msg) (interface{}, error)
