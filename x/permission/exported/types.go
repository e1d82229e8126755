package exported

import (
	"fmt"
	"strconv"
	"strings"
)

// PermissionID uniquely identifies a permission
type PermissionID uint64

// String returns the decimal representation of the id
func (id PermissionID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Endpoint is a callable method of a canister
type Endpoint struct {
	CanisterID string `json:"canister_id"`
	Method     string `json:"method"`
}

// NewEndpoint returns a new endpoint
func NewEndpoint(canisterID, method string) Endpoint {
	return Endpoint{CanisterID: canisterID, Method: method}
}

// ValidateBasic returns an error if the endpoint is malformed
func (e Endpoint) ValidateBasic() error {
	if err := validateCanisterID(e.CanisterID); err != nil {
		return err
	}

	if e.Method == "" {
		return fmt.Errorf("method must not be empty")
	}

	return nil
}

// String returns the endpoint as <canister>/<method>
func (e Endpoint) String() string {
	return e.CanisterID + "/" + e.Method
}

// RemoteCall is a single call of a program
type RemoteCall struct {
	Endpoint Endpoint `json:"endpoint"`
	Args     []byte   `json:"args"`
}

// Program is the sequence of remote calls executed when a choice wins. A program without calls is empty.
type Program struct {
	Calls []RemoteCall `json:"calls,omitempty"`
}

// EmptyProgram returns a program without calls
func EmptyProgram() Program {
	return Program{}
}

// RemoteProgram returns a program executing the given calls in order
func RemoteProgram(calls ...RemoteCall) Program {
	return Program{Calls: calls}
}

// IsEmpty returns true if the program has no calls
func (p Program) IsEmpty() bool {
	return len(p.Calls) == 0
}

// ValidateBasic returns an error if any call is malformed
func (p Program) ValidateBasic() error {
	for i, call := range p.Calls {
		if err := call.Endpoint.ValidateBasic(); err != nil {
			return fmt.Errorf("invalid call %d: %w", i, err)
		}
	}

	return nil
}

// TargetKind distinguishes the kinds of permission targets
type TargetKind int

// valid target kinds
const (
	KindSelfEmptyProgram TargetKind = iota
	KindCanister
	KindEndpoint
)

const (
	selfEmptyProgramText = "self"
	canisterPrefix       = "canister/"
	endpointPrefix       = "endpoint/"
)

// Target is something a permission can grant: the empty program, every method of a canister or a single endpoint.
// It is comparable and text encoded as self, canister/<id> or endpoint/<id>/<method>.
type Target struct {
	Kind       TargetKind
	CanisterID string
	Method     string
}

// SelfEmptyProgram returns the target matching programs without calls
func SelfEmptyProgram() Target {
	return Target{Kind: KindSelfEmptyProgram}
}

// Canister returns the target matching every method of the given canister
func Canister(canisterID string) Target {
	return Target{Kind: KindCanister, CanisterID: canisterID}
}

// EndpointTarget returns the target matching exactly the given endpoint
func EndpointTarget(endpoint Endpoint) Target {
	return Target{Kind: KindEndpoint, CanisterID: endpoint.CanisterID, Method: endpoint.Method}
}

// Endpoint returns the endpoint of an endpoint target
func (t Target) Endpoint() (Endpoint, bool) {
	if t.Kind != KindEndpoint {
		return Endpoint{}, false
	}

	return NewEndpoint(t.CanisterID, t.Method), true
}

// String returns the text encoding of the target
func (t Target) String() string {
	switch t.Kind {
	case KindSelfEmptyProgram:
		return selfEmptyProgramText
	case KindCanister:
		return canisterPrefix + t.CanisterID
	case KindEndpoint:
		return endpointPrefix + t.CanisterID + "/" + t.Method
	default:
		return fmt.Sprintf("unknown(%d)", t.Kind)
	}
}

// ValidateBasic returns an error if the target is malformed
func (t Target) ValidateBasic() error {
	switch t.Kind {
	case KindSelfEmptyProgram:
		if t.CanisterID != "" || t.Method != "" {
			return fmt.Errorf("empty program target must not set canister or method")
		}
	case KindCanister:
		if t.Method != "" {
			return fmt.Errorf("canister target must not set a method")
		}

		return validateCanisterID(t.CanisterID)
	case KindEndpoint:
		return NewEndpoint(t.CanisterID, t.Method).ValidateBasic()
	default:
		return fmt.Errorf("unknown target kind %d", t.Kind)
	}

	return nil
}

// MarshalText implements encoding.TextMarshaler
func (t Target) MarshalText() ([]byte, error) {
	if err := t.ValidateBasic(); err != nil {
		return nil, err
	}

	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Target) UnmarshalText(text []byte) error {
	str := string(text)

	switch {
	case str == selfEmptyProgramText:
		*t = SelfEmptyProgram()
	case strings.HasPrefix(str, canisterPrefix):
		*t = Canister(strings.TrimPrefix(str, canisterPrefix))
	case strings.HasPrefix(str, endpointPrefix):
		canisterID, method, ok := strings.Cut(strings.TrimPrefix(str, endpointPrefix), "/")
		if !ok {
			return fmt.Errorf("invalid endpoint target %s", str)
		}

		*t = EndpointTarget(NewEndpoint(canisterID, method))
	default:
		return fmt.Errorf("invalid target %s", str)
	}

	return t.ValidateBasic()
}

func validateCanisterID(id string) error {
	if id == "" {
		return fmt.Errorf("canister id must not be empty")
	}

	if strings.ContainsAny(id, "/ ") {
		return fmt.Errorf("canister id %s contains a forbidden character", id)
	}

	return nil
}
