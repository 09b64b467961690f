package debrix

import (
	"strings"

	"github.com/itsatony/go-cuserr"
	"gopkg.in/yaml.v3"
)

// Target selects the kind of module the compiler emits
type Target int

// Compilation targets. Only TargetClient is implemented; the others are
// reserved and rejected by Build.
const (
	TargetClient Target = iota
	TargetHydration
	TargetServer
)

var targetNames = [...]string{
	TargetClient:    "client",
	TargetHydration: "hydration",
	TargetServer:    "server",
}

// String returns the lowercase target name
func (t Target) String() string {
	if t >= 0 && int(t) < len(targetNames) {
		return targetNames[t]
	}
	return "unknown"
}

// Supported reports whether the compiler can emit code for t
func (t Target) Supported() bool {
	return t == TargetClient
}

// ParseTarget parses a target name, case-insensitively
func ParseTarget(name string) (Target, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range targetNames {
		if n == name {
			return Target(i), nil
		}
	}
	return 0, cuserr.NewValidationError(ErrCodeTarget, ErrMsgUnknownTarget).
		WithMetadata(MetaKeyTarget, name)
}

// MarshalText implements encoding.TextMarshaler
func (t Target) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Target) UnmarshalText(text []byte) error {
	parsed, err := ParseTarget(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (t Target) MarshalYAML() (any, error) {
	return t.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (t *Target) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	return t.UnmarshalText([]byte(name))
}
