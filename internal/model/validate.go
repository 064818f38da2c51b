package model

import (
	"fmt"
	"slices"
)

// Valid reports whether m is one of the four tribute modes.
func (m TributeMode) Valid() bool {
	return slices.Contains(TributeModes, m)
}

// Label is the short display name used on status cards.
func (m TributeMode) Label() string {
	switch m {
	case ModeSymbolic:
		return "Symbolic"
	case ModeDonation:
		return "Donation"
	case ModeRoyalty:
		return "Royalty"
	default:
		return "Friction"
	}
}

// DisplayName is the long form used in ritual recommendations.
func (m TributeMode) DisplayName() string {
	switch m {
	case ModeSymbolic:
		return "Symbolic Credits"
	case ModeDonation:
		return "Donation"
	case ModeRoyalty:
		return "Royalty"
	case ModeFriction:
		return "Friction Credits"
	default:
		return string(m)
	}
}

// ParseTributeMode validates s against the known modes. Matching is exact:
// case and surrounding whitespace are significant.
func ParseTributeMode(s string) (TributeMode, error) {
	m := TributeMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
	return m, nil
}

// Valid reports whether s is a known agent status.
func (s AgentStatus) Valid() bool {
	switch s {
	case AgentActive, AgentMetering, AgentDormant, AgentInactive:
		return true
	}
	return false
}

// ParseAgentStatus validates s as an agent status.
func ParseAgentStatus(s string) (AgentStatus, error) {
	st := AgentStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// Valid reports whether k is a known agent kind.
func (k AgentKind) Valid() bool {
	switch k {
	case KindIntegrityWatcher, KindTributeSteward, KindReflexologist, KindOther:
		return true
	}
	return false
}

// Valid reports whether l is a known log level.
func (l LogLevel) Valid() bool {
	switch l {
	case LevelInfo, LevelWarning, LevelError:
		return true
	}
	return false
}

// Valid reports whether s is a known integrity status.
func (s IntegrityStatus) Valid() bool {
	return s == IntegrityHealthy || s == IntegrityWarning
}

// ValidateSelectionTags rejects tags outside the three known categories.
func ValidateSelectionTags(tags []string) error {
	for _, t := range tags {
		switch t {
		case SelectResourceUsage, SelectOperationFrequency, SelectDomainContext:
		default:
			return fmt.Errorf("%w: %q", ErrInvalidSelector, t)
		}
	}
	return nil
}

// SelectionLabel is the human-readable name of a data selection tag.
func SelectionLabel(tag string) string {
	switch tag {
	case SelectResourceUsage:
		return "Computational Resource Allocation"
	case SelectOperationFrequency:
		return "Operation Frequency Distribution"
	case SelectDomainContext:
		return "Domain Context Classification"
	default:
		return tag
	}
}
