package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	// RunID identifies one execution of a study (search + measurement)
	RunID ID
	// Label names a serialized trajectory row, e.g. "Deck entropy"
	Label ID
)

func (id RunID) String() string { return ID(id).String() }
func (l Label) String() string  { return ID(l).String() }

// NewRunID creates a fresh run identifier
func NewRunID() RunID {
	return RunID(NewID())
}

// ParseRunID parses a string into RunID
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}
	return RunID(s), nil
}

// ParseLabel parses a string into Label
func ParseLabel(s string) (Label, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("label cannot be empty")
	}
	return Label(s), nil
}
