package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// AttemptID correlates overlapping reservation attempts. It is generated by
// the caller before a reservation call and echoed back unchanged on every
// result and error derived from that call, so stale attempts can be discarded
// by an equality check. The directory never sees it.
type AttemptID string

func NewAttemptID() AttemptID {
	return AttemptID(uuid.NewString())
}

// ACI is the opaque identifier of the account owning a username, in canonical
// dashed-lowercase UUID form.
type ACI string

func ParseACI(raw string) (ACI, error) {
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid ACI: %w", err)
	}
	return ACI(parsed.String()), nil
}
