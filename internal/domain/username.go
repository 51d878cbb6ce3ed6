package domain

import (
	"strconv"
	"strings"
)

// The directory appends a numeric discriminator to the requested nickname to
// form a globally unique username, e.g. "alice" -> "alice.42".
const discriminatorSeparator = "."

type ParsedUsername struct {
	Nickname      string
	Discriminator uint64
}

// ParseUsername decomposes a raw, discriminator-suffixed username into its
// nickname and discriminator. Returns false on malformed input.
//
// Raw usernames originate from directory responses, so callers on the
// reservation path treat a parse failure as a broken server contract rather
// than a recoverable condition.
func ParseUsername(raw string) (ParsedUsername, bool) {
	separatorIndex := strings.LastIndex(raw, discriminatorSeparator)
	if separatorIndex <= 0 || separatorIndex == len(raw)-1 {
		return ParsedUsername{}, false
	}

	nickname := raw[:separatorIndex]
	rawDiscriminator := raw[separatorIndex+1:]

	discriminator, err := strconv.ParseUint(rawDiscriminator, 10, 64)
	if err != nil {
		return ParsedUsername{}, false
	}

	return ParsedUsername{
		Nickname:      nickname,
		Discriminator: discriminator,
	}, true
}

func (p ParsedUsername) String() string {
	return p.Nickname + discriminatorSeparator + strconv.FormatUint(p.Discriminator, 10)
}

// ReservedUsername is a successful reservation. It is logically single-use:
// once passed to confirmation the reservation is gone server-side regardless
// of the confirmation outcome, and the token must not be reused.
type ReservedUsername struct {
	// The full, discriminator-suffixed username issued by the directory.
	RawUsername string
	// Opaque credential proving that we currently hold the reservation.
	ReservationToken string
	Username         ParsedUsername
}
