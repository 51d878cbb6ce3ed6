package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tkleiven/nametag/internal/adapters/cache"
	"github.com/tkleiven/nametag/internal/domain"
	"github.com/tkleiven/nametag/internal/reporting"
)

type LookupACI func(ctx context.Context, username string) (domain.ACI, bool, error)

type aciLookuper interface {
	AttemptACILookup(ctx context.Context, username string) (domain.ACI, bool, error)
}

// ACILookupEntry is a cacheable lookup result. Negative results are cached
// too: an unowned username is as much an answer as an owned one.
type ACILookupEntry struct {
	ACI   domain.ACI
	Found bool
}

func BuildLookupACIWithCache(
	aciCache cache.Cache[ACILookupEntry],
	lookuper aciLookuper,
) LookupACI {
	return func(ctx context.Context, username string) (domain.ACI, bool, error) {
		usernameLength := len(username)
		if usernameLength == 0 || usernameLength > 100 {
			err := fmt.Errorf("invalid username length")
			reporting.Report(ctx, err, map[string]string{
				"username": username,
				"length":   strconv.Itoa(usernameLength),
			})
			return "", false, err
		}

		// No two accounts can hold the same username with case-insensitive comparison
		cacheKey := strings.ToLower(username)

		entry, _, err := cache.GetOrCreate(ctx, aciCache, cacheKey, func() (ACILookupEntry, error) {
			aci, found, err := lookuper.AttemptACILookup(ctx, username)
			if err != nil {
				// NOTE: the directory client handles its own error reporting
				return ACILookupEntry{}, err
			}
			return ACILookupEntry{ACI: aci, Found: found}, nil
		})
		if err != nil {
			return "", false, fmt.Errorf("failed to cache.GetOrCreate ACI for username: %w", err)
		}

		return entry.ACI, entry.Found, nil
	}
}
