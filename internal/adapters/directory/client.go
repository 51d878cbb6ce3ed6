// Package directory implements the client side of the username allocation
// protocol: reserve a candidate username, confirm a reservation, delete the
// current username, and look up the account owning a username.
//
// Expected service answers (rejected, rate limited, username not found) are
// typed outcomes, not errors. Errors are reserved for transport failures and
// protocol violations, which callers cannot act on beyond surfacing a general
// failure.
package directory

import (
	"github.com/tkleiven/nametag/internal/executor"
)

type Client struct {
	transport executor.Transport
}

func NewClient(transport executor.Transport) *Client {
	return &Client{
		transport: transport,
	}
}
