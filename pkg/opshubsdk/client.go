package opshubsdk

import (
	"net/http"
	"strings"
	"time"
)

// ActorHeader carries the id of the acting user. It only attributes audit
// entries; OpsHub does not authenticate it.
const ActorHeader = "X-Actor-ID"

// Client is a client for the OpsHub user administration API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// ActorID, when set, is sent as ActorHeader on every request.
	ActorID string
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// As returns a copy of c that attributes its requests to actorID.
func (c *Client) As(actorID string) *Client {
	cp := *c
	cp.ActorID = actorID
	return &cp
}
