package graphqlclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/machinebox/graphql"
	"github.com/rs/zerolog"

	"github.com/threef-labs/threef-cli/internal/constants"
	"github.com/threef-labs/threef-cli/internal/credentials"
	"github.com/threef-labs/threef-cli/internal/environments"
)

const bufferSeconds = 60

// Refresher renews the stored session.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type Client struct {
	client    *graphql.Client
	creds     *credentials.Credentials
	log       *zerolog.Logger
	refresher Refresher
}

func New(creds *credentials.Credentials, environmentSet *environments.EnvironmentSet, refresher Refresher, l *zerolog.Logger) *Client {
	if creds == nil {
		creds = &credentials.Credentials{AuthType: credentials.AuthTypeBearer}
	}
	httpClient := &http.Client{
		Timeout:   constants.DefaultServiceTimeout,
		Transport: newHeaderTransport(creds, environmentSet.AnonKey, refresher, http.DefaultTransport),
	}
	gqlClient := graphql.NewClient(environmentSet.GraphQLURL, graphql.WithHTTPClient(httpClient))
	gqlClient.Log = func(s string) {
		l.Debug().Str("client", "GraphQL").Msg(redactSensitiveHeaders(s))
	}

	return &Client{
		client:    gqlClient,
		creds:     creds,
		log:       l,
		refresher: refresher,
	}
}

func (c *Client) Execute(ctx context.Context, req *graphql.Request, resp any) error {
	req.Header.Set("User-Agent", constants.UserAgent)
	if err := c.CheckTokenValidityIfExists(ctx); err != nil {
		return fmt.Errorf("token validity check failed: %w", err)
	}
	return c.client.Run(ctx, req, resp)
}

// CheckTokenValidityIfExists refreshes a session that expires within a
// minute. Without a session or a refresher it does nothing.
func (c *Client) CheckTokenValidityIfExists(ctx context.Context) error {
	if c.creds.AuthType == credentials.AuthTypeApiKey || c.creds.Tokens == nil || c.creds.Tokens.AccessToken == "" {
		return nil
	}

	exp := c.creds.Tokens.ExpiresAt
	if exp == 0 {
		var err error
		exp, err = jwtExpiry(c.creds.Tokens.AccessToken)
		if err != nil {
			return err
		}
	}

	if time.Now().Unix() >= exp-bufferSeconds {
		if c.refresher == nil {
			return fmt.Errorf("session expired, please login using `threef login`")
		}
		c.log.Debug().Msg("token expired or approaching expiration, refreshing")
		return c.refresher.Refresh(ctx)
	}
	return nil
}

func jwtExpiry(token string) (int64, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid JWT token format")
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return 0, fmt.Errorf("failed to decode JWT payload: %w", err)
	}

	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return 0, fmt.Errorf("failed to unmarshal JWT claims: %w", err)
	}
	return claims.Exp, nil
}

var sensitiveHeaderPattern = regexp.MustCompile(`(?i)(authorization|apikey):\[[^\]]*\]`)

func redactSensitiveHeaders(s string) string {
	return sensitiveHeaderPattern.ReplaceAllString(s, "${1}:[[REDACTED]]")
}
