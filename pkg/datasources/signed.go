// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package datasources

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"github.com/mpassid/authdata-service/internal/types"
)

type signedParams struct {
	Hostname     string `mapstructure:"hostname"`
	SharedSecret string `mapstructure:"shared_secret"`
	Municipality string `mapstructure:"municipality"`
}

type signedRole struct {
	School string `json:"school"`
	Role   string `json:"role"`
	Group  string `json:"group"`
}

type signedUser struct {
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	CryptID   string       `json:"cryptid"`
	Roles     []signedRole `json:"roles"`
}

// SignedConnector resolves users from a REST API that authenticates requests
// by an HMAC-SHA256 signature over the full request URL. Listing is not part
// of the upstream API.
type SignedConnector struct {
	source string
	params signedParams
	client *http.Client

	*connectorDeps
}

func (c *SignedConnector) GetOID(externalID string) string {
	return DeriveOID(c.source, externalID)
}

// GetData fetches one user by its upstream username. The response carries the
// user's roles as an array but only the first entry is honored, multiple
// simultaneous roles are not supported by this source.
func (c *SignedConnector) GetData(ctx context.Context, externalID string) (*types.User, error) {
	ctx, span := c.tracer.Start(ctx, "datasources.SignedConnector.GetData")
	defer span.End()

	// The nonce only needs to be unique per request, it feeds the signature
	// and lets the upstream reject replays.
	nonce := uuid.NewString()

	path := "/external/mpass?username=" + url.QueryEscape(externalID) + "&nonce=" + nonce
	endpoint := "https://" + c.params.Hostname + path + "&h=" + c.sign(path)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %v", err)
	}

	response, err := c.client.Do(request)
	if err != nil {
		c.setAvailability(c.source, 0)
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer response.Body.Close()

	c.setAvailability(c.source, 1)

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrRemoteUnavailable, response.StatusCode)
	}

	body, err := readBody(response)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	var data []signedUser
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	oid := c.GetOID(externalID)
	user := &types.User{
		Username:  oid,
		FirstName: data[0].FirstName,
		LastName:  data[0].LastName,
		Roles:     c.userRoles(&data[0]),
		Attributes: []types.Attribute{
			{Name: "legacyId", Value: data[0].CryptID},
		},
	}

	if err := c.provisioner.Provision(ctx, c.source, oid, externalID); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserData is not available, the upstream API has no listing endpoint.
func (c *SignedConnector) GetUserData(ctx context.Context, query *Query) (*types.UserList, error) {
	return nil, ErrNotSupported
}

// sign computes the request signature over the scheme, host and the full path
// with query string, the form the upstream verifies.
func (c *SignedConnector) sign(path string) string {
	mac := hmac.New(sha256.New, []byte(c.params.SharedSecret))
	mac.Write([]byte("https://" + c.params.Hostname + path))
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *SignedConnector) userRoles(data *signedUser) []types.Role {
	if len(data.Roles) == 0 {
		return []types.Role{{Municipality: c.params.Municipality}}
	}
	first := data.Roles[0]
	return []types.Role{{
		School:       first.School,
		Role:         normalizeRole(first.Role),
		Group:        first.Group,
		Municipality: c.params.Municipality,
	}}
}

func newSignedConnector(r *Registry, source string, params map[string]interface{}) (DataSourceInterface, error) {
	c := new(SignedConnector)

	c.source = source
	if err := mapstructure.Decode(params, &c.params); err != nil {
		return nil, fmt.Errorf("invalid signed REST parameters: %v", err)
	}
	c.client = http.DefaultClient

	c.connectorDeps = newConnectorDeps(r)

	return c, nil
}
