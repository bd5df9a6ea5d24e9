// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package datasources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/mitchellh/mapstructure"
	"golang.org/x/oauth2/google"

	"github.com/mpassid/authdata-service/internal/types"
)

const directoryScope = "https://www.googleapis.com/auth/admin.directory.user.readonly"

type googleParams struct {
	// KeyFile is the path to the service account key in JSON form.
	KeyFile string `mapstructure:"key_file"`
	// AdminPrincipal is the directory administrator the service account acts
	// on behalf of. Domain-wide delegation must be granted upstream.
	AdminPrincipal string `mapstructure:"admin_principal"`
	Municipality   string `mapstructure:"municipality"`
}

type googleSchema struct {
	SchoolID string `json:"SchoolID"`
	Role     string `json:"Role"`
	Class    string `json:"Class"`
	PrimusID string `json:"PrimusID"`
}

type googleUser struct {
	PrimaryEmail string `json:"primaryEmail"`
	Name         struct {
		GivenName  string `json:"givenName"`
		FamilyName string `json:"familyName"`
	} `json:"name"`
	CustomSchemas map[string]json.RawMessage `json:"customSchemas"`
}

// GoogleConnector resolves users from the Google Workspace directory by
// impersonating a fixed administrative principal. Role data lives in a
// vendor-specific custom schema, users without it resolve with empty roles.
type GoogleConnector struct {
	source  string
	params  googleParams
	baseURL string
	// newClient builds the delegated OAuth2 HTTP client. Credential loading
	// and the token exchange happen inside the request that needs them.
	newClient func(ctx context.Context) (*http.Client, error)

	*connectorDeps
}

func (c *GoogleConnector) GetOID(externalID string) string {
	return DeriveOID(c.source, externalID)
}

// GetData fetches one directory user by its opaque key, requesting only the
// field projection this service consumes.
func (c *GoogleConnector) GetData(ctx context.Context, externalID string) (*types.User, error) {
	ctx, span := c.tracer.Start(ctx, "datasources.GoogleConnector.GetData")
	defer span.End()

	client, err := c.newClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	endpoint := fmt.Sprintf("%s/users/%s?projection=full&fields=%s",
		c.baseURL,
		url.PathEscape(externalID),
		url.QueryEscape("primaryEmail,customSchemas,name"),
	)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %v", err)
	}

	response, err := client.Do(request)
	if err != nil {
		c.setAvailability(c.source, 0)
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer response.Body.Close()

	c.setAvailability(c.source, 1)

	if response.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrRemoteUnavailable, response.StatusCode)
	}

	body, err := readBody(response)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	var data googleUser
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	oid := c.GetOID(externalID)

	if err := c.provisioner.Provision(ctx, c.source, oid, externalID); err != nil {
		return nil, err
	}

	roles := make([]types.Role, 0, 1)
	attributes := make([]types.Attribute, 0, 1)
	if raw, ok := data.CustomSchemas["PrimusV2"]; ok {
		var schema googleSchema
		if err := json.Unmarshal(raw, &schema); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		roles = append(roles, types.Role{
			School:       schema.SchoolID,
			Role:         normalizeRole(schema.Role),
			Group:        schema.Class,
			Municipality: c.params.Municipality,
		})
		attributes = append(attributes, types.Attribute{Name: "legacyId", Value: schema.PrimusID})
	}

	return &types.User{
		Username:   oid,
		FirstName:  data.Name.GivenName,
		LastName:   data.Name.FamilyName,
		Roles:      roles,
		Attributes: attributes,
	}, nil
}

// GetUserData is not available, roster listings are not served from the
// directory.
func (c *GoogleConnector) GetUserData(ctx context.Context, query *Query) (*types.UserList, error) {
	return nil, ErrNotSupported
}

func newGoogleConnector(r *Registry, source string, params map[string]interface{}) (DataSourceInterface, error) {
	c := new(GoogleConnector)

	c.source = source
	if err := mapstructure.Decode(params, &c.params); err != nil {
		return nil, fmt.Errorf("invalid Google parameters: %v", err)
	}
	c.baseURL = "https://admin.googleapis.com/admin/directory/v1"
	c.newClient = func(ctx context.Context) (*http.Client, error) {
		key, err := os.ReadFile(c.params.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read service account key: %v", err)
		}
		cfg, err := google.JWTConfigFromJSON(key, directoryScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse service account key: %v", err)
		}
		cfg.Subject = c.params.AdminPrincipal
		return cfg.Client(ctx), nil
	}

	c.connectorDeps = newConnectorDeps(r)

	return c, nil
}
