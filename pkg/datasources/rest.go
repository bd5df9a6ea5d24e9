// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package datasources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/mpassid/authdata-service/internal/types"
)

type restParams struct {
	APIURL   string `mapstructure:"api_url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	// TeacherPermission is the permission code whose presence on a role
	// record makes the user a teacher for that organisation.
	TeacherPermission string `mapstructure:"teacher_permission"`
	// OrgMap maps lower-case municipality names to lower-case school names
	// to the upstream organisation id.
	OrgMap map[string]map[string]int64 `mapstructure:"org_map"`
}

// flexID tolerates upstream ids serialized either as JSON strings or as
// numbers.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	*f = flexID(n.String())
	return nil
}

type restOrganisation struct {
	ID    flexID `json:"id"`
	Title string `json:"title"`
}

type restRole struct {
	Organisation restOrganisation `json:"organisation"`
	Permissions  []struct {
		Code string `json:"code"`
	} `json:"permissions"`
}

type restGroup struct {
	Organisation restOrganisation `json:"organisation"`
	Title        string           `json:"title"`
}

type restUser struct {
	ID         flexID      `json:"id"`
	Username   string      `json:"username"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	Roles      []restRole  `json:"roles"`
	UserGroups []restGroup `json:"user_groups"`
}

type restListing struct {
	Objects []restUser `json:"objects"`
}

// RESTConnector resolves users from a basic-auth REST API exposing a paged
// listing envelope. Teacher status is derived from a permission code, every
// other group membership defaults to student.
type RESTConnector struct {
	source string
	params restParams
	client *http.Client

	*connectorDeps
}

func (c *RESTConnector) GetOID(externalID string) string {
	return DeriveOID(c.source, externalID)
}

// GetData fetches one user by its upstream id. A non-success status or an
// unparsable body is treated as absence.
func (c *RESTConnector) GetData(ctx context.Context, externalID string) (*types.User, error) {
	ctx, span := c.tracer.Start(ctx, "datasources.RESTConnector.GetData")
	defer span.End()

	endpoint := strings.TrimSuffix(c.params.APIURL, "/") + "/" + url.PathEscape(externalID) + "/"
	body, ok := c.fetch(ctx, endpoint, nil)
	if !ok {
		return nil, nil
	}

	var data restUser
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Warnf("could not parse user data from %s: %v", c.source, err)
		return nil, nil
	}

	oid := c.GetOID(data.Username)
	user := &types.User{
		Username:   oid,
		FirstName:  data.FirstName,
		LastName:   data.LastName,
		Roles:      c.userRoles(&data),
		Attributes: []types.Attribute{},
	}

	if err := c.provisioner.Provision(ctx, c.source, oid, string(data.ID)); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserData fetches a listing filtered by the organisation id mapped from
// the query's municipality and school, falling back to an unfiltered fetch
// when the mapping is absent. Upstream failures of any kind degrade to an
// empty listing, listing callers never see an error from this source.
func (c *RESTConnector) GetUserData(ctx context.Context, query *Query) (*types.UserList, error) {
	ctx, span := c.tracer.Start(ctx, "datasources.RESTConnector.GetUserData")
	defer span.End()

	params := url.Values{}
	if orgID, ok := c.orgID(query.Municipality, query.School); ok {
		params.Set("organisations__id", fmt.Sprintf("%d", orgID))
		if query.Group != "" {
			params.Set("user_groups__title__icontains", query.Group)
		}
	}

	body, ok := c.fetch(ctx, c.params.APIURL, params)
	if !ok {
		return types.NewUserList(nil), nil
	}

	var listing restListing
	if err := json.Unmarshal(body, &listing); err != nil {
		c.logger.Warnf("could not parse user listing from %s: %v", c.source, err)
		return types.NewUserList(nil), nil
	}

	results := make([]*types.User, 0, len(listing.Objects))
	for i := range listing.Objects {
		data := &listing.Objects[i]
		oid := c.GetOID(data.Username)

		results = append(results, &types.User{
			Username:   oid,
			FirstName:  data.FirstName,
			LastName:   data.LastName,
			Roles:      c.userRoles(data),
			Attributes: []types.Attribute{},
		})

		if err := c.provisioner.Provision(ctx, c.source, oid, string(data.ID)); err != nil {
			return nil, err
		}
	}

	return types.NewUserList(results), nil
}

// fetch issues a basic-auth GET and returns the body, or ok=false on any
// transport or status failure.
func (c *RESTConnector) fetch(ctx context.Context, endpoint string, params url.Values) ([]byte, bool) {
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Warnf("failed to build request for %s: %v", c.source, err)
		return nil, false
	}
	request.SetBasicAuth(c.params.Username, c.params.Password)

	response, err := c.client.Do(request)
	if err != nil {
		c.logger.Warnf("request to %s failed: %v", c.source, err)
		c.setAvailability(c.source, 0)
		return nil, false
	}
	defer response.Body.Close()

	c.setAvailability(c.source, 1)

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		c.logger.Warnf("%s API response not OK: %d", c.source, response.StatusCode)
		return nil, false
	}

	body, err := readBody(response)
	if err != nil {
		c.logger.Warnf("failed to read response from %s: %v", c.source, err)
		return nil, false
	}

	return body, true
}

// userRoles derives one role per group membership. The user is a teacher in
// every organisation where at least one of their role records carries the
// teacher permission code, and a student everywhere else.
func (c *RESTConnector) userRoles(data *restUser) []types.Role {
	teacherOrgs := make(map[flexID]bool)
	for _, role := range data.Roles {
		for _, permission := range role.Permissions {
			if permission.Code == c.params.TeacherPermission {
				teacherOrgs[role.Organisation.ID] = true
				break
			}
		}
	}

	roles := make([]types.Role, 0, len(data.UserGroups))
	for _, group := range data.UserGroups {
		role := types.RoleStudent
		if teacherOrgs[group.Organisation.ID] {
			role = types.RoleTeacher
		}
		roles = append(roles, types.Role{
			School:       group.Organisation.Title,
			Role:         role,
			Group:        group.Title,
			Municipality: c.municipalityByOrgID(group.Organisation.ID),
		})
	}
	return roles
}

func (c *RESTConnector) orgID(municipality, school string) (int64, bool) {
	if municipality == "" || school == "" {
		return 0, false
	}
	schools, ok := c.params.OrgMap[strings.ToLower(municipality)]
	if !ok {
		c.logger.Warnf("unknown municipality %q for source %s", municipality, c.source)
		return 0, false
	}
	orgID, ok := schools[strings.ToLower(school)]
	if !ok {
		c.logger.Warnf("unknown school %q for source %s", school, c.source)
		return 0, false
	}
	return orgID, true
}

// municipalityByOrgID reverse-maps an organisation id to its municipality
// name, reported with an upper-case initial.
func (c *RESTConnector) municipalityByOrgID(id flexID) string {
	for municipality, schools := range c.params.OrgMap {
		for _, orgID := range schools {
			if fmt.Sprintf("%d", orgID) == string(id) {
				return capitalize(municipality)
			}
		}
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func newRESTConnector(r *Registry, source string, params map[string]interface{}) (DataSourceInterface, error) {
	c := new(RESTConnector)

	c.source = source
	c.params = restParams{TeacherPermission: "dreamdiary.diary.supervisor"}
	if err := mapstructure.Decode(params, &c.params); err != nil {
		return nil, fmt.Errorf("invalid REST parameters: %v", err)
	}
	c.client = http.DefaultClient

	c.connectorDeps = newConnectorDeps(r)

	return c, nil
}
