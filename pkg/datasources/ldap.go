// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package datasources

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	ldap "github.com/go-ldap/ldap/v3"
	"github.com/mitchellh/mapstructure"

	"github.com/mpassid/authdata-service/internal/types"
)

// ldapConn is the subset of the directory connection used by the directory
// connectors.
type ldapConn interface {
	Bind(username, password string) error
	Search(request *ldap.SearchRequest) (*ldap.SearchResult, error)
	Close() error
}

type ldapParams struct {
	Host     string `mapstructure:"host"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	BaseDN   string `mapstructure:"base_dn"`
	// Filter is the single-user search filter with a %s placeholder for the
	// escaped lookup value, e.g. "(&(cn=%s)(objectclass=inetOrgPerson))".
	Filter string `mapstructure:"filter"`
	// SchoolOffset and MunicipalityOffset are the positional indexes of the
	// school and municipality segments in the entry DN. The positional
	// convention is fragile per deployment, which is exactly why the offsets
	// live in configuration and not in code.
	SchoolOffset       int               `mapstructure:"school_offset"`
	MunicipalityOffset int               `mapstructure:"municipality_offset"`
	MunicipalityIDMap  map[string]string `mapstructure:"municipality_id_map"`
	SchoolIDMap        map[string]string `mapstructure:"school_id_map"`
}

// LDAPConnector resolves users from a plain-bind directory server. DN path
// segments at fixed offsets carry the school and municipality names.
type LDAPConnector struct {
	source string
	params ldapParams

	// conn is bound lazily on the first query. The connector lives for a
	// single request, so there is no reconnect handling.
	conn ldapConn
	dial func(host string) (ldapConn, error)

	*connectorDeps
}

func (c *LDAPConnector) GetOID(externalID string) string {
	return DeriveOID(c.source, externalID)
}

// GetData looks up a single user by the configured filter. An empty search
// result is absence, not a failure.
func (c *LDAPConnector) GetData(ctx context.Context, externalID string) (*types.User, error) {
	ctx, span := c.tracer.Start(ctx, "datasources.LDAPConnector.GetData")
	defer span.End()

	filter := fmt.Sprintf(c.params.Filter, ldap.EscapeFilter(externalID))
	entries, err := c.search(c.params.BaseDN, filter)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	entry := entries[0]
	oid := c.GetOID(externalID)

	legacy := md5.Sum([]byte(externalID))
	user := &types.User{
		Username:  oid,
		FirstName: entry.GetAttributeValue("givenName"),
		LastName:  entry.GetAttributeValue("sn"),
		Roles: []types.Role{{
			School:       c.dnSegment(entry.DN, c.params.SchoolOffset),
			Role:         normalizeRole(entry.GetAttributeValue("title")),
			Group:        entry.GetAttributeValue("departmentNumber"),
			Municipality: c.dnSegment(entry.DN, c.params.MunicipalityOffset),
		}},
		Attributes: []types.Attribute{
			{Name: "legacyId", Value: hex.EncodeToString(legacy[:])},
		},
	}

	if err := c.provisioner.Provision(ctx, c.source, oid, externalID); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserData lists users under the configured base DN, optionally narrowed
// to a school subtree and a group attribute. Only the first result page is
// returned, the directory paging control is not driven further.
func (c *LDAPConnector) GetUserData(ctx context.Context, query *Query) (*types.UserList, error) {
	ctx, span := c.tracer.Start(ctx, "datasources.LDAPConnector.GetUserData")
	defer span.End()

	baseDN := c.params.BaseDN
	if query.School != "" {
		baseDN = fmt.Sprintf("ou=%s,%s", ldap.EscapeDN(query.School), baseDN)
	}
	filter := "(objectclass=inetOrgPerson)"
	if query.Group != "" {
		filter = fmt.Sprintf("(&(departmentNumber=%s)%s)", ldap.EscapeFilter(query.Group), filter)
	}

	entries, err := c.search(baseDN, filter)
	if err != nil {
		return nil, err
	}

	results := make([]*types.User, 0, len(entries))
	for _, entry := range entries {
		externalID := entry.GetAttributeValue("uid")
		oid := c.GetOID(externalID)

		results = append(results, &types.User{
			Username:  oid,
			FirstName: entry.GetAttributeValue("givenName"),
			LastName:  entry.GetAttributeValue("sn"),
			Roles: []types.Role{{
				School:       mapID(c.params.SchoolIDMap, c.dnSegment(entry.DN, c.params.SchoolOffset)),
				Role:         normalizeRole(entry.GetAttributeValue("title")),
				Group:        entry.GetAttributeValue("departmentNumber"),
				Municipality: mapID(c.params.MunicipalityIDMap, c.dnSegment(entry.DN, c.params.MunicipalityOffset)),
			}},
			Attributes: []types.Attribute{},
		})

		if err := c.provisioner.Provision(ctx, c.source, oid, externalID); err != nil {
			return nil, err
		}
	}

	return types.NewUserList(results), nil
}

func (c *LDAPConnector) connect() error {
	if c.conn != nil {
		return nil
	}

	conn, err := c.dial(c.params.Host)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	if err := conn.Bind(c.params.Username, c.params.Password); err != nil {
		conn.Close()
		return fmt.Errorf("%w: bind failed: %v", ErrRemoteUnavailable, err)
	}

	c.conn = conn
	return nil
}

func (c *LDAPConnector) search(baseDN, filter string) ([]*ldap.Entry, error) {
	if err := c.connect(); err != nil {
		c.setAvailability(c.source, 0)
		return nil, err
	}

	request := ldap.NewSearchRequest(
		baseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, 0, false,
		filter,
		nil,
		nil,
	)

	result, err := c.conn.Search(request)
	if err != nil {
		c.setAvailability(c.source, 0)
		return nil, fmt.Errorf("%w: search failed: %v", ErrRemoteUnavailable, err)
	}

	c.setAvailability(c.source, 1)
	return result.Entries, nil
}

// dnSegment returns the value of the RDN at the given offset, e.g. offset 3
// of "cn=x,ou=People,ou=Staff,ou=School1,ou=City1,dc=example" is "School1".
func (c *LDAPConnector) dnSegment(dn string, offset int) string {
	parts := strings.Split(dn, ",")
	if offset < 0 || offset >= len(parts) {
		return ""
	}
	segment := parts[offset]
	if i := strings.Index(segment, "="); i >= 0 {
		segment = segment[i+1:]
	}
	return segment
}

func mapID(idMap map[string]string, name string) string {
	if id, ok := idMap[name]; ok {
		return id
	}
	return name
}

func normalizeRole(s string) types.RoleType {
	role, _ := types.ParseRoleType(s)
	return role
}

func newLDAPConnector(r *Registry, source string, params map[string]interface{}) (DataSourceInterface, error) {
	c := new(LDAPConnector)

	c.source = source
	c.params = ldapParams{SchoolOffset: 3, MunicipalityOffset: 4}
	if err := mapstructure.Decode(params, &c.params); err != nil {
		return nil, fmt.Errorf("invalid directory parameters: %v", err)
	}
	c.dial = func(host string) (ldapConn, error) {
		return ldap.DialURL(host)
	}

	c.connectorDeps = newConnectorDeps(r)

	return c, nil
}
