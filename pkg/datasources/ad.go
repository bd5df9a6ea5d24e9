// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package datasources

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"strings"

	ldap "github.com/go-ldap/ldap/v3"
	"github.com/mitchellh/mapstructure"

	"github.com/mpassid/authdata-service/internal/types"
)

type adParams struct {
	Host     string `mapstructure:"host"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	BaseDN   string `mapstructure:"base_dn"`
	// Municipality is fixed per deployment, the directory tree does not
	// carry it.
	Municipality      string            `mapstructure:"municipality"`
	MunicipalityIDMap map[string]string `mapstructure:"municipality_id_map"`
	SchoolIDMap       map[string]string `mapstructure:"school_id_map"`
}

// ADConnector resolves users from an Active Directory server over a
// TLS-required connection. Single-user lookups are keyed by the directory
// GUID, transported base64 encoded.
type ADConnector struct {
	source string
	params adParams

	conn ldapConn
	dial func(host string) (ldapConn, error)

	*connectorDeps
}

func (c *ADConnector) GetOID(externalID string) string {
	return DeriveOID(c.source, externalID)
}

// GetData looks up a single user by its GUID. The external id is the base64
// encoding of the GUID's raw bytes and is decoded before building the search
// filter. An empty result is absence, not a failure.
func (c *ADConnector) GetData(ctx context.Context, externalID string) (*types.User, error) {
	ctx, span := c.tracer.Start(ctx, "datasources.ADConnector.GetData")
	defer span.End()

	guid, err := base64.StdEncoding.DecodeString(externalID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid GUID encoding: %v", ErrMalformedResponse, err)
	}

	filter := fmt.Sprintf("(objectGUID=%s)", escapeBinaryFilter(guid))
	entries, err := c.search(c.params.BaseDN, filter)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	entry := entries[0]
	oid := c.GetOID(entry.GetAttributeValue("objectGUID"))

	user := &types.User{
		Username:   oid,
		FirstName:  entry.GetAttributeValue("givenName"),
		LastName:   entry.GetAttributeValue("sn"),
		Roles:      []types.Role{c.entryRole(entry)},
		Attributes: []types.Attribute{},
	}

	if err := c.provisioner.Provision(ctx, c.source, oid, externalID); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserData lists directory users, optionally narrowed by office name and
// department. Only the first result page is returned.
func (c *ADConnector) GetUserData(ctx context.Context, query *Query) (*types.UserList, error) {
	ctx, span := c.tracer.Start(ctx, "datasources.ADConnector.GetUserData")
	defer span.End()

	filter := "(&(objectCategory=person)(objectClass=user))"
	if query.School != "" {
		filter = fmt.Sprintf("(&(physicalDeliveryOfficeName=%s)%s)", ldap.EscapeFilter(query.School), filter)
	}
	if query.Group != "" {
		filter = fmt.Sprintf("(&(department=%s)%s)", ldap.EscapeFilter(query.Group), filter)
	}

	entries, err := c.search(c.params.BaseDN, filter)
	if err != nil {
		return nil, err
	}

	results := make([]*types.User, 0, len(entries))
	for _, entry := range entries {
		externalID := entry.GetAttributeValue("uid")
		oid := c.GetOID(entry.GetAttributeValue("objectGUID"))

		results = append(results, &types.User{
			Username:   oid,
			FirstName:  entry.GetAttributeValue("givenName"),
			LastName:   entry.GetAttributeValue("sn"),
			Roles:      []types.Role{c.entryRole(entry)},
			Attributes: []types.Attribute{},
		})

		if err := c.provisioner.Provision(ctx, c.source, oid, externalID); err != nil {
			return nil, err
		}
	}

	return types.NewUserList(results), nil
}

func (c *ADConnector) entryRole(entry *ldap.Entry) types.Role {
	return types.Role{
		School:       mapID(c.params.SchoolIDMap, entry.GetAttributeValue("physicalDeliveryOfficeName")),
		Role:         normalizeRole(entry.GetAttributeValue("title")),
		Group:        entry.GetAttributeValue("department"),
		Municipality: mapID(c.params.MunicipalityIDMap, c.params.Municipality),
	}
}

func (c *ADConnector) connect() error {
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

func (c *ADConnector) search(baseDN, filter string) ([]*ldap.Entry, error) {
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

// escapeBinaryFilter encodes raw bytes for use inside a search filter, every
// byte as a backslash-escaped hex pair.
func escapeBinaryFilter(value []byte) string {
	var b strings.Builder
	for _, octet := range value {
		fmt.Fprintf(&b, `\%02x`, octet)
	}
	return b.String()
}

func newADConnector(r *Registry, source string, params map[string]interface{}) (DataSourceInterface, error) {
	c := new(ADConnector)

	c.source = source
	if err := mapstructure.Decode(params, &c.params); err != nil {
		return nil, fmt.Errorf("invalid directory parameters: %v", err)
	}
	c.dial = func(host string) (ldapConn, error) {
		conn, err := ldap.DialURL(host)
		if err != nil {
			return nil, err
		}
		if err := conn.StartTLS(&tls.Config{}); err != nil {
			conn.Close()
			return nil, err
		}
		return conn, nil
	}

	c.connectorDeps = newConnectorDeps(r)

	return c, nil
}
