// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package types

import (
	"strings"
	"time"
)

type RoleType string

const (
	RoleTeacher RoleType = "teacher"
	RoleStudent RoleType = "student"
)

// ParseRoleType normalizes a source-specific role string into the two-value
// role vocabulary. Finnish titles are accepted because the directory sources
// carry them. Unrecognized strings are not an error; the caller drops them.
func ParseRoleType(s string) (RoleType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "teacher", "opettaja":
		return RoleTeacher, true
	case "student", "oppilas":
		return RoleStudent, true
	default:
		return "", false
	}
}

// Role is one attendance of a user in a school.
type Role struct {
	School       string   `json:"school"`
	Role         RoleType `json:"role"`
	Group        string   `json:"group"`
	Municipality string   `json:"municipality"`
}

type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// User is the canonical identity shape returned by every query, regardless of
// whether the data came from the local store or an external source.
type User struct {
	Username   string      `json:"username"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	Roles      []Role      `json:"roles"`
	Attributes []Attribute `json:"attributes"`
}

// UserList is the listing envelope. Next and Previous are permanently null,
// paging beyond the first page is not supported.
type UserList struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []*User `json:"results"`
}

func NewUserList(results []*User) *UserList {
	if results == nil {
		results = make([]*User, 0)
	}
	return &UserList{Count: len(results), Results: results}
}

// LocalUser is a row in the local user table. For users bound to an external
// system of record (shadow records) ExternalSource and ExternalID are set.
type LocalUser struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	ExternalSource string    `json:"external_source"`
	ExternalID     string    `json:"external_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Bound reports whether the user is backed by an external system of record.
func (u *LocalUser) Bound() bool {
	return u.ExternalSource != "" && u.ExternalID != ""
}

// UserAttribute is a locally stored attribute overlay, tagged with the data
// source that wrote it. Disabled rows are soft deleted and never returned by
// normal reads.
type UserAttribute struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	Name       string     `json:"name"`
	Value      string     `json:"value"`
	DataSource string     `json:"data_source"`
	DisabledAt *time.Time `json:"disabled_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
