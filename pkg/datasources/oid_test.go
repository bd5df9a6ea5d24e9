// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package datasources

import (
	"strings"
	"testing"
)

func TestDeriveOIDDeterministic(t *testing.T) {
	tests := []struct {
		name        string
		sourceTag   string
		rawUsername string
	}{
		{name: "plain ascii", sourceTag: "dreamschool", rawUsername: "user"},
		{name: "empty username", sourceTag: "ldap_test", rawUsername: ""},
		{name: "unicode username", rawUsername: "äö.user", sourceTag: "ad_city"},
		{name: "long username", sourceTag: "wilma", rawUsername: strings.Repeat("x", 512)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			first := DeriveOID(test.sourceTag, test.rawUsername)
			second := DeriveOID(test.sourceTag, test.rawUsername)

			if first != second {
				t.Fatalf("expected identical derivations, got %q and %q", first, second)
			}
			if len(first) > maxOIDLength {
				t.Fatalf("expected length <= %d, got %d", maxOIDLength, len(first))
			}
			if !strings.HasPrefix(first, oidPrefix) {
				t.Fatalf("expected prefix %q, got %q", oidPrefix, first)
			}
		})
	}
}

func TestDeriveOIDKnownValue(t *testing.T) {
	// sha1("dreamschool" + "user"), tag included, truncated to 30 chars.
	oid := DeriveOID("dreamschool", "user")

	if oid != "MPASSOID.ea5f9ca03f6edf5a0409d" {
		t.Fatalf("unexpected derivation %q", oid)
	}
	if len(oid) != maxOIDLength {
		t.Fatalf("expected length %d, got %d", maxOIDLength, len(oid))
	}
}

func TestDeriveOIDSourceTagsDoNotCollide(t *testing.T) {
	if DeriveOID("sourceA", "user") == DeriveOID("sourceB", "user") {
		t.Fatal("expected different source tags to derive different identifiers")
	}
}
