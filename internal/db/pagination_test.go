// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package db

import "testing"

func TestOffset(t *testing.T) {
	tests := []struct {
		name     string
		page     int64
		pageSize uint64

		expected uint64
	}{
		{name: "First page", page: 1, pageSize: 100, expected: 0},
		{name: "Second page", page: 2, pageSize: 100, expected: 100},
		{name: "Zero page clamps to first", page: 0, pageSize: 100, expected: 0},
		{name: "Negative page clamps to first", page: -3, pageSize: 100, expected: 0},
		{name: "Custom page size", page: 3, pageSize: 25, expected: 50},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Offset(test.page, test.pageSize); got != test.expected {
				t.Fatalf("expected offset %d, got %d", test.expected, got)
			}
		})
	}
}

func TestPageSize(t *testing.T) {
	tests := []struct {
		name string
		size int64

		expected uint64
	}{
		{name: "Explicit size", size: 25, expected: 25},
		{name: "Zero falls back to default", size: 0, expected: defaultPageSize},
		{name: "Negative falls back to default", size: -1, expected: defaultPageSize},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := PageSize(test.size); got != test.expected {
				t.Fatalf("expected page size %d, got %d", test.expected, got)
			}
		})
	}
}
