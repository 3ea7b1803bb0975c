package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/dailytext/internal/dbus"
)

func TestGenerateStatus(t *testing.T) {
	s := &dbus.Status{Index: 1, Count: 4, Text: "Tuesday\r\n"}

	got := generateStatus(s, 0)
	assert.Equal(t, "Tuesday", got.Text)
	assert.Equal(t, "running", got.Class)
	assert.Equal(t, 50, got.Percentage)
	assert.Contains(t, got.Tooltip, "Line 2 of 4")
	assert.NotContains(t, got.Tooltip, "Next change")

	s.NextRotation = time.Now().Add(3 * time.Hour)
	got = generateStatus(s, 0)
	assert.Contains(t, got.Tooltip, "Next change")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 0, "hello"},
		{"hello", 5, "hello"},
		{"hello", 4, "hel…"},
		{"héllo wörld", 3, "hé…"},
		{"hello", 1, "…"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.n), "%q/%d", tt.in, tt.n)
	}
}
