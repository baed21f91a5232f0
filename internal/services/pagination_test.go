package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageSkip(t *testing.T) {
	cases := []struct {
		page, limit int64
		wantSkip    int64
		wantLimit   int64
		description string
	}{
		{1, 10, 0, 10, "first page"},
		{2, 10, 10, 10, "second page starts at record 11"},
		{3, 5, 10, 5, "custom limit"},
		{0, 10, 0, 10, "page below 1 clamps to 1"},
		{-2, 10, 0, 10, "negative page clamps to 1"},
		{2, 0, 10, 10, "zero limit falls back to default"},
	}
	for _, tc := range cases {
		skip, limit := PageSkip(tc.page, tc.limit)
		assert.Equal(t, tc.wantSkip, skip, tc.description)
		assert.Equal(t, tc.wantLimit, limit, tc.description)
	}
}
