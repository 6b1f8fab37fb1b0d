package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNowUTC(t *testing.T) {
	clk := New()

	before := time.Now().UTC().Add(-time.Second)
	got := clk.Now()
	after := time.Now().UTC().Add(time.Second)

	require.Equal(t, time.UTC, got.Location())
	require.False(t, got.Before(before))
	require.False(t, got.After(after))
}
