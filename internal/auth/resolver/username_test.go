package resolver

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// takenSet implements UsernameChecker over a predicate.
type takenSet func(string) bool

func (f takenSet) UsernameExists(_ context.Context, username string) (bool, error) {
	return f(username), nil
}

func nothingTaken(string) bool { return false }

func TestUniqueUsernameSanitizes(t *testing.T) {
	cases := map[string]string{
		"john":          "john",
		"Jo Doe!":       "JoDoe",
		"jo.doe@x":      "jodoex",
		"_under_score_": "_under_score_",
		"日本語":           "user", // nothing survives sanitization
		"":              "user",
	}
	for in, want := range cases {
		got, err := UniqueUsername(context.Background(), takenSet(nothingTaken), in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestUniqueUsernameTruncates(t *testing.T) {
	long := strings.Repeat("a", 80)
	got, err := UniqueUsername(context.Background(), takenSet(nothingTaken), long)
	require.NoError(t, err)
	assert.Len(t, got, 50)
}

func TestUniqueUsernameNumbersOnCollision(t *testing.T) {
	taken := map[string]bool{"john": true, "john1": true, "john2": true}
	got, err := UniqueUsername(context.Background(), takenSet(func(u string) bool {
		return taken[u]
	}), "john")
	require.NoError(t, err)
	assert.Equal(t, "john3", got)
}

func TestUniqueUsernameRandomFallbackWhenExhausted(t *testing.T) {
	// Every numbered candidate is taken; only the random suffix can
	// terminate.
	got, err := UniqueUsername(context.Background(), takenSet(func(u string) bool {
		return !strings.Contains(u, "_")
	}), "john")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "john_"))
	assert.LessOrEqual(t, len(got), 50)
}
