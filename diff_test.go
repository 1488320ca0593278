package followdiff_test

import (
	"testing"

	"github.com/fwojciec/followdiff"
	"github.com/stretchr/testify/assert"
)

func records(names ...string) []followdiff.Record {
	out := make([]followdiff.Record, 0, len(names))
	for _, n := range names {
		out = append(out, followdiff.Record{Username: n, ProfileURL: followdiff.ProfileURL(n)})
	}
	return out
}

func TestNonFollowers(t *testing.T) {
	t.Parallel()

	t.Run("matches usernames case-insensitively", func(t *testing.T) {
		t.Parallel()

		followers := []followdiff.Record{{Username: "alice"}}
		following := []followdiff.Record{{Username: "alice"}, {Username: "BOB"}}

		got := followdiff.NonFollowers(followers, following)

		assert.Equal(t, []followdiff.Record{{Username: "BOB"}}, got)
	})

	t.Run("ignores case differences between lists", func(t *testing.T) {
		t.Parallel()

		got := followdiff.NonFollowers(records("Alice", "CAROL"), records("alice", "carol", "dave"))

		assert.Equal(t, []string{"dave"}, followdiff.Usernames(got))
	})

	t.Run("preserves following order", func(t *testing.T) {
		t.Parallel()

		following := records("zed", "amy", "kim", "bob", "lee")
		followers := records("kim")

		got := followdiff.NonFollowers(followers, following)

		assert.Equal(t, []string{"zed", "amy", "bob", "lee"}, followdiff.Usernames(got))
	})

	t.Run("is empty when comparing a list with itself", func(t *testing.T) {
		t.Parallel()

		list := records("a", "b", "c")

		assert.Empty(t, followdiff.NonFollowers(list, list))
	})

	t.Run("returns everyone when followers is empty", func(t *testing.T) {
		t.Parallel()

		following := records("a", "b", "c")

		assert.Equal(t, following, followdiff.NonFollowers(nil, following))
		assert.Equal(t, following, followdiff.NonFollowers([]followdiff.Record{}, following))
	})

	t.Run("returns empty result when following is empty", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, followdiff.NonFollowers(records("a"), nil))
	})

	t.Run("only returns usernames from following that are absent from followers", func(t *testing.T) {
		t.Parallel()

		followers := records("a", "b", "x", "y")
		following := records("b", "c", "d", "y", "z")

		got := followdiff.NonFollowers(followers, following)

		inFollowing := map[string]bool{}
		for _, r := range following {
			inFollowing[r.Key()] = true
		}
		inFollowers := map[string]bool{}
		for _, r := range followers {
			inFollowers[r.Key()] = true
		}
		for _, r := range got {
			assert.True(t, inFollowing[r.Key()], "%s should come from following", r.Username)
			assert.False(t, inFollowers[r.Key()], "%s should not be a follower", r.Username)
		}
		assert.Equal(t, []string{"c", "d", "z"}, followdiff.Usernames(got))
	})

	t.Run("keeps duplicates from following", func(t *testing.T) {
		t.Parallel()

		got := followdiff.NonFollowers(nil, records("a", "a"))

		assert.Len(t, got, 2)
	})

	t.Run("does not modify its inputs", func(t *testing.T) {
		t.Parallel()

		followers := records("a")
		following := records("a", "b")
		before := append([]followdiff.Record(nil), following...)

		first := followdiff.NonFollowers(followers, following)
		second := followdiff.NonFollowers(followers, following)

		assert.Equal(t, before, following)
		assert.Equal(t, first, second)
	})
}

func TestFans(t *testing.T) {
	t.Parallel()

	got := followdiff.Fans(records("a", "B", "c"), records("b"))

	assert.Equal(t, []string{"a", "c"}, followdiff.Usernames(got))
}

func TestDifference(t *testing.T) {
	t.Parallel()

	t.Run("case-sensitive matcher treats differently cased names as distinct", func(t *testing.T) {
		t.Parallel()

		got := followdiff.Difference(records("alice", "BOB"), records("Alice", "BOB"), followdiff.CaseSensitive)

		assert.Equal(t, []string{"alice"}, followdiff.Usernames(got))
	})

	t.Run("nil matcher defaults to case-insensitive", func(t *testing.T) {
		t.Parallel()

		got := followdiff.Difference(records("alice", "bob"), records("ALICE"), nil)

		assert.Equal(t, []string{"bob"}, followdiff.Usernames(got))
	})
}
