package matching

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesWildcard(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		domain  string
		pattern string
		matches bool
	}{
		{
			name:    "subdomain wildcard matches",
			domain:  "acme.atlassian.net",
			pattern: "*.atlassian.net",
			matches: true,
		},
		{
			name:    "wildcard spans multiple labels",
			domain:  "a.b.atlassian.net",
			pattern: "*.atlassian.net",
			matches: true,
		},
		{
			name:    "differing suffix does not match",
			domain:  "acme.atlassian.com",
			pattern: "*.atlassian.net",
			matches: false,
		},
		{
			name:    "full match required, not substring",
			domain:  "acme.atlassian.net.evil.example",
			pattern: "*.atlassian.net",
			matches: false,
		},
		{
			name:    "literal pattern matches itself",
			domain:  "github.com",
			pattern: "github.com",
			matches: true,
		},
		{
			name:    "wildcard in the middle",
			domain:  "api.eu.example.com",
			pattern: "api.*.example.com",
			matches: true,
		},
		{
			name:    "bare apex does not match subdomain wildcard",
			domain:  "atlassian.net",
			pattern: "*.atlassian.net",
			matches: false,
		},
		{
			name:    "trailing wildcard",
			domain:  "github.io",
			pattern: "github.*",
			matches: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.matches, MatchesWildcard(tc.domain, tc.pattern))
		})
	}
}

// Any wildcard pattern that matches a domain must also match the domain
// produced by substituting an arbitrary non-empty label for the wildcard.
func TestMatchesWildcardSubstitutionProperty(t *testing.T) {
	t.Parallel()

	patterns := []string{"*.atlassian.net", "api.*.example.com", "*.github.io"}
	for _, pattern := range patterns {
		substituted := strings.ReplaceAll(pattern, "*", "some-label")
		assert.True(t, MatchesWildcard(substituted, pattern),
			"substituted domain %q should match pattern %q", substituted, pattern)
	}
}

func TestWildcardConfidence(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		domain   string
		pattern  string
		expected int
	}{
		{
			name:     "two specific of three segments",
			domain:   "acme.atlassian.net",
			pattern:  "*.atlassian.net",
			expected: 83, // 70 + 20*(2/3)
		},
		{
			name:     "fully specific pattern",
			domain:   "github.com",
			pattern:  "github.com",
			expected: 90, // 70 + 20*(2/2)
		},
		{
			name:     "one specific of three segments",
			domain:   "a.b.example",
			pattern:  "*.*.example",
			expected: 77, // 70 + 20*(1/3)
		},
		{
			name:     "pattern more specific than domain is clamped",
			domain:   "net",
			pattern:  "very.deep.atlassian.net",
			expected: 100, // raw 70 + 20*4 = 150
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, WildcardConfidence(tc.domain, tc.pattern))
		})
	}
}

func TestWildcardConfidenceBounds(t *testing.T) {
	t.Parallel()

	domains := []string{"a.b.c.d.e", "x.y", "single"}
	patterns := []string{"*", "*.b.c", "a.*.c.d.e", "exact.example.com"}

	for _, d := range domains {
		for _, p := range patterns {
			c := WildcardConfidence(d, p)
			assert.GreaterOrEqual(t, c, baseConfidence, "domain %q pattern %q", d, p)
			assert.LessOrEqual(t, c, ExactMatchConfidence, "domain %q pattern %q", d, p)
		}
	}
}
