// Package matching evaluates requested domains against registered domain patterns.
package matching

import (
	"math"
	"strings"

	"github.com/gobwas/glob"
)

const (
	// ExactMatchConfidence is the confidence assigned to exact domain matches.
	ExactMatchConfidence = 100

	// baseConfidence is the floor for wildcard match confidence.
	baseConfidence = 70

	// specificityWeight scales how much pattern specificity raises confidence
	// above the floor.
	specificityWeight = 20

	wildcardToken = "*"
)

// MatchesWildcard reports whether domain satisfies a wildcard pattern.
// Patterns use `*` as a glob token matching any sequence of characters,
// including dots; literal dots in the pattern match only themselves. The
// whole domain must match the pattern, not a substring.
func MatchesWildcard(domain, pattern string) bool {
	// Compiled without separators so `*` is free to span label boundaries.
	g, err := glob.Compile(pattern)
	if err != nil {
		return false
	}
	return g.Match(domain)
}

// WildcardConfidence scores a wildcard match between 70 and 100. Patterns
// with more literal (non-wildcard) segments relative to the domain's segment
// count score higher. The raw formula can exceed 100 when the pattern carries
// more literal segments than the domain has segments; the result is clamped
// to 100.
func WildcardConfidence(domain, pattern string) int {
	specific := 0
	for _, seg := range strings.Split(pattern, ".") {
		if seg != wildcardToken {
			specific++
		}
	}

	domainSegments := len(strings.Split(domain, "."))
	if domainSegments == 0 {
		return baseConfidence
	}

	ratio := float64(specific) / float64(domainSegments)
	confidence := int(math.Round(baseConfidence + specificityWeight*ratio))
	if confidence > ExactMatchConfidence {
		confidence = ExactMatchConfidence
	}
	return confidence
}
