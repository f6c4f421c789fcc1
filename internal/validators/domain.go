// Package validators provides validation functions for lookup request inputs.
package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// maxDomainLength is the maximum total length of a domain name
	maxDomainLength = 253

	// maxLabelLength is the maximum length of a single DNS label
	maxLabelLength = 63
)

// ErrInvalidDomain is returned for any syntactically invalid domain.
var ErrInvalidDomain = errors.New("invalid domain")

// Label pattern: must start and end with alphanumeric, can contain hyphens in the middle
var labelPattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?$`)

// ValidateDomain validates a DNS domain name for the lookup endpoint.
// Returns the validated domain (trimmed, lowercased) and an error if validation fails.
//
// Format requirements:
// - Total length: 1-253 characters
// - Dot-separated labels of 1-63 characters each
// - Labels contain letters, digits and hyphens, and must start and end with a letter or digit
//
// Examples of valid domains:
//   - github.com
//   - acme.atlassian.net
//   - localhost
//
// Examples of invalid domains:
//   - .github.com (empty leading label)
//   - -bad.example (label starts with hyphen)
//   - exa_mple.com (underscore not allowed)
func ValidateDomain(domain string) (string, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))

	if domain == "" {
		return "", fmt.Errorf("%w: domain cannot be empty", ErrInvalidDomain)
	}

	if len(domain) > maxDomainLength {
		return "", fmt.Errorf("%w: domain exceeds maximum length of %d characters", ErrInvalidDomain, maxDomainLength)
	}

	// A single trailing dot denotes the DNS root and is not accepted here;
	// it would produce an empty final label below.
	for _, label := range strings.Split(domain, ".") {
		if label == "" {
			return "", fmt.Errorf("%w: domain contains an empty label", ErrInvalidDomain)
		}
		if len(label) > maxLabelLength {
			return "", fmt.Errorf("%w: label '%s' exceeds maximum length of %d characters", ErrInvalidDomain, label, maxLabelLength)
		}
		if !labelPattern.MatchString(label) {
			return "", fmt.Errorf(
				"%w: label '%s' must start and end with a letter or digit, "+
					"and may contain hyphens in the middle",
				ErrInvalidDomain, label,
			)
		}
	}

	return domain, nil
}

// IsValidDomain checks if a domain name is syntactically valid.
// This is a convenience wrapper around ValidateDomain for boolean checks.
func IsValidDomain(domain string) bool {
	_, err := ValidateDomain(domain)
	return err == nil
}
