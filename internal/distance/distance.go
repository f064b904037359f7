// Package distance implements the pure hostname-distance functions consumed
// by the priority-ordered balancing policy. Both functions compare hosts
// after stripping any trailing ":port" suffix and are total: they never
// fail, returning 0 for identical (post-strip) inputs.
package distance

import "github.com/agext/levenshtein"

// stripPort removes a trailing ":port" from a host:port string, leaving
// bare hostnames untouched. It does not attempt full URL/IPv6 parsing: the
// balancer's endpoint addresses are always plain "host:port" strings.
func stripPort(hostport string) string {
	for i := len(hostport) - 1; i >= 0; i-- {
		switch hostport[i] {
		case ':':
			return hostport[:i]
		case ']', '/':
			// IPv6 literal or scheme separator encountered before a lone
			// colon; bail out and return the input unmodified.
			return hostport
		}
	}
	return hostport
}

// PrefixDistance ranks remote by how much of a common prefix it shares with
// local: the number of trailing characters, starting at the first point of
// disagreement, that remain unmatched. Identical hosts score 0; completely
// dissimilar hosts score max(len(local), len(remote)). Lower scores are
// preferred by the priority policy. Among remotes of equal length, a longer
// shared prefix produces a lower distance; across remotes of different
// lengths, the length difference also counts, so a longer remote can score
// higher despite sharing a longer prefix.
func PrefixDistance(local, remote string) int {
	a := stripPort(local)
	b := stripPort(remote)

	common := 0
	limit := len(a)
	if len(b) < limit {
		limit = len(b)
	}
	for common < limit && a[common] == b[common] {
		common++
	}

	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return maxLen - common
}

// Levenshtein returns the edit distance between local and remote after
// stripping ports, using the standard (case-sensitive, unit-cost) metric.
func Levenshtein(local, remote string) int {
	a := stripPort(local)
	b := stripPort(remote)
	return levenshtein.Distance(a, b, nil)
}
