package extract

import (
	"regexp"
	"strings"
)

// addressPattern matches the two address shapes that appear in header
// values in a single pass: bracket-delimited ("Name <user@domain>") and
// bare ("user@domain"). The bracketed alternative comes first so a
// bracketed address is consumed whole rather than re-matched bare.
var addressPattern = regexp.MustCompile(
	`<([^<>\s@]+@[^<>\s@]+)>|([A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,})`)

// ScanAddresses extracts every address from a raw header value, lowercased.
// Both shapes may coexist in one string; all valid matches are captured,
// not just the first. Unparseable input yields an empty result.
func ScanAddresses(value string) []string {
	if value == "" {
		return nil
	}

	var addrs []string
	for _, match := range addressPattern.FindAllStringSubmatch(value, -1) {
		addr := match[1]
		if addr == "" {
			addr = match[2]
		}
		if addr != "" {
			addrs = append(addrs, strings.ToLower(addr))
		}
	}
	return addrs
}

// addressSet accumulates lowercase addresses, deduplicated, preserving
// first-seen order.
type addressSet struct {
	seen  map[string]bool
	addrs []string
}

func newAddressSet() *addressSet {
	return &addressSet{seen: map[string]bool{}}
}

// addFrom scans one source string and merges every address found.
func (s *addressSet) addFrom(value string) {
	for _, addr := range ScanAddresses(value) {
		if !s.seen[addr] {
			s.seen[addr] = true
			s.addrs = append(s.addrs, addr)
		}
	}
}

func (s *addressSet) slice() []string {
	return s.addrs
}
