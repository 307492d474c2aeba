// Package casefold resolves directory-name case conflicts across mods.
//
// Case-insensitive game engines treat "SKSE" and "skse" as the same
// directory; a case-sensitive filesystem does not. Every spelling seen
// anywhere across the active mods is bucketed under its lowercase form,
// and each bucket resolves to one canonical spelling applied uniformly
// to the merged tree. Filenames are never touched, only directory
// segments.
package casefold

import (
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// Variants maps a lowercased directory name to every original-case
// spelling observed for it
type Variants map[string]map[string]struct{}

// NewVariants returns an empty variant collection
func NewVariants() Variants {
	return make(Variants)
}

// Add records one observed spelling of a directory name
func (v Variants) Add(name string) {
	key := strings.ToLower(name)
	set, ok := v[key]
	if !ok {
		set = make(map[string]struct{})
		v[key] = set
	}
	set[name] = struct{}{}
}

// Conflicts returns the buckets holding more than one spelling
func (v Variants) Conflicts() map[string][]string {
	conflicts := make(map[string][]string)
	for key, set := range v {
		if len(set) < 2 {
			continue
		}
		conflicts[key] = sortedMembers(set)
	}
	return conflicts
}

// Canonical maps a lowercased directory name to its chosen spelling
type Canonical map[string]string

// Resolve chooses one canonical spelling per bucket: the variant with the
// most uppercase letters wins, ties resolved by the lexicographically
// greatest string. The result depends only on the variant sets, never on
// the order mods were scanned in.
func (v Variants) Resolve() Canonical {
	canonical := make(Canonical, len(v))
	for key, set := range v {
		canonical[key] = choose(set)
	}
	return canonical
}

// NormalizePath rewrites every directory segment of a relative path to
// its canonical spelling. The final segment is a filename and keeps its
// original case; some mods require exact filename casing. Segments with
// no bucket are kept unchanged.
func (c Canonical) NormalizePath(rel string) string {
	dir, file := filepath.Split(rel)
	if dir == "" {
		return rel
	}

	parts := strings.Split(strings.TrimRight(dir, string(filepath.Separator)), string(filepath.Separator))
	for i, part := range parts {
		if best, ok := c[strings.ToLower(part)]; ok {
			parts[i] = best
		}
	}
	parts = append(parts, file)
	return filepath.Join(parts...)
}

// CountUpper returns the number of uppercase letters in s
func CountUpper(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsUpper(r) {
			n++
		}
	}
	return n
}

// choose picks the winning spelling from one bucket
func choose(set map[string]struct{}) string {
	best := ""
	bestUpper := -1
	for variant := range set {
		upper := CountUpper(variant)
		if upper > bestUpper || (upper == bestUpper && variant > best) {
			best = variant
			bestUpper = upper
		}
	}
	return best
}

func sortedMembers(set map[string]struct{}) []string {
	members := make([]string, 0, len(set))
	for m := range set {
		members = append(members, m)
	}
	sort.Strings(members)
	return members
}
