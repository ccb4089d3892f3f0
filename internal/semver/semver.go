// Package semver implements version ordering and constraint resolution for
// cached skill versions. Comparison is delegated to golang.org/x/mod/semver;
// this package adds the npm-style range operators (^, ~, >=, >, <, <=, and
// space-separated conjunctions) used in project configuration.
package semver

import (
	"sort"
	"strconv"
	"strings"

	modsemver "golang.org/x/mod/semver"
)

// canonical returns the "v"-prefixed form x/mod/semver expects, or "" when
// the input is not a valid semantic version.
func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !modsemver.IsValid(v) {
		return ""
	}
	return v
}

// IsValid reports whether v parses as a semantic version, with or without a
// leading "v".
func IsValid(v string) bool {
	return canonical(v) != ""
}

// Compare orders two version strings. Valid versions compare semantically;
// an unparsable version orders after every valid one; two unparsable
// versions fall back to a plain string comparison so the order stays
// deterministic.
func Compare(a, b string) int {
	ca, cb := canonical(a), canonical(b)
	switch {
	case ca != "" && cb != "":
		if c := modsemver.Compare(ca, cb); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	case ca != "":
		return 1
	case cb != "":
		return -1
	default:
		return strings.Compare(a, b)
	}
}

// SortDesc sorts versions in place, highest first, unparsable versions last.
func SortDesc(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		return Compare(versions[i], versions[j]) > 0
	})
}

// IsRange reports whether the constraint is a range rather than an exact
// version: it starts with a range operator or contains a space.
func IsRange(constraint string) bool {
	c := strings.TrimSpace(constraint)
	for _, p := range []string{"^", "~", ">=", ">", "<=", "<"} {
		if strings.HasPrefix(c, p) {
			return true
		}
	}
	return strings.Contains(c, " ")
}

// Resolve picks the version that satisfies the constraint out of the cached
// set. With no constraint it returns the highest valid version; with an
// exact constraint it requires an exact match; with a range it returns the
// highest cached version inside the range. The second return value is false
// when nothing satisfies.
func Resolve(cached []string, constraint string) (string, bool) {
	constraint = strings.TrimSpace(constraint)
	vs := make([]string, len(cached))
	copy(vs, cached)
	SortDesc(vs)

	switch {
	case constraint == "":
		for _, v := range vs {
			if IsValid(v) {
				return v, true
			}
		}
		return "", false

	case !IsRange(constraint):
		want := canonical(constraint)
		for _, v := range vs {
			if v == constraint {
				return v, true
			}
			if want != "" && canonical(v) == want {
				return v, true
			}
		}
		return "", false

	default:
		for _, v := range vs {
			if !IsValid(v) {
				continue
			}
			if Matches(v, constraint) {
				return v, true
			}
		}
		return "", false
	}
}

// Matches reports whether version satisfies the range constraint. A
// space-separated constraint is a conjunction: every clause must hold.
func Matches(version, constraint string) bool {
	cv := canonical(version)
	if cv == "" {
		return false
	}
	for _, clause := range strings.Fields(constraint) {
		if !matchesClause(cv, clause) {
			return false
		}
	}
	return true
}

func matchesClause(cv, clause string) bool {
	switch {
	case strings.HasPrefix(clause, ">="):
		return compareTo(cv, clause[2:]) >= 0
	case strings.HasPrefix(clause, "<="):
		return compareTo(cv, clause[2:]) <= 0
	case strings.HasPrefix(clause, ">"):
		return compareTo(cv, clause[1:]) > 0
	case strings.HasPrefix(clause, "<"):
		return compareTo(cv, clause[1:]) < 0
	case strings.HasPrefix(clause, "^"):
		return matchesCaret(cv, clause[1:])
	case strings.HasPrefix(clause, "~"):
		return matchesTilde(cv, clause[1:])
	default:
		bound := canonical(clause)
		return bound != "" && modsemver.Compare(cv, bound) == 0
	}
}

// compareTo compares cv against a clause bound; an unparsable bound never
// matches, signaled with a sentinel that fails every comparison.
func compareTo(cv, bound string) int {
	cb := canonical(bound)
	if cb == "" {
		return -2
	}
	return modsemver.Compare(cv, cb)
}

// matchesCaret implements ^x.y.z: compatible within the leftmost non-zero
// component. ^1.2.3 allows <2.0.0, ^0.2.3 allows <0.3.0, ^0.0.3 allows
// <0.0.4.
func matchesCaret(cv, base string) bool {
	cb := canonical(base)
	if cb == "" {
		return false
	}
	if modsemver.Compare(cv, cb) < 0 {
		return false
	}
	major, minor, patch, ok := coreParts(cb)
	if !ok {
		return false
	}
	var upper string
	switch {
	case major > 0:
		upper = "v" + strconv.Itoa(major+1) + ".0.0-0"
	case minor > 0:
		upper = "v0." + strconv.Itoa(minor+1) + ".0-0"
	default:
		upper = "v0.0." + strconv.Itoa(patch+1) + "-0"
	}
	return modsemver.Compare(cv, upper) < 0
}

// matchesTilde implements ~x.y.z: patch-level changes only (>=x.y.z,
// <x.(y+1).0).
func matchesTilde(cv, base string) bool {
	cb := canonical(base)
	if cb == "" {
		return false
	}
	if modsemver.Compare(cv, cb) < 0 {
		return false
	}
	major, minor, _, ok := coreParts(cb)
	if !ok {
		return false
	}
	upper := "v" + strconv.Itoa(major) + "." + strconv.Itoa(minor+1) + ".0-0"
	return modsemver.Compare(cv, upper) < 0
}

// coreParts extracts the numeric major.minor.patch from a canonical version.
func coreParts(cv string) (major, minor, patch int, ok bool) {
	core := modsemver.Canonical(cv)
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	core = strings.TrimPrefix(core, "v")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	var err error
	if major, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, false
	}
	if minor, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, 0, false
	}
	if patch, err = strconv.Atoi(parts[2]); err != nil {
		return 0, 0, 0, false
	}
	return major, minor, patch, true
}
