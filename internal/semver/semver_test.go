package semver

import (
	"reflect"
	"testing"
)

func TestSortDesc(t *testing.T) {
	vs := []string{"1.0.0", "not-a-version", "2.0.0", "1.2.0", "also-bad"}
	SortDesc(vs)
	want := []string{"2.0.0", "1.2.0", "1.0.0", "also-bad", "not-a-version"}
	if !reflect.DeepEqual(vs, want) {
		t.Fatalf("SortDesc = %v, want %v", vs, want)
	}
}

func TestResolve(t *testing.T) {
	cached := []string{"1.0.0", "1.2.0", "2.0.0"}

	cases := []struct {
		constraint string
		want       string
		ok         bool
	}{
		{"", "2.0.0", true},
		{"^1.0.0", "1.2.0", true},
		{"2.1.0", "", false}, // exact, not cached
		{"1.2.0", "1.2.0", true},
		{"~1.0.0", "1.0.0", true},
		{">=1.2.0", "2.0.0", true},
		{">=1.0.0 <2.0.0", "1.2.0", true},
		{">2.0.0", "", false},
		{"<1.2.0", "1.0.0", true},
		{"^3.0.0", "", false},
	}
	for _, c := range cases {
		got, ok := Resolve(cached, c.constraint)
		if got != c.want || ok != c.ok {
			t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", c.constraint, got, ok, c.want, c.ok)
		}
	}
}

func TestResolveOnlyUnparsable(t *testing.T) {
	if v, ok := Resolve([]string{"garbage", "more-garbage"}, ""); ok {
		t.Fatalf("expected no resolution, got %q", v)
	}
}

func TestMatchesCaretZeroVersions(t *testing.T) {
	cases := []struct {
		version    string
		constraint string
		want       bool
	}{
		{"0.2.5", "^0.2.3", true},
		{"0.3.0", "^0.2.3", false},
		{"0.0.3", "^0.0.3", true},
		{"0.0.4", "^0.0.3", false},
		{"1.9.9", "^1.2.3", true},
		{"2.0.0", "^1.2.3", false},
		{"1.2.2", "^1.2.3", false},
	}
	for _, c := range cases {
		if got := Matches(c.version, c.constraint); got != c.want {
			t.Errorf("Matches(%q, %q) = %v, want %v", c.version, c.constraint, got, c.want)
		}
	}
}

func TestMatchesTilde(t *testing.T) {
	if !Matches("1.0.5", "~1.0.0") {
		t.Fatal("1.0.5 should satisfy ~1.0.0")
	}
	if Matches("1.1.0", "~1.0.0") {
		t.Fatal("1.1.0 should not satisfy ~1.0.0")
	}
}

func TestIsRange(t *testing.T) {
	for _, c := range []struct {
		in   string
		want bool
	}{
		{"^1.0.0", true},
		{"~1.0.0", true},
		{">=1.0.0", true},
		{">=1.0.0 <2.0.0", true},
		{"1.0.0", false},
		{"v1.0.0", false},
	} {
		if got := IsRange(c.in); got != c.want {
			t.Errorf("IsRange(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestCompareWithVPrefix(t *testing.T) {
	if Compare("v1.0.0", "1.0.0") == 0 {
		t.Fatal("equal versions with different spellings need a deterministic order")
	}
	if Compare("1.0.0", "1.0.0") != 0 {
		t.Fatal("identical strings must compare equal")
	}
}
