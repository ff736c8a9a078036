//go:build go1.18
// +build go1.18

package calconsteroids_test

import (
	"strings"
	"testing"

	"github.com/Nater0214/calconsteroids"
)

func FuzzParse(f *testing.F) {
	f.Add("2xy")
	f.Add(`a+b \cdot c`)
	f.Add("x^-y!")
	f.Add("(x_1)")
	f.Fuzz(func(t *testing.T, s string) {
		a, err := calconsteroids.Parse(strings.NewReader(s))
		if err != nil {
			return
		}
		// The canonical form must reparse to the same tree.
		c := a.String()
		b, err := calconsteroids.ParseString(c)
		if err != nil {
			t.Fatalf("%q canonicalizes to %q which fails to parse: %v", s, c, err)
		}
		if d := b.String(); d != c {
			t.Errorf("%q canonicalizes to %q which reparses to %q", s, c, d)
		}
	})
}
