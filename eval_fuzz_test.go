//go:build go1.18
// +build go1.18

package calconsteroids_test

import (
	"math/big"
	"testing"

	"github.com/Nater0214/calconsteroids"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("2x!")
	f.Add("1/0")
	f.Add(`x \cdot 0.5`)
	f.Fuzz(func(t *testing.T, s string) {
		calconsteroids.EvalString(s, calconsteroids.SetVar("x", new(big.Float)))
	})
}
