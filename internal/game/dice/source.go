package dice

import (
	"crypto/rand"
	"fmt"
	"math/big"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"
)

// Source names accepted by SourceByName.
const (
	SourceCrypto  = "crypto"
	SourceToolkit = "toolkit"
)

// cryptoSource implements Source using crypto/rand.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: Every value returned by Intn is uniformly distributed in [0, n).
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics if n <= 0 or if crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// toolkitSource adapts an rpg-toolkit Roller, which yields 1..size, to Source.
type toolkitSource struct {
	roller toolkitdice.Roller
}

// NewToolkitSource returns a Source that draws from an rpg-toolkit dice roller.
//
// Precondition: roller must be non-nil.
func NewToolkitSource(roller toolkitdice.Roller) Source {
	return &toolkitSource{roller: roller}
}

// Intn returns roller.Roll(n) - 1.
//
// Precondition: n > 0. Panics if n <= 0, if the roller fails, or if it
// returns a value outside 1..n.
func (s *toolkitSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	v, err := s.roller.Roll(n)
	if err != nil {
		panic("dice: toolkit roller failure: " + err.Error())
	}
	if v < 1 || v > n {
		panic(fmt.Sprintf("dice: toolkit roller returned %d for d%d", v, n))
	}
	return v - 1
}

// SourceByName returns the Source registered under name.
//
// Postcondition: Returns a Source, or an error for an unknown name.
func SourceByName(name string) (Source, error) {
	switch name {
	case SourceCrypto:
		return NewCryptoSource(), nil
	case SourceToolkit:
		return NewToolkitSource(toolkitdice.DefaultRoller), nil
	}
	return nil, fmt.Errorf("dice: unknown source %q", name)
}
