// Package sessioncode generates speakable join codes for game sessions.
// Codes look like GROOVY-PLATTER-42: two words a host can read over a PA
// plus two digits to keep collisions rare across a single venue's night.
package sessioncode

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

var adjectives = []string{
	"GROOVY", "DUSTY", "SPINNING", "GOLDEN", "SMOKY",
	"VELVET", "ELECTRIC", "MELLOW", "CRACKLED", "STEREO",
	"ANALOG", "WARPED", "GLOSSY", "HEAVY", "BREEZY",
	"MIDNIGHT", "NEON", "RETRO", "SILKY", "THUMPING",
}

var nouns = []string{
	"PLATTER", "GROOVE", "NEEDLE", "SLEEVE", "SPINDLE",
	"CRATE", "TURNTABLE", "JUKEBOX", "VINYL", "STYLUS",
	"BSIDE", "DEADWAX", "LABEL", "PRESSING", "SPIRAL",
	"TONEARM", "DUSTCOVER", "FORTYFIVE", "ALBUM", "SINGLE",
}

// Generator produces session codes with its own rand source so tests can
// seed it deterministically.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator seeded from the wall clock.
func NewGenerator() *Generator {
	return &Generator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewGeneratorWithSeed returns a deterministic Generator for tests.
func NewGeneratorWithSeed(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate returns a code in the form ADJECTIVE-NOUN-NN.
func (g *Generator) Generate() string {
	adj := adjectives[g.rng.Intn(len(adjectives))]
	noun := nouns[g.rng.Intn(len(nouns))]
	return fmt.Sprintf("%s-%s-%02d", adj, noun, g.rng.Intn(100))
}

// Valid reports whether s has the shape of a generated code. It does not
// check that the words come from the active word lists, so codes minted by
// older builds keep working.
func Valid(s string) bool {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts[:2] {
		if p == "" {
			return false
		}
		for _, r := range p {
			if r < 'A' || r > 'Z' {
				return false
			}
		}
	}
	if len(parts[2]) != 2 {
		return false
	}
	for _, r := range parts[2] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
