package markdown

import "math/rand"

// AsciiChoice is one entry in the banner pool. Weight controls how often the
// art is picked relative to the rest of the pool; negative weights count as 0.
type AsciiChoice struct {
	Art    string
	Weight float64
}

// DefaultPool is the built-in banner pool. Order matters: ties and degenerate
// weight pools fall back to the first entry, float edge cases to the last.
var DefaultPool = []AsciiChoice{
	{
		Art: `    ____                  _
   |  _ \ _ __ _____   __(_) _____      __
   | |_) | '__/ _ \ \ / /| |/ _ \ \ /\ / /
   |  __/| | |  __/\ V / | |  __/\ V  V /
   |_|   |_|  \___| \_/  |_|\___| \_/\_/`,
		Weight: 5,
	},
	{
		Art: `        /\
       /  \
      / /\ \      deployed
     / ____ \
    /_/    \_\`,
		Weight: 3,
	},
	{
		Art: `   .-.-.   .-.-.   .-.-.
  / / \ \ / / \ \ / / \ \
 '-'   '-'-'   '-'-'   '-'
      docs are live`,
		Weight: 2,
	},
	{
		Art: `    _________
   < shipped! >
    ---------
       \   ^__^
        \  (oo)\_______
           (__)\       )\/\
               ||----w |
               ||     ||`,
		Weight: 1,
	},
}

// firstContributionArt replaces the pool pick when the PR author is a first
// time contributor.
const firstContributionArt = `    __  ____           __
   / /_/ / /______  __/ /
  / __/ _  / __/ _ \/ _ \
  \__/_//_/\__/\___/_//_/  first contribution!`

// fnv32a hashes a seed string with 32-bit FNV-1a. The accumulator wraps in
// uint32 arithmetic, so identical seeds always produce identical hashes.
func fnv32a(seed string) uint32 {
	var hash uint32 = 2166136261
	for i := 0; i < len(seed); i++ {
		hash ^= uint32(seed[i])
		hash *= 16777619
	}
	return hash
}

// PickWeightedAscii selects one art from the pool proportionally to weight.
// A non-empty seed makes the draw deterministic; otherwise entropy is used
// (nil entropy falls back to math/rand).
func PickWeightedAscii(pool []AsciiChoice, seed string, entropy func() float64) string {
	var total float64
	for _, c := range pool {
		if c.Weight > 0 {
			total += c.Weight
		}
	}

	if total <= 0 {
		if len(pool) == 0 {
			return ""
		}
		return pool[0].Art
	}

	var r float64
	if seed != "" {
		r = float64(fnv32a(seed)) / 4294967296.0 * total
	} else {
		if entropy == nil {
			entropy = rand.Float64
		}
		r = entropy() * total
	}

	var cumulative float64
	for _, c := range pool {
		if c.Weight > 0 {
			cumulative += c.Weight
		}
		if r < cumulative {
			return c.Art
		}
	}

	// Float rounding left r at or past the total; keep the last entry.
	if len(pool) == 0 {
		return ""
	}
	return pool[len(pool)-1].Art
}
