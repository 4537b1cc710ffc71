package dedup

import (
	"crypto/sha1"
	"encoding/hex"
	"math/rand"

	"autoblog/internal/feed"
	"autoblog/internal/metrics"
)

// fingerprintPrefix bounds how much of a text contributes to its
// fingerprint. Articles that agree on this prefix are treated as the same
// story even when trailing boilerplate differs.
const fingerprintPrefix = 2000

// Fingerprint returns a stable digest over the first 2000 runes of text.
// It is an equality proxy within one fetch batch, not a security hash.
func Fingerprint(text string) string {
	runes := []rune(text)
	if len(runes) > fingerprintPrefix {
		text = string(runes[:fingerprintPrefix])
	}
	sum := sha1.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Dedup removes candidates whose fingerprint was already seen (first
// occurrence wins) and shuffles the survivors with the supplied source.
// The random source is injected so tests can pin the ordering.
func Dedup(rng *rand.Rand, items []feed.Candidate) []feed.Candidate {
	seen := make(map[string]struct{}, len(items))
	out := make([]feed.Candidate, 0, len(items))

	for _, it := range items {
		fp := Fingerprint(it.Text)
		if _, dup := seen[fp]; dup {
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}
		seen[fp] = struct{}{}
		out = append(out, it)
	}

	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
