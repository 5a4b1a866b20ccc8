package paladin

import "strings"

// negativeWords marks a prompt as hostile when any of them appears as a
// substring of the lowercased text. Deliberately coarse; the anger
// healer itself decides what to rewrite.
var negativeWords = []string{
	"stupid", "dumb", "idiotic", "garbage", "trash",
	"terrible", "horrible", "awful", "broken", "useless",
	"crap", "sucks", "hate", "ridiculous", "insane", "moronic",
}

// looksHostile reports whether a prompt reads as frustrated or hostile
func looksHostile(prompt string) bool {
	lowered := strings.ToLower(prompt)
	for _, word := range negativeWords {
		if strings.Contains(lowered, word) {
			return true
		}
	}

	return false
}
