package hotkeys

import "strings"

// DefaultAlphabet is the priority order for shortcut labels, most ergonomic
// keys first. Navigation keys (h j k l g q), the search keys (/ ? _), digits,
// and the yank/open command keys (y o) are never part of it so a label press
// can never shadow a command.
var DefaultAlphabet = []rune("asdfertzxcvbnmuiwp")

// reserved holds keys that Sanitize strips from user-supplied alphabets.
var reserved = map[rune]bool{
	'h': true, 'j': true, 'k': true, 'l': true,
	'g': true, 'G': true, 'q': true,
	'y': true, 'o': true,
	'/': true, '?': true, '_': true, ' ': true,
	'0': true, '1': true, '2': true, '3': true, '4': true,
	'5': true, '6': true, '7': true, '8': true, '9': true,
}

// Sanitize turns a user-configured key string into a usable alphabet:
// reserved keys and duplicates are dropped; an empty result falls back to
// DefaultAlphabet.
func Sanitize(keys string) []rune {
	seen := make(map[rune]bool)
	alphabet := make([]rune, 0, len(keys))
	for _, r := range keys {
		if reserved[r] || seen[r] {
			continue
		}
		seen[r] = true
		alphabet = append(alphabet, r)
	}
	if len(alphabet) == 0 {
		return DefaultAlphabet
	}
	return alphabet
}

// Assign returns up to n pairwise-distinct labels for the currently visible
// rows: single-key labels in priority order first, then two-key combinations
// once the single-key space is exhausted. The label set is prefix-free — no
// label is a prefix of another — because the keys used as two-key prefixes
// are taken from the low-priority end of the alphabet and never handed out
// as singles. Labels carry no stability guarantee; callers recompute the
// whole assignment whenever the visible set changes.
func Assign(n int, alphabet []rune) []string {
	if n <= 0 {
		return nil
	}
	if len(alphabet) == 0 {
		alphabet = DefaultAlphabet
	}
	total := len(alphabet)

	if n <= total {
		labels := make([]string, n)
		for i := 0; i < n; i++ {
			labels[i] = string(alphabet[i])
		}
		return labels
	}

	// Reserve just enough low-priority keys as two-key prefixes to cover n
	prefixes := 1
	for prefixes < total && (total-prefixes)+prefixes*total < n {
		prefixes++
	}
	singles := total - prefixes

	labels := make([]string, 0, n)
	for i := 0; i < singles && len(labels) < n; i++ {
		labels = append(labels, string(alphabet[i]))
	}
	for i := 0; i < prefixes && len(labels) < n; i++ {
		prefix := alphabet[singles+i]
		for j := 0; j < total && len(labels) < n; j++ {
			labels = append(labels, string(prefix)+string(alphabet[j]))
		}
	}
	// More visible rows than the alphabet can cover leaves the tail
	// unlabeled; those rows stay reachable with cursor keys.
	return labels
}

// Match resolves a buffered key sequence against the current labels. It
// returns the index of the exactly matching label, or -1 plus whether seq is
// a proper prefix of at least one label (the caller keeps buffering while
// that holds).
func Match(labels []string, seq string) (int, bool) {
	isPrefix := false
	for i, label := range labels {
		if label == seq {
			return i, false
		}
		if len(label) > len(seq) && strings.HasPrefix(label, seq) {
			isPrefix = true
		}
	}
	return -1, isPrefix
}
