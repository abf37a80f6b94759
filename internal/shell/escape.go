package shell

import "strings"

// wordMeta are the characters that trigger word splitting or expansion in
// bash and zsh and therefore need escaping in an emitted candidate.
const wordMeta = " \t\n\"'`$&|;<>()[]{}*?!~#\\"

// EscapeWord renders a candidate as a single shell word. Names made of
// ordinary characters pass through untouched so the inserted text matches
// the catalog casing exactly.
func EscapeWord(word string) string {
	if word != "" && !strings.ContainsAny(word, wordMeta) {
		return word
	}
	var b strings.Builder
	for _, r := range word {
		if strings.ContainsRune(wordMeta, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
