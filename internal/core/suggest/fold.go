package suggest

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// pool of fresh transformer chains, diacritic folding via NFD plus
// combining-mark removal then case folding
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			cases.Fold(),
		)
	},
}

// foldKey lowers, strips Turkish diacritics and drops everything that
// is not a letter or digit. Used for placeholder checks and identity keys
func foldKey(s string) string {
	if s == "" {
		return ""
	}
	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	var b strings.Builder
	b.Grow(len(ns))
	for _, r := range ns {
		// dotless i survives NFD, fold it by hand
		if r == 'ı' {
			r = 'i'
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// placeholders after foldKey
var placeholderKeys = map[string]bool{
	"aciklama":    true,
	"description": true,
	"desc":        true,
	"icerik":      true,
	"content":     true,
	"metin":       true,
}

// isPlaceholder reports whether s is empty or one of the known filler
// tokens the model emits instead of a real description
func isPlaceholder(s string) bool {
	k := foldKey(s)
	return k == "" || placeholderKeys[k]
}
