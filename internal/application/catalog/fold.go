package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer décompose (NFD), retire les marques diacritiques puis
// recompose (NFC). "Caméra" devient "Camera".
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldName normalise un nom de produit pour la recherche : accents repliés,
// casse abaissée. La même fonction alimente la colonne normalisée à l'écriture
// et le motif de recherche à la lecture.
func FoldName(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		// Entrée non normalisable, on retombe sur la casse abaissée seule.
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}
