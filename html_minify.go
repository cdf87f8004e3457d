package html2rsx

import (
	"fmt"
	"sync"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

var (
	minifier *minify.M
	once     sync.Once
)

// getMinifier returns the shared HTML minifier. Only insignificant
// whitespace is dropped: end tags, document tags, quotes, default
// attribute values and comments are all kept so the tree is unchanged.
func getMinifier() *minify.M {
	once.Do(func() {
		minifier = minify.New()
		minifier.Add("text/html", &html.Minifier{
			KeepComments:        true,
			KeepDefaultAttrVals: true,
			KeepDocumentTags:    true,
			KeepEndTags:         true,
			KeepQuotes:          true,
		})
	})
	return minifier
}

// Minify collapses the whitespace of an HTML document. Indented markup
// otherwise yields a text node for every run of whitespace between tags.
func Minify(input string) (string, error) {
	out, err := getMinifier().String("text/html", input)
	if err != nil {
		return "", fmt.Errorf("minify html: %w", err)
	}
	return out, nil
}
