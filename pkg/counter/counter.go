// pkg/counter/counter.go
package counter

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/NivBraz/baconipsum/internal/models"
)

// Count returns the word and character totals for a response body.
// Words are runs of non-whitespace; characters are Unicode code points of
// the untrimmed text.
func Count(body models.ResponseBody) models.CountResult {
	switch b := body.(type) {
	case models.PlainText:
		return countText(string(b))
	case models.JSONStringArray:
		var total models.CountResult
		for _, s := range b {
			c := countText(s)
			total.Words += c.Words
			total.Characters += c.Characters
		}
		return total
	case models.HTMLFragment:
		text, err := ExtractText(string(b))
		if err != nil {
			// Reading from a strings.Reader cannot fail; count the raw markup if it ever does.
			text = string(b)
		}
		return countText(text)
	}
	return models.CountResult{}
}

// CountWords returns the number of whitespace-delimited tokens in s.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// CountCharacters returns the number of code points in s.
func CountCharacters(s string) int {
	return utf8.RuneCountInString(s)
}

func countText(s string) models.CountResult {
	return models.CountResult{
		Words:      CountWords(s),
		Characters: CountCharacters(s),
	}
}

// ExtractText strips all markup from an HTML fragment and returns the
// concatenated text nodes. Whitespace between elements is kept as is, apart
// from the HTML5 tokenizer's own rewrites: CRLF and lone CR become LF, and a
// newline directly after <pre>, <listing> or <textarea> is dropped.
func ExtractText(fragment string) (string, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return goquery.NewDocumentFromNode(root).Text(), nil
}
