package html

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const maxTextChars = 2000

var tagPattern = regexp.MustCompile(`</?([A-Za-z][A-Za-z0-9]*)\b[^<>]*>`)

// PlainText strips markup and entities from a provider snippet and
// collapses whitespace. Bracketed words that are not HTML elements,
// like "Smith <Jr> wins", are kept as written.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapse(s)
	}
	if !looksLikeMarkup(s) {
		return collapse(nethtml.UnescapeString(s))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapse(nethtml.UnescapeString(s))
	}
	doc.Find("script, style").Remove()

	return collapse(doc.Text())
}

// looksLikeMarkup reports whether s contains a tag naming a known HTML element.
func looksLikeMarkup(s string) bool {
	for _, m := range tagPattern.FindAllStringSubmatch(s, -1) {
		if isElement(strings.ToLower(m[1])) {
			return true
		}
	}
	return false
}

func isElement(name string) bool {
	a := atom.Lookup([]byte(name))
	if a == 0 {
		return false
	}
	// the atom table also carries attribute names
	_, ok := elements[a]
	return ok
}

var elements = map[atom.Atom]struct{}{
	atom.A: {}, atom.Abbr: {}, atom.B: {}, atom.Br: {}, atom.Blockquote: {},
	atom.Body: {}, atom.Cite: {}, atom.Code: {}, atom.Del: {}, atom.Div: {},
	atom.Em: {}, atom.Figcaption: {}, atom.Figure: {}, atom.Font: {},
	atom.H1: {}, atom.H2: {}, atom.H3: {}, atom.H4: {}, atom.H5: {}, atom.H6: {},
	atom.Head: {}, atom.Hr: {}, atom.Html: {}, atom.I: {}, atom.Iframe: {},
	atom.Img: {}, atom.Ins: {}, atom.Li: {}, atom.Mark: {}, atom.Ol: {},
	atom.P: {}, atom.Pre: {}, atom.Q: {}, atom.S: {}, atom.Script: {},
	atom.Small: {}, atom.Span: {}, atom.Strong: {}, atom.Style: {},
	atom.Sub: {}, atom.Sup: {}, atom.Table: {}, atom.Td: {}, atom.Th: {},
	atom.Tr: {}, atom.U: {}, atom.Ul: {},
}
