package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// skippedTags hold text that is never meant to be read.
var skippedTags = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"template": {},
}

// PlainText flattens an HTML fragment to one line of text. Every text node under
// the elements matched by selector becomes a segment; segments are whitespace
// collapsed and joined with a single space. matched is false when the selector
// finds nothing, in which case text is "".
func PlainText(fragment, selector string) (text string, matched bool, err error) {
	if selector == "" {
		selector = "body"
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", false, fmt.Errorf("failed to parse extracted content: %w", err)
	}

	roots := outermost(doc.Find(selector).Nodes)
	if len(roots) == 0 {
		return "", false, nil
	}

	var segments []string
	for _, root := range roots {
		segments = collectText(root, segments)
	}
	return strings.Join(segments, " "), true, nil
}

// outermost drops nodes that sit inside another node of the same set, so
// nested matches are not read twice. Document order is kept.
func outermost(nodes []*html.Node) []*html.Node {
	if len(nodes) < 2 {
		return nodes
	}
	set := make(map[*html.Node]struct{}, len(nodes))
	for _, n := range nodes {
		set[n] = struct{}{}
	}
	out := make([]*html.Node, 0, len(nodes))
	for _, n := range nodes {
		nested := false
		for p := n.Parent; p != nil; p = p.Parent {
			if _, ok := set[p]; ok {
				nested = true
				break
			}
		}
		if !nested {
			out = append(out, n)
		}
	}
	return out
}

func collectText(n *html.Node, segments []string) []string {
	switch n.Type {
	case html.TextNode:
		if seg := normalizeText(n.Data); seg != "" {
			segments = append(segments, seg)
		}
		return segments
	case html.ElementNode:
		if _, skip := skippedTags[strings.ToLower(n.Data)]; skip {
			return segments
		}
	case html.CommentNode:
		return segments
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		segments = collectText(c, segments)
	}
	return segments
}
