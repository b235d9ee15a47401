package htmlutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/formsense/formsense/internal/textutil"
	"golang.org/x/net/html"
)

// TextAround holds text before and after each element.
type TextAround struct {
	Before map[*goquery.Selection]string
	After  map[*goquery.Selection]string
}

// GetTextAroundElems returns the loose text preceding and following each
// of the given elements inside root. Classification uses the preceding
// text as an inferred label for fields that have no <label> element.
func GetTextAroundElems(root *goquery.Selection, elems []*goquery.Selection) TextAround {
	result := TextAround{
		Before: make(map[*goquery.Selection]string, len(elems)),
		After:  make(map[*goquery.Selection]string, len(elems)),
	}

	if len(elems) == 0 {
		return result
	}

	nodeToSel := make(map[*html.Node]*goquery.Selection, len(elems))
	for _, sel := range elems {
		if sel.Length() > 0 {
			nodeToSel[sel.Get(0)] = sel
		}
	}

	// Walk the DOM accumulating text; hitting a target element flushes
	// the buffer as that element's "before" text.
	var buf []string
	var orderedElems []*goquery.Selection

	flushBuf := func() string {
		var parts []string
		for _, b := range buf {
			trimmed := strings.TrimSpace(b)
			if trimmed != "" {
				parts = append(parts, textutil.NormalizeWhitespaces(trimmed))
			}
		}
		buf = buf[:0]
		return strings.Join(parts, "  ")
	}

	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if sel, ok := nodeToSel[n]; ok {
			result.Before[sel] = flushBuf()
			orderedElems = append(orderedElems, sel)
			return
		}

		if n.Type == html.TextNode {
			buf = append(buf, n.Data)
			return
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}

	visit(root.Get(0))

	// after[elem_i] = before[elem_{i+1}]; the last element takes the
	// remaining buffer.
	for i := 0; i < len(orderedElems)-1; i++ {
		result.After[orderedElems[i]] = result.Before[orderedElems[i+1]]
	}
	if len(orderedElems) > 0 {
		result.After[orderedElems[len(orderedElems)-1]] = flushBuf()
	}

	return result
}
