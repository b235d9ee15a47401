// Package htmlutil provides HTML form and field extraction utilities.
package htmlutil

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LoadHTML parses HTML bytes into a goquery Document.
func LoadHTML(r io.Reader) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(r)
}

// LoadHTMLString parses HTML string into a goquery Document.
func LoadHTMLString(htmlStr string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
}

// GetForms returns all <form> elements in the document.
func GetForms(doc *goquery.Document) []*goquery.Selection {
	var forms []*goquery.Selection
	doc.Find("form").Each(func(_ int, s *goquery.Selection) {
		forms = append(forms, s)
	})
	return forms
}

// GetVisibleFields returns fillable form controls (textarea, select,
// non-hidden non-submit inputs).
func GetVisibleFields(form *goquery.Selection) []*goquery.Selection {
	var fields []*goquery.Selection
	form.Find("textarea, select, input").Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "input" {
			tp, exists := s.Attr("type")
			if exists {
				switch strings.ToLower(tp) {
				case "hidden", "submit", "button", "image", "reset":
					return
				}
			}
		}
		fields = append(fields, s)
	})
	return fields
}

// GetNamedFields returns visible fields with a non-empty name attribute.
func GetNamedFields(form *goquery.Selection) []*goquery.Selection {
	visible := GetVisibleFields(form)
	var result []*goquery.Selection
	for _, f := range visible {
		if name, _ := f.Attr("name"); name != "" {
			result = append(result, f)
		}
	}
	return result
}

// ControlType returns the control type of a field element: the lowercased
// input type for <input> ("text" when absent), "select-one" for <select>
// and "textarea" for <textarea>.
func ControlType(elem *goquery.Selection) string {
	switch goquery.NodeName(elem) {
	case "select":
		return "select-one"
	case "textarea":
		return "textarea"
	case "input":
		tp, exists := elem.Attr("type")
		if !exists || tp == "" {
			return "text"
		}
		return strings.ToLower(tp)
	}
	return ""
}

// FindLabel finds the <label> element associated with a form field.
// It checks for label[for=id] or ancestor <label>.
func FindLabel(form *goquery.Selection, elem *goquery.Selection) *goquery.Selection {
	// Try matching by for=id
	if id, exists := elem.Attr("id"); exists && id != "" {
		label := form.Find("label[for=\"" + id + "\"]")
		if label.Length() > 0 {
			return label.First()
		}
	}

	// Try ancestor <label>
	parent := elem.Closest("label")
	if parent.Length() > 0 {
		return parent
	}

	return nil
}
