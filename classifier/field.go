package classifier

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/formsense/formsense/internal/htmlutil"
	"github.com/formsense/formsense/internal/textutil"
)

// Field holds the textual attributes of one form control. Name keeps
// the raw attribute value so candidates key back to the document; the
// other texts are normalized for matching.
type Field struct {
	Name        string
	ID          string
	Label       string
	Placeholder string
	Title       string
	Type        string // control type: "text", "tel", "select-one", ...
	Tag         string
}

// FieldsFromForm extracts the named, fillable controls of a form in
// document order. A field with no <label> element gets the loose text
// preceding it as an inferred label.
func FieldsFromForm(form *goquery.Selection) []Field {
	elems := htmlutil.GetNamedFields(form)
	if len(elems) == 0 {
		return nil
	}

	textAround := htmlutil.GetTextAroundElems(form, elems)

	fields := make([]Field, len(elems))
	for i, elem := range elems {
		name, _ := elem.Attr("name")
		f := Field{
			Name:        name,
			ID:          normalizeAttr(elem, "id"),
			Placeholder: normalizeAttr(elem, "placeholder"),
			Title:       normalizeAttr(elem, "title"),
			Type:        htmlutil.ControlType(elem),
			Tag:         goquery.NodeName(elem),
		}
		if label := htmlutil.FindLabel(form, elem); label != nil {
			f.Label = textutil.Normalize(label.Text())
		} else {
			f.Label = textutil.Normalize(textAround.Before[elem])
		}
		fields[i] = f
	}
	return fields
}

// labelText is the text a label-attribute pattern is matched against.
func (f *Field) labelText() string {
	return join(f.Label, f.Placeholder, f.Title)
}

// nameText is the text a name-attribute pattern is matched against.
func (f *Field) nameText() string {
	return textutil.Normalize(join(f.Name, f.ID))
}

func join(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

func normalizeAttr(elem *goquery.Selection, attr string) string {
	val, _ := elem.Attr(attr)
	return textutil.Normalize(val)
}
