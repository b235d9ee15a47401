// Package storage provides access to annotated pages used to evaluate
// field classification accuracy.
package storage

// AnnotationSchema holds the field type names and their mappings.
type AnnotationSchema struct {
	Types       map[string]string // full_name -> short_name
	TypesInv    map[string]string // short_name -> full_name
	NAValue     string
	SkipValue   string
	SimplifyMap map[string]string
}

// Short maps a full field type name to its short form, passing through
// names the schema does not know.
func (s *AnnotationSchema) Short(full string) string {
	if short, ok := s.Types[full]; ok {
		return short
	}
	return full
}

// FormAnnotation represents a single annotated form.
type FormAnnotation struct {
	FormHTML       string            // outer HTML of the <form> element
	URL            string            // page the form was collected from
	PageLanguage   string            // declared language of the page
	FormIndex      int               // index of the form on the page
	FieldTypes     map[string]string // field name -> short type
	FieldTypesFull map[string]string // field name -> full type
	Schema         *AnnotationSchema

	// Computed
	FieldsAnnotated bool
}
