package classifier

import (
	"testing"

	"github.com/formsense/formsense/internal/htmlutil"
	"github.com/formsense/formsense/pattern"
)

func newTestClassifier(t *testing.T, mode pattern.LookupMode) *Classifier {
	t.Helper()
	p := pattern.NewProvider(mode)
	rules, version := pattern.DefaultRuleSet()
	p.SetPatterns(rules, version, false)
	return New(p)
}

func candidateTypes(cands []Candidate) map[string]string {
	out := make(map[string]string, len(cands))
	for _, c := range cands {
		out[c.FieldName] = c.Type
	}
	return out
}

func classifyHTML(t *testing.T, c *Classifier, html, lang string) []Candidate {
	t.Helper()
	doc, err := htmlutil.LoadHTMLString(html)
	if err != nil {
		t.Fatal(err)
	}
	forms := htmlutil.GetForms(doc)
	if len(forms) != 1 {
		t.Fatalf("expected 1 form, got %d", len(forms))
	}
	return c.ClassifyForm(forms[0], lang)
}

func TestClassifyCheckoutForm(t *testing.T) {
	html := `<form>
  <label for="n">Full name</label><input type="text" name="name" id="n"/>
  <label for="e">Email</label><input type="email" name="email" id="e"/>
  <label for="p">Phone number</label><input type="tel" name="phone" id="p"/>
  <label for="a1">Address</label><input type="text" name="address1" id="a1"/>
  <label for="a2">Apartment, suite, etc.</label><input type="text" name="address2" id="a2"/>
  <label for="ci">City</label><input type="text" name="city" id="ci"/>
  <label for="z">ZIP code</label><input type="text" name="zip" id="z"/>
  <label for="co">Country</label><select name="country" id="co"><option>US</option></select>
</form>`

	c := newTestClassifier(t, pattern.LanguageAgnostic)
	got := candidateTypes(classifyHTML(t, c, html, "en"))

	want := map[string]string{
		"name":     TypeNameFull,
		"email":    TypeEmail,
		"phone":    TypePhone,
		"address1": TypeAddressLine1,
		"address2": TypeAddressLine2,
		"city":     TypeCity,
		"zip":      TypeZip,
		"country":  TypeCountry,
	}
	for field, tp := range want {
		if got[field] != tp {
			t.Errorf("field %q classified as %q, want %q", field, got[field], tp)
		}
	}
	if len(got) != len(want) {
		t.Errorf("classified %d fields, want %d: %v", len(got), len(want), got)
	}
}

func TestClassifySplitName(t *testing.T) {
	html := `<form>
  <label for="f">First name</label><input type="text" name="fname" id="f"/>
  <label for="m">Middle initial</label><input type="text" name="mi" id="m"/>
  <label for="l">Last name</label><input type="text" name="lname" id="l"/>
</form>`

	c := newTestClassifier(t, pattern.LanguageAgnostic)
	got := candidateTypes(classifyHTML(t, c, html, "en"))

	want := map[string]string{
		"fname": TypeNameFirst,
		"mi":    TypeNameMiddle,
		"lname": TypeNameLast,
	}
	for field, tp := range want {
		if got[field] != tp {
			t.Errorf("field %q classified as %q, want %q", field, got[field], tp)
		}
	}
}

func TestClassifyFirstNameWithoutLastRewinds(t *testing.T) {
	// A lone first-name field is not committed as a name block; the
	// scanner must rewind so the next field is still classified.
	html := `<form>
  <label for="f">First name</label><input type="text" name="fname" id="f"/>
  <label for="e">Email</label><input type="email" name="email" id="e"/>
</form>`

	c := newTestClassifier(t, pattern.LanguageAgnostic)
	got := candidateTypes(classifyHTML(t, c, html, "en"))

	if _, ok := got["fname"]; ok {
		t.Errorf("lone first name committed as %q", got["fname"])
	}
	if got["email"] != TypeEmail {
		t.Errorf("email classified as %q, want %q", got["email"], TypeEmail)
	}
}

func TestClassifyInferredLabel(t *testing.T) {
	// No <label> elements; the text preceding each field serves as the label.
	html := `<form>
  Phone number <input type="text" name="f1"/>
  Postal code <input type="text" name="f2"/>
</form>`

	c := newTestClassifier(t, pattern.LanguageAgnostic)
	got := candidateTypes(classifyHTML(t, c, html, "en"))

	if got["f1"] != TypePhone {
		t.Errorf("f1 classified as %q, want %q", got["f1"], TypePhone)
	}
	if got["f2"] != TypeZip {
		t.Errorf("f2 classified as %q, want %q", got["f2"], TypeZip)
	}
}

func TestClassifyLanguageStrict(t *testing.T) {
	html := `<form>
  <label for="v">Vorname</label><input type="text" name="vorname" id="v"/>
  <label for="n">Nachname</label><input type="text" name="nachname" id="n"/>
</form>`

	strict := newTestClassifier(t, pattern.LanguageStrict)

	got := candidateTypes(classifyHTML(t, strict, html, "de"))
	if got["vorname"] != TypeNameFirst || got["nachname"] != TypeNameLast {
		t.Errorf("de lookup = %v", got)
	}

	// Same form, wrong language key: the strict provider serves no
	// patterns, so nothing is classified.
	if got := classifyHTML(t, strict, html, "sv"); len(got) != 0 {
		t.Errorf("sv lookup produced %v, want none", got)
	}
}

func TestClassifyUnmatchableControls(t *testing.T) {
	html := `<form>
  <label><input type="checkbox" name="subscribe"/> Email me offers</label>
  <textarea name="comments"></textarea>
</form>`

	c := newTestClassifier(t, pattern.LanguageAgnostic)
	if got := classifyHTML(t, c, html, "en"); len(got) != 0 {
		t.Errorf("classified %v, want none", got)
	}
}

func TestClassifyMinScore(t *testing.T) {
	html := `<form>
  <label for="e">Email</label><input type="email" name="email" id="e"/>
</form>`

	c := newTestClassifier(t, pattern.LanguageAgnostic)
	c.MinScore = 10
	if got := classifyHTML(t, c, html, "en"); len(got) != 0 {
		t.Errorf("threshold 10 still produced %v", got)
	}
}

func TestClassifyFieldsNoFields(t *testing.T) {
	c := newTestClassifier(t, pattern.LanguageAgnostic)
	if got := c.ClassifyFields(nil, "en"); len(got) != 0 {
		t.Errorf("ClassifyFields(nil) = %v", got)
	}
}

func TestCandidateScores(t *testing.T) {
	html := `<form>
  <label for="n">Full name</label><input type="text" name="name" id="n"/>
</form>`

	c := newTestClassifier(t, pattern.LanguageAgnostic)
	cands := classifyHTML(t, c, html, "en")
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1", len(cands))
	}
	if cands[0].Score < c.MinScore {
		t.Errorf("winning score %v below threshold %v", cands[0].Score, c.MinScore)
	}
}
