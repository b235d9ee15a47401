package formsense

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/formsense/formsense/pattern"
)

const contactFormHTML = `<html><body>
<form method="POST" action="/contact">
  <label for="n">Full name</label>
  <input type="text" name="name" id="n"/>
  <label for="e">Email</label>
  <input type="email" name="email" id="e"/>
  <label for="p">Phone number</label>
  <input type="tel" name="phone" id="p"/>
  <input type="submit" value="Send"/>
</form>
</body></html>`

func TestExtractFields(t *testing.T) {
	pattern.ResetDefault()
	t.Cleanup(pattern.ResetDefault)

	c := New()
	results, err := c.ExtractFields(contactFormHTML, "en")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 form, got %d", len(results))
	}

	want := map[string]string{
		"name":  "NAME_FULL",
		"email": "EMAIL_ADDRESS",
		"phone": "PHONE_HOME_WHOLE_NUMBER",
	}
	got := results[0].FieldTypes
	for field, tp := range want {
		if got[field] != tp {
			t.Errorf("field %q = %q, want %q", field, got[field], tp)
		}
	}
	for field := range want {
		if results[0].Scores[field] == 0 {
			t.Errorf("field %q has no score", field)
		}
	}
}

func TestExtractFieldsNoForms(t *testing.T) {
	pattern.ResetDefault()
	t.Cleanup(pattern.ResetDefault)

	c := New()
	results, err := c.ExtractFields("<html><body>No forms here</body></html>", "en")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
	if results == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestLoadRulesVersionPolicy(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	v2 := write("v2.json", `{"version": 2, "types": {"EMAIL_ADDRESS": {"": [
		{"positive": "e.?mail", "score": 1.0, "attributes": ["label", "name"]}]}}}`)
	v1 := write("v1.json", `{"version": 1, "types": {"EMAIL_ADDRESS": {"": [
		{"positive": "never.?matches.?anything", "score": 1.0, "attributes": ["label", "name"]}]}}}`)

	c := NewWithProvider(pattern.NewProvider(pattern.LanguageAgnostic))
	if err := c.LoadRules(v2); err != nil {
		t.Fatal(err)
	}
	if c.RuleVersion() != 2 {
		t.Fatalf("RuleVersion = %d, want 2", c.RuleVersion())
	}

	// Stale file: silently ignored, version and behavior unchanged.
	if err := c.LoadRules(v1); err != nil {
		t.Fatal(err)
	}
	if c.RuleVersion() != 2 {
		t.Errorf("RuleVersion after stale load = %d, want 2", c.RuleVersion())
	}

	results, err := c.ExtractFields(contactFormHTML, "en")
	if err != nil {
		t.Fatal(err)
	}
	if results[0].FieldTypes["email"] != "EMAIL_ADDRESS" {
		t.Errorf("email = %q, want EMAIL_ADDRESS from version 2 rules", results[0].FieldTypes["email"])
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	c := NewWithProvider(pattern.NewProvider(pattern.LanguageAgnostic))
	if err := c.LoadRules(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing rules file")
	}
}

func TestSetMinScore(t *testing.T) {
	pattern.ResetDefault()
	t.Cleanup(pattern.ResetDefault)

	c := New()
	c.SetMinScore(10)
	results, err := c.ExtractFields(contactFormHTML, "en")
	if err != nil {
		t.Fatal(err)
	}
	if len(results[0].FieldTypes) != 0 {
		t.Errorf("threshold 10 still classified %v", results[0].FieldTypes)
	}
}
