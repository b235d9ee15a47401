package classifier

// Field type names served by the pattern provider.
const (
	TypeNameFull     = "NAME_FULL"
	TypeNameFirst    = "NAME_FIRST"
	TypeNameMiddle   = "NAME_MIDDLE"
	TypeNameLast     = "NAME_LAST"
	TypeEmail        = "EMAIL_ADDRESS"
	TypePhone        = "PHONE_HOME_WHOLE_NUMBER"
	TypeAddressLine1 = "ADDRESS_HOME_LINE1"
	TypeAddressLine2 = "ADDRESS_HOME_LINE2"
	TypeCity         = "ADDRESS_HOME_CITY"
	TypeState        = "ADDRESS_HOME_STATE"
	TypeZip          = "ADDRESS_HOME_ZIP"
	TypeCountry      = "ADDRESS_HOME_COUNTRY"
)

// parseFunc attempts one classification rule at the scanner's current
// position. On success it returns the committed candidates with the
// scanner advanced past the consumed fields; on failure it returns nil
// with the scanner position unchanged.
type parseFunc func(c *Classifier, sc *Scanner, pageLanguage string) []Candidate

// fieldRules run in priority order. The composite full-name rule must
// come before anything that could claim its split parts.
var fieldRules = []parseFunc{
	parseName,
	parseEmail,
	parsePhone,
	parseAddress,
}

// parseName claims either a single full-name field or a
// first [middle] last run of fields. A first name with no following
// last name is rejected and the scanner rewound.
func parseName(c *Classifier, sc *Scanner, pageLanguage string) []Candidate {
	f := sc.Peek()
	if f == nil {
		return nil
	}

	if score, ok := c.match(f, TypeNameFull, pageLanguage); ok {
		sc.Advance()
		return []Candidate{{FieldName: f.Name, Type: TypeNameFull, Score: score}}
	}

	pos := sc.Pos()
	score, ok := c.match(f, TypeNameFirst, pageLanguage)
	if !ok {
		return nil
	}
	cands := []Candidate{{FieldName: f.Name, Type: TypeNameFirst, Score: score}}
	sc.Advance()

	if mid := sc.Peek(); mid != nil {
		if midScore, ok := c.match(mid, TypeNameMiddle, pageLanguage); ok {
			cands = append(cands, Candidate{FieldName: mid.Name, Type: TypeNameMiddle, Score: midScore})
			sc.Advance()
		}
	}

	last := sc.Peek()
	if last == nil {
		sc.Rewind(pos)
		return nil
	}
	lastScore, ok := c.match(last, TypeNameLast, pageLanguage)
	if !ok {
		sc.Rewind(pos)
		return nil
	}
	cands = append(cands, Candidate{FieldName: last.Name, Type: TypeNameLast, Score: lastScore})
	sc.Advance()
	return cands
}

func parseEmail(c *Classifier, sc *Scanner, pageLanguage string) []Candidate {
	return parseSingle(c, sc, pageLanguage, TypeEmail)
}

func parsePhone(c *Classifier, sc *Scanner, pageLanguage string) []Candidate {
	return parseSingle(c, sc, pageLanguage, TypePhone)
}

// addressTypes in match order; line1 before line2 so a bare "address"
// field resolves to line1.
var addressTypes = []string{
	TypeAddressLine1,
	TypeAddressLine2,
	TypeZip,
	TypeCity,
	TypeState,
	TypeCountry,
}

func parseAddress(c *Classifier, sc *Scanner, pageLanguage string) []Candidate {
	for _, tp := range addressTypes {
		if cands := parseSingle(c, sc, pageLanguage, tp); cands != nil {
			return cands
		}
	}
	return nil
}

// parseSingle claims the current field if it matches the given type.
func parseSingle(c *Classifier, sc *Scanner, pageLanguage, fieldType string) []Candidate {
	f := sc.Peek()
	if f == nil {
		return nil
	}
	score, ok := c.match(f, fieldType, pageLanguage)
	if !ok {
		return nil
	}
	sc.Advance()
	return []Candidate{{FieldName: f.Name, Type: fieldType, Score: score}}
}
