package swiftcodec

import (
	"strings"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// Ruleset pairs characters with the text that replaces them during Escape.
// A Ruleset is immutable once built and safe for concurrent use.
type Ruleset struct {
	ascii        [utf8.RuneSelf]int16 // replacement index + 1, 0 = no rule
	wide         map[rune]int
	replacements []string
	controlBytes bool
}

// NewRuleset builds a Ruleset mapping the i-th rune of match to replacements[i].
// When controlBytes is set, runes below 32 without a rule are written as \xHH.
// NewRuleset panics if match and replacements differ in length.
func NewRuleset(match string, replacements []string, controlBytes bool) *Ruleset {
	if utf8.RuneCountInString(match) != len(replacements) {
		panic("swiftcodec: ruleset match and replacement counts differ")
	}
	rs := &Ruleset{
		replacements: append([]string(nil), replacements...),
		controlBytes: controlBytes,
	}
	i := 0
	for _, r := range match {
		if r < utf8.RuneSelf {
			if rs.ascii[r] == 0 {
				rs.ascii[r] = int16(i + 1)
			}
		} else {
			if rs.wide == nil {
				rs.wide = make(map[rune]int)
			}
			if _, ok := rs.wide[r]; !ok {
				rs.wide[r] = i
			}
		}
		i++
	}
	return rs
}

var (
	cStringMatch        = "\\\"\a\b\t\n\v\f\r"
	cStringReplacements = []string{`\\`, `\"`, `\a`, `\b`, `\t`, `\n`, `\v`, `\f`, `\r`}
)

// Predefined rulesets.
var (
	// CStringRules escapes backslash, double quote and the named C control escapes; other control bytes become \xHH.
	CStringRules = NewRuleset(cStringMatch, cStringReplacements, true)
	// JSONRules escapes a string for a double-quoted JSON or JavaScript literal.
	JSONRules = NewRuleset(cStringMatch, cStringReplacements, true)
	// JSONSingleQuoteRules escapes a string for a single-quoted JavaScript literal.
	JSONSingleQuoteRules = NewRuleset("\\'\a\b\t\n\v\f\r",
		[]string{`\\`, `\'`, `\a`, `\b`, `\t`, `\n`, `\v`, `\f`, `\r`}, true)

	// TabRules escapes tab and backslash in a tab-delimited field.
	TabRules = NewRuleset("\t\\", []string{`\t`, `\\`}, false)
	// TabControlRules is TabRules plus the named control escapes and \xHH for other control bytes.
	TabControlRules = NewRuleset("\t\\\r\n\a\b\v\f",
		[]string{`\t`, `\\`, `\r`, `\n`, `\a`, `\b`, `\v`, `\f`}, true)

	// CSVRules marks the comma (kept literally) and escapes double quote and backslash.
	CSVRules = NewRuleset(",\"\\", []string{",", `\"`, `\\`}, false)
	// CSVControlRules is CSVRules plus the named control escapes and \xHH for other control bytes.
	CSVControlRules = NewRuleset(",\"\\\r\n\t\a\b\v\f",
		[]string{",", `\"`, `\\`, `\r`, `\n`, `\t`, `\a`, `\b`, `\v`, `\f`}, true)
)

// Escape returns s with every matched rune replaced. When nothing matches, s itself is returned.
func (rs *Ruleset) Escape(s string) string {
	out, _ := rs.escape(s)
	return out
}

// escape scans s once, allocating the output only at the first substitution.
// It reports whether any rule fired, including rules whose replacement equals the input.
func (rs *Ruleset) escape(s string) (string, bool) {
	var sb *strings.Builder
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		size := 1
		repl, ok := "", false

		if c < utf8.RuneSelf {
			if k := rs.ascii[c]; k != 0 {
				repl, ok = rs.replacements[k-1], true
			} else if c < 32 && rs.controlBytes {
				repl, ok = string([]byte{'\\', 'x', hexDigits[c>>4], hexDigits[c&0xF]}), true
			}
		} else if rs.wide != nil {
			r, n := utf8.DecodeRuneInString(s[i:])
			size = n
			if k, found := rs.wide[r]; found {
				repl, ok = rs.replacements[k], true
			}
		}

		if !ok {
			i += size
			continue
		}
		if sb == nil {
			sb = new(strings.Builder)
			sb.Grow(21 * len(s) / 20)
		}
		sb.WriteString(s[start:i])
		sb.WriteString(repl)
		i += size
		start = i
	}
	if sb == nil {
		return s, false
	}
	sb.WriteString(s[start:])
	return sb.String(), true
}

// EscapeCString escapes s for use inside a double-quoted C, C# or Go string literal.
func EscapeCString(s string) string {
	return CStringRules.Escape(s)
}

// EscapeJSON returns s as a JSON/JavaScript string literal delimited by quote.
// An empty s yields two quote characters.
func EscapeJSON(s string, quote rune) string {
	q := string(quote)
	if s == "" {
		return q + q
	}
	var rs *Ruleset
	switch quote {
	case '"':
		rs = JSONRules
	case '\'':
		rs = JSONSingleQuoteRules
	default:
		rs = NewRuleset("\\"+q+"\a\b\t\n\v\f\r",
			[]string{`\\`, `\` + q, `\a`, `\b`, `\t`, `\n`, `\v`, `\f`, `\r`}, true)
	}
	return q + rs.Escape(s) + q
}

// EscapeTabDelimited escapes s for a tab-delimited field. With escapeControl, control bytes are escaped too.
func EscapeTabDelimited(s string, escapeControl bool) string {
	if escapeControl {
		return TabControlRules.Escape(s)
	}
	return TabRules.Escape(s)
}

// EscapeCSV escapes s for a comma-delimited field of the backslash dialect. Fields containing
// a comma, double quote or backslash (or, with escapeControl, a control byte) are wrapped in
// double quotes; quotes and backslashes inside are backslash-escaped. Other fields are returned unchanged.
func EscapeCSV(s string, escapeControl bool) string {
	rs := CSVRules
	if escapeControl {
		rs = CSVControlRules
	}
	out, changed := rs.escape(s)
	if !changed {
		return s
	}
	return `"` + out + `"`
}

// StringFormatRules doubles opening braces.
var StringFormatRules = NewRuleset("{", []string{"{{"}, false)

// EscapeStringFormat doubles every '{' so s can be embedded in a composite format
// string ("{0}" becomes "{{0}"). Closing braces are left alone.
func EscapeStringFormat(s string) string {
	return StringFormatRules.Escape(s)
}

const (
	cdataOpen  = "<![CDATA["
	cdataClose = "]]>"
)

// EscapeCDATA wraps s in CDATA sections when it contains the "]]>" terminator, splitting the
// terminator across two sections. Strings without a terminator are returned unchanged.
func EscapeCDATA(s string) string {
	if strings.TrimSpace(s) == "" || !strings.Contains(s, cdataClose) {
		return s
	}
	parts := strings.Split(s, cdataClose)
	return cdataOpen + strings.Join(parts, "]]]]><![CDATA[>") + cdataClose
}
