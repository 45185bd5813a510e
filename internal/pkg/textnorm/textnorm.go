// Package textnorm normalizes Greek company names, phone numbers and tax
// identifiers so that values typed by different people can be compared.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Legal-form tokens carry no identifying information and are dropped from names.
// Tokens are compared after accents, case and dots have been removed.
var legalForms = map[string]struct{}{
	"αε": {}, "επε": {}, "ικε": {}, "οε": {}, "εε": {}, "μικε": {}, "αβεε": {}, "αεβε": {},
	"ae": {}, "epe": {}, "ike": {}, "oe": {}, "ee": {}, "sa": {}, "ltd": {}, "llc": {}, "inc": {},
}

// Name returns a comparison key for a company or person name: lower case,
// without diacritics, final sigma folded, punctuation removed and legal-form
// tokens dropped.
func Name(s string) string {
	s = StripAccents(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "ς", "σ")
	s = strings.ReplaceAll(s, ".", "")

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	kept := fields[:0]
	for _, f := range fields {
		if _, ok := legalForms[f]; ok {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// StripAccents removes combining marks (tonos, dialytika) from s.
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Phone keeps only digits and drops the Greek country code, so that
// "+30 210 1234567", "0030 2101234567" and "210-123 4567" compare equal.
func Phone(s string) string {
	d := Digits(s)
	switch {
	case strings.HasPrefix(d, "0030") && len(d) == 14:
		return d[4:]
	case strings.HasPrefix(d, "30") && len(d) == 12:
		return d[2:]
	}
	return d
}

// TaxID keeps only the digits of a ΑΦΜ, which also drops an "EL" VAT prefix.
func TaxID(s string) string {
	return Digits(s)
}

func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidTaxID reports whether s is a well-formed Greek ΑΦΜ: nine digits,
// not all zero, with a correct check digit.
func ValidTaxID(s string) bool {
	if len(s) != 9 {
		return false
	}
	sum := 0
	zeros := true
	for i := 0; i < 9; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		if c != '0' {
			zeros = false
		}
		if i < 8 {
			sum += int(c-'0') << (8 - i)
		}
	}
	if zeros {
		return false
	}
	return (sum%11)%10 == int(s[8]-'0')
}
