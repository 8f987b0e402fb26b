// Package normalize validates and prepares string cells for scoring.
package normalize

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Form selects a Unicode normalization form.
type Form int

const (
	// FormNone leaves code points untouched.
	FormNone Form = iota
	// FormNFC applies canonical composition.
	FormNFC
	// FormNFD applies canonical decomposition.
	FormNFD
	// FormNFKC applies compatibility composition.
	FormNFKC
	// FormNFKD applies compatibility decomposition.
	FormNFKD
)

var formNames = map[Form]string{
	FormNone: "none",
	FormNFC:  "nfc",
	FormNFD:  "nfd",
	FormNFKC: "nfkc",
	FormNFKD: "nfkd",
}

// String returns the lowercase name of the form.
func (f Form) String() string {
	if s, ok := formNames[f]; ok {
		return s
	}
	return "unknown"
}

// ParseForm parses a form name. The empty string maps to FormNone.
func ParseForm(s string) (Form, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return FormNone, nil
	}
	for f, n := range formNames {
		if n == name {
			return f, nil
		}
	}
	return FormNone, fmt.Errorf("unknown normalization form %q", s)
}

func (f Form) norm() (norm.Form, bool) {
	switch f {
	case FormNFC:
		return norm.NFC, true
	case FormNFD:
		return norm.NFD, true
	case FormNFKC:
		return norm.NFKC, true
	case FormNFKD:
		return norm.NFKD, true
	default:
		return 0, false
	}
}

// Options configures the transforms applied to both sides of a pair.
// The zero value applies no transformation.
type Options struct {
	// Form is applied first.
	Form Form
	// CaseFold applies Unicode full case folding.
	CaseFold bool
	// TrimSpace removes leading and trailing white space.
	TrimSpace bool
	// CollapseSpace replaces runs of white space with a single space and trims.
	CollapseSpace bool
}

// Validate checks the options.
func (o Options) Validate() error {
	if _, ok := formNames[o.Form]; !ok {
		return fmt.Errorf("unknown normalization form %d", int(o.Form))
	}
	return nil
}

// DecodeError reports a cell that is not valid UTF-8.
type DecodeError struct {
	// Offset is the byte offset of the first invalid sequence.
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid UTF-8 at byte offset %d", e.Offset)
}

// Normalizer converts cells into code-point sequences.
//
// A Normalizer is not safe for concurrent use.
type Normalizer struct {
	opts  Options
	form  norm.Form
	nform bool
	caser cases.Caser
}

// New creates a Normalizer.
func New(opts Options) *Normalizer {
	n := &Normalizer{opts: opts}
	n.form, n.nform = opts.Form.norm()
	if opts.CaseFold {
		n.caser = cases.Fold()
	}
	return n
}

// Options returns the configured options.
func (n *Normalizer) Options() Options {
	return n.opts
}

// Runes validates s, applies the configured transforms and appends the
// resulting code points to dst[:0].
func (n *Normalizer) Runes(dst []rune, s string) ([]rune, error) {
	dst = dst[:0]
	if err := Validate(s); err != nil {
		return dst, err
	}
	s = n.transform(s)
	for _, r := range s {
		dst = append(dst, r)
	}
	return dst, nil
}

// String validates s and returns it with the configured transforms applied.
func (n *Normalizer) String(s string) (string, error) {
	if err := Validate(s); err != nil {
		return "", err
	}
	return n.transform(s), nil
}

func (n *Normalizer) transform(s string) string {
	if n.nform {
		s = n.form.String(s)
	}
	if n.opts.CaseFold {
		s = n.caser.String(s)
	}
	switch {
	case n.opts.CollapseSpace:
		s = strings.Join(strings.Fields(s), " ")
	case n.opts.TrimSpace:
		s = strings.TrimSpace(s)
	}
	return s
}

// Validate returns a *DecodeError if s is not valid UTF-8.
func Validate(s string) error {
	if utf8.ValidString(s) {
		return nil
	}
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return &DecodeError{Offset: i}
		}
		i += size
	}
	return nil
}
