package symbols

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dhamidi/jurand/strict"
)

// Pattern is a regular expression matched anywhere inside a name.
type Pattern struct {
	Text string
	Re   *regexp.Regexp
}

// CompilePattern compiles text into a Pattern.
func CompilePattern(text string) (Pattern, error) {
	re, err := regexp.Compile(text)
	if err != nil {
		return Pattern{}, fmt.Errorf("invalid pattern %q: %w", text, err)
	}
	return Pattern{Text: text, Re: re}, nil
}

// MustCompilePattern is like CompilePattern but panics on error.
func MustCompilePattern(text string) Pattern {
	p, err := CompilePattern(text)
	if err != nil {
		panic(err)
	}
	return p
}

// NameSet is an ordered set of simple names. The zero value is empty.
type NameSet struct {
	order []string
	set   map[string]struct{}
}

// NewNameSet returns a set holding names, dropping duplicates.
func NewNameSet(names ...string) NameSet {
	s := NameSet{set: make(map[string]struct{}, len(names))}
	for _, name := range names {
		if _, ok := s.set[name]; ok {
			continue
		}
		s.set[name] = struct{}{}
		s.order = append(s.order, name)
	}
	return s
}

func (s NameSet) Contains(name string) bool {
	_, ok := s.set[name]
	return ok
}

// Names returns the names in insertion order.
func (s NameSet) Names() []string {
	return s.order
}

func (s NameSet) Len() int {
	return len(s.order)
}

// RemovedImports maps the simple name of every removed single-type import
// to the fully qualified name it was imported as.
type RemovedImports map[string]string

// SimpleName returns the part of name after the last '.'.
func SimpleName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Matcher decides which import and annotation names are removed.
type Matcher struct {
	patterns []Pattern
	names    NameSet
	observer strict.Observer
}

// NewMatcher returns a matcher for the given patterns and simple names.
// Successful matches are reported to observer, which may be nil.
func NewMatcher(patterns []Pattern, names NameSet, observer strict.Observer) *Matcher {
	if observer == nil {
		observer = strict.Nop{}
	}
	return &Matcher{patterns: patterns, names: names, observer: observer}
}

func (m *Matcher) Observer() strict.Observer {
	return m.observer
}

// Empty reports whether the matcher can never match anything.
func (m *Matcher) Empty() bool {
	return len(m.patterns) == 0 && m.names.Len() == 0
}

// withoutNames returns a matcher that only consults the patterns.
func (m *Matcher) withoutNames() *Matcher {
	return &Matcher{patterns: m.patterns, observer: m.observer}
}

// Match reports whether name should be removed. The simple name is looked
// up in the name set first. Failing that, a name whose simple name was
// imported by a removed import matches when it is written either simply or
// exactly as imported. Otherwise the patterns are searched in order.
func (m *Matcher) Match(name string, removed RemovedImports) bool {
	simple := SimpleName(name)
	if m.names.Contains(simple) {
		m.observer.NameMatched(simple)
		return true
	}
	if imported, ok := removed[simple]; ok && (name == simple || imported == name) {
		return true
	}
	for _, p := range m.patterns {
		if p.Re.MatchString(name) {
			m.observer.PatternMatched(p.Text)
			return true
		}
	}
	return false
}
