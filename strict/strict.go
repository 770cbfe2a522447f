// Package strict records which parts of a removal request had an effect,
// so that requests which silently did nothing can be reported.
package strict

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Observer is notified as removals happen. Implementations must be safe
// for concurrent use.
type Observer interface {
	NameMatched(name string)
	PatternMatched(pattern string)
	FileTruncated(origin string)
	AnnotationRemoved()
}

// Nop ignores every event.
type Nop struct{}

func (Nop) NameMatched(string)    {}
func (Nop) PatternMatched(string) {}
func (Nop) FileTruncated(string)  {}
func (Nop) AnnotationRemoved()    {}

// Kind identifies what a Violation is about.
type Kind int

const (
	UnmatchedName Kind = iota
	UnmatchedPattern
	UntouchedFile
	NoAnnotationRemoved
)

func (k Kind) String() string {
	switch k {
	case UnmatchedName:
		return "unmatched name"
	case UnmatchedPattern:
		return "unmatched pattern"
	case UntouchedFile:
		return "untouched file"
	case NoAnnotationRemoved:
		return "no annotation removed"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Violation is one requested name, pattern or file root that had no
// effect.
type Violation struct {
	Kind Kind
	Key  string
}

func (v Violation) String() string {
	switch v.Kind {
	case UnmatchedName:
		return fmt.Sprintf("simple name %s did not match anything", v.Key)
	case UnmatchedPattern:
		return fmt.Sprintf("pattern %s did not match anything", v.Key)
	case UntouchedFile:
		return fmt.Sprintf("no changes were made in %s", v.Key)
	case NoAnnotationRemoved:
		return "annotation removal was requested but no annotation was removed"
	}
	return v.Kind.String()
}

// Tracker is an Observer that remembers which of a fixed set of names,
// patterns and file roots were hit. Keys it was not created with are
// ignored.
type Tracker struct {
	mu       sync.Mutex
	names    *linkedhashmap.Map
	patterns *linkedhashmap.Map
	origins  *linkedhashmap.Map

	annotationRemoved atomic.Bool
}

func NewTracker(names, patterns, origins []string) *Tracker {
	return &Tracker{
		names:    seed(names),
		patterns: seed(patterns),
		origins:  seed(origins),
	}
}

func seed(keys []string) *linkedhashmap.Map {
	m := linkedhashmap.New()
	for _, key := range keys {
		m.Put(key, false)
	}
	return m
}

func (t *Tracker) NameMatched(name string)       { t.mark(t.names, name) }
func (t *Tracker) PatternMatched(pattern string) { t.mark(t.patterns, pattern) }
func (t *Tracker) FileTruncated(origin string)   { t.mark(t.origins, origin) }
func (t *Tracker) AnnotationRemoved()            { t.annotationRemoved.Store(true) }

// AnyAnnotationRemoved reports whether AnnotationRemoved was called.
func (t *Tracker) AnyAnnotationRemoved() bool {
	return t.annotationRemoved.Load()
}

func (t *Tracker) mark(m *linkedhashmap.Map, key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, found := m.Get(key); found {
		m.Put(key, true)
	}
}

// Violations lists everything that was never hit: names first, then
// patterns, then file roots, each in the order given to NewTracker. When
// removeAnnotations is set and no annotation was removed, that is
// reported last.
func (t *Tracker) Violations(removeAnnotations bool) []Violation {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []Violation
	collect := func(m *linkedhashmap.Map, kind Kind) {
		it := m.Iterator()
		for it.Next() {
			if hit, _ := it.Value().(bool); !hit {
				out = append(out, Violation{Kind: kind, Key: it.Key().(string)})
			}
		}
	}
	collect(t.names, UnmatchedName)
	collect(t.patterns, UnmatchedPattern)
	collect(t.origins, UntouchedFile)
	if removeAnnotations && !t.annotationRemoved.Load() {
		out = append(out, Violation{Kind: NoAnnotationRemoved})
	}
	return out
}
