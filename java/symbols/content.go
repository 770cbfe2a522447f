package symbols

import "github.com/dhamidi/jurand/strict"

// Parameters configures one removal run.
type Parameters struct {
	Matcher           *Matcher
	RemoveAnnotations bool
	InPlace           bool
	Strict            bool
}

// Observer returns the observer the matcher reports to.
func (p *Parameters) Observer() strict.Observer {
	return p.Matcher.Observer()
}

// HandleContent removes the matching imports from src and, when
// p.RemoveAnnotations is set, the matching annotations as well.
// The result is never longer than src.
func HandleContent(src []byte, p *Parameters) []byte {
	content, removed := RemoveImports(src, p.Matcher)
	if !p.RemoveAnnotations {
		return content
	}
	stripped := RemoveAnnotations(content, p.Matcher, removed)
	if len(stripped) < len(content) {
		p.Observer().AnnotationRemoved()
	}
	return stripped
}
