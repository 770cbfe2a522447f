package symbols

import "strings"

// Annotation is one '@' annotation found in a Source. Source[Start:End]
// spans the '@', the possibly qualified name and, when present, the
// parenthesized arguments.
type Annotation struct {
	Start int
	End   int
	Name  string
}

// NextAnnotation returns the first annotation at or after pos. The name is
// assembled from the symbols following '@' with comments and whitespace
// dropped, so "@ java . lang /**/ . Deprecated" is named
// "java.lang.Deprecated". A "..." after '@' ends the name, which keeps
// varargs such as "@A ... args" from swallowing the parameter.
//
// The second result is false when no annotation remains, including the
// case where an argument list is opened but never closed.
func (s Source) NextAnnotation(pos int) (Annotation, bool) {
	start := s.FindToken("@", pos, false, 0)
	if start >= len(s) {
		return Annotation{Start: len(s), End: len(s)}, false
	}
	after, _ := s.matchAt("@", start)

	var name strings.Builder
	symbol, end := s.NextSymbol(after)
	next := end
	expectDot := false
	for symbol != "" {
		if symbol == "." {
			if _, ok := s.matchAt("..", next); ok {
				break
			}
		}
		if expectDot && symbol != "." {
			if symbol == "(" {
				closing := s.FindToken(")", next, false, 0)
				if closing >= len(s) {
					return Annotation{Start: len(s), End: len(s)}, false
				}
				_, w := s.at(closing)
				end = closing + w
			}
			break
		}
		name.WriteString(symbol)
		expectDot = !expectDot
		end = next
		symbol, next = s.NextSymbol(next)
	}
	return Annotation{Start: start, End: end, Name: name.String()}, true
}
