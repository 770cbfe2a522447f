package symbols

import (
	"strings"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("jurand.symbols")

// RemoveImports returns a copy of src without the import statements whose
// name is accepted by m, together with the simple names of the removed
// single-type imports.
//
// A removed statement takes the rest of its line with it when only
// whitespace follows the semicolon. Static imports ignore the name set for
// the full member name but are also removed when their enclosing type
// matches. If an import statement is never terminated, src is returned
// unchanged with an empty table.
func RemoveImports(src []byte, m *Matcher) ([]byte, RemovedImports) {
	s := Source(src)
	out := make([]byte, 0, len(s))
	removed := make(RemovedImports)

	pos := 0
	for pos < len(s) {
		start := s.FindToken("import", pos, true, 0)
		if start >= len(s) {
			out = append(out, s[pos:]...)
			break
		}

		keywordEnd, _ := s.matchAt("import", start)
		symbol, end := s.NextSymbol(keywordEnd)
		static := false
		matcher := m
		if symbol == "static" {
			static = true
			matcher = m.withoutNames()
			symbol, end = s.NextSymbol(end)
		}

		var name strings.Builder
		for symbol != ";" {
			if symbol == "" {
				log.Warningf("unterminated import statement at offset %d, leaving content unchanged", start)
				return append([]byte(nil), src...), RemovedImports{}
			}
			name.WriteString(symbol)
			symbol, end = s.NextSymbol(end)
		}
		end = s.skipLineEnd(end)

		importName := name.String()
		matches := matcher.Match(importName, nil)
		if static && !matches {
			if i := strings.LastIndexByte(importName, '.'); i >= 0 {
				matches = m.Match(importName[:i], nil)
			}
		}

		copyEnd := end
		if matches {
			copyEnd = start
			if !static && !strings.HasSuffix(importName, "*") {
				removed[SimpleName(importName)] = importName
			}
			log.Debugf("removing import %s", importName)
		}
		out = append(out, s[pos:copyEnd]...)
		pos = end
	}
	return out, removed
}
