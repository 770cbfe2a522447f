package symbols

// RemoveAnnotations returns a copy of src without the annotations whose
// name is accepted by m. The removed table from RemoveImports lets a bare
// "@Name" follow the fate of its import. Whitespace after a removed
// annotation goes with it unless it runs to the end of the source.
// Annotation type declarations ("@interface") are always kept.
func RemoveAnnotations(src []byte, m *Matcher, removed RemovedImports) []byte {
	s := Source(src)
	out := make([]byte, 0, len(s))

	pos := 0
	for pos < len(s) {
		a, ok := s.NextAnnotation(pos)
		if !ok {
			out = append(out, s[pos:]...)
			break
		}

		copyEnd, next := a.End, a.End
		if a.Name != "interface" && m.Match(a.Name, removed) {
			copyEnd = a.Start
			if skip := s.skipSpace(a.End); skip < len(s) {
				next = skip
			}
			log.Debugf("removing annotation @%s", a.Name)
		}
		out = append(out, s[pos:copyEnd]...)
		pos = next
	}
	return out
}
