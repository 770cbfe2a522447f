// Package symbols removes import statements and annotations from Java
// source text without parsing it.
//
// # Overview
//
// The package works on raw bytes with a small set of scanning primitives
// that understand just enough of Java's lexical structure to stay out of
// comments, string literals and character literals:
//
//	Source.SkipTrivia      whitespace and comments
//	Source.NextSymbol      one identifier run or one punctuation character
//	Source.FindToken       next occurrence of a token outside literals
//	Source.NextAnnotation  next '@' annotation with its arguments
//
// On top of these, RemoveImports and RemoveAnnotations copy the input to a
// new buffer, leaving out every import or annotation whose name is accepted
// by a Matcher. HandleContent chains both passes the way the command line
// tool does.
//
// # Unicode Escapes
//
// A backslash preceded by an even number of backslashes and followed by
// one or more 'u' characters and four hex digits is treated as the single
// character it encodes, so `@Deprecated` is an annotation and
// `import java.util.List;` is an import. Escaped characters outside
// ASCII are identifier characters.
//
// # Positions
//
// Every position is a byte offset into the source. Scanning never fails:
// when a token cannot be found the returned position is len(source).
package symbols
