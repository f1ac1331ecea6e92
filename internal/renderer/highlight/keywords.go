package highlight

// keywords is the reserved-word set shared by the common C-family,
// scripting and systems languages the editor is used with.
var keywords = makeSet(
	// JavaScript / TypeScript
	"const", "let", "var", "function", "return", "if", "else", "for", "while",
	"switch", "case", "break", "continue", "default", "try", "catch", "finally",
	"throw", "new", "class", "extends", "super", "this", "import", "export",
	"from", "async", "await", "void", "typeof", "instanceof", "in",
	"of", "true", "false", "null", "undefined", "NaN", "Infinity", "interface",
	"type", "implements", "declare", "namespace", "enum",

	// C / C++ / Java / C#
	"int", "float", "double", "char", "string", "bool", "boolean", "short", "long",
	"signed", "unsigned", "struct", "union", "static", "public", "private",
	"protected", "final", "virtual", "override", "abstract", "volatile", "transient",
	"synchronized", "native", "throws", "package", "using",

	// Python
	"def", "elif", "pass", "None", "True", "False", "and", "or", "not", "is",
	"lambda", "global", "nonlocal", "print", "exec", "with", "yield",

	// Go
	"func", "chan", "go", "select", "defer", "map",

	// Rust
	"fn", "mut", "pub", "impl", "trait", "match", "loop", "unsafe", "where", "crate",

	// General
	"main", "args", "console", "log", "System", "out", "println",
)

func makeSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// IsKeyword reports whether word is in the reserved-word set.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}
