package render

import "strings"

// reservedWords covers both keywords in use and those reserved for future
// editions; any of them must be written as a raw identifier.
var reservedWords = map[string]bool{
	"abstract": true, "as": true, "async": true, "await": true,
	"become": true, "box": true, "break": true, "const": true,
	"continue": true, "crate": true, "do": true, "dyn": true,
	"else": true, "enum": true, "extern": true, "false": true,
	"final": true, "fn": true, "for": true, "if": true,
	"impl": true, "in": true, "let": true, "loop": true,
	"macro": true, "match": true, "mod": true, "move": true,
	"mut": true, "override": true, "priv": true, "pub": true,
	"ref": true, "return": true, "self": true, "Self": true,
	"static": true, "struct": true, "super": true, "trait": true,
	"true": true, "try": true, "type": true, "typeof": true,
	"unsafe": true, "unsized": true, "use": true, "virtual": true,
	"where": true, "while": true, "yield": true,
}

func isReservedWord(s string) bool { return reservedWords[s] }

// escapeName prefixes reserved identifiers with r#.
func escapeName(name string) string {
	if isReservedWord(name) {
		return "r#" + name
	}
	return name
}

// escapePath escapes each reserved segment of a :: separated path.
// The path keywords crate, self, super and Self cannot be raw identifiers
// and pass through unchanged.
func escapePath(path string) string {
	segments := strings.Split(path, "::")
	for i, segment := range segments {
		switch segment {
		case "crate", "self", "super", "Self":
		default:
			if isReservedWord(segment) {
				segments[i] = "r#" + segment
			}
		}
	}
	return strings.Join(segments, "::")
}
