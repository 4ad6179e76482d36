package engine

import "strings"

// kwPrefix marks keyword arguments after preprocessing.
const kwPrefix = "__kw_"

// preprocessSource turns carve surface syntax into something zygomys reads:
//
//   - :size becomes the string "__kw_size", so keywords never collide with
//     user variables.
//   - hole-depth becomes hole_depth; a hyphen only survives as minus.
//   - ; and ;; comments become //.
//
// String and backtick literals pass through untouched.
func preprocessSource(source string) string {
	var out strings.Builder
	out.Grow(len(source) + len(source)/4)

	for i := 0; i < len(source); {
		c := source[i]
		switch {
		case c == '"' || c == '`':
			end := literalEnd(source, i)
			out.WriteString(source[i:end])
			i = end

		case c == ';':
			out.WriteString("//")
			i = skipWhile(source, i, func(c byte) bool { return c == ';' })
			end := strings.IndexByte(source[i:], '\n')
			if end < 0 {
				end = len(source) - i
			}
			out.WriteString(source[i : i+end])
			i += end

		case c == ':' && i+1 < len(source) && source[i+1] == '=':
			out.WriteString(":=")
			i += 2

		case c == ':' && i+1 < len(source) && isLetter(source[i+1]):
			end := skipWhile(source, i+1, isKWChar)
			out.WriteString(`"` + kwPrefix + source[i+1:end] + `"`)
			i = end

		case c == '-' && i > 0 && i+1 < len(source) &&
			isIdentChar(source[i-1]) && isLetter(source[i+1]):
			out.WriteByte('_')
			i++

		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// literalEnd returns the index just past the string literal opening at
// start. Double-quoted literals honour backslash escapes; an unterminated
// literal runs to the end of the source.
func literalEnd(source string, start int) int {
	quote := source[start]
	for i := start + 1; i < len(source); i++ {
		switch {
		case quote == '"' && source[i] == '\\':
			i++
		case source[i] == quote:
			return i + 1
		}
	}
	return len(source)
}

func skipWhile(source string, i int, ok func(byte) bool) int {
	for i < len(source) && ok(source[i]) {
		i++
	}
	return i
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isIdentChar(c) || c == '-'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}
