package postgres

import "strings"

// likeEscaper escapes LIKE/ILIKE wildcards so user text matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike returns s with LIKE/ILIKE wildcards escaped, for embedding
// user text inside a pattern.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
