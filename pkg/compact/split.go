package compact

import "strings"

const (
	recordSep  = ':'
	fieldSep   = '~'
	levelSep   = '|'
	removedSep = ';'
	removedFld = ','
	pathSep    = '/'
	escapeChar = '\\'
)

// Split quebra text em cada delim que não esteja precedido de '\'.
// A barra que escapa o delimitador é removida e o delimitador fica no campo;
// qualquer outra barra é preservada. N delimitadores geram sempre N+1 campos.
func Split(text string, delim byte) []string {
	fields := make([]string, 0, strings.Count(text, string(delim))+1)

	var b strings.Builder
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == escapeChar && i+1 < len(text) && text[i+1] == delim:
			b.WriteByte(delim)
			i++
		case c == delim:
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}

	return append(fields, b.String())
}

// trimLine remove apenas terminadores de linha; espaços podem ser conteúdo escapado
func trimLine(s string) string {
	return strings.Trim(s, "\r\n")
}
