package compact

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Epoch é o valor de um timestamp ausente
var Epoch = time.Unix(0, 0).UTC()

// ToInt converte um inteiro base 10. Campo vazio vale 0; conteúdo fracionário
// ou não numérico é erro.
func ToInt(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, invalidScalar(s)
	}
	return v, nil
}

// ToDecimal converte preservando a precisão decimal. Campo vazio vale 0.
func ToDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, invalidScalar(s)
	}
	return d, nil
}

// ToBool aceita "true", "y" e "1" (sem diferenciar maiúsculas); o resto é false
func ToBool(s string) bool {
	return strings.EqualFold(s, "true") || strings.EqualFold(s, "y") || s == "1"
}

// ToTimestamp interpreta milissegundos desde a época Unix, em UTC.
// Campo vazio vale Epoch.
func ToTimestamp(s string) (time.Time, error) {
	if s == "" {
		return Epoch, nil
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Epoch, invalidScalar(s)
	}
	// segundos inteiros + resto em ms (resto*1000 µs)
	return time.Unix(ms/1000, (ms%1000)*int64(time.Millisecond)).UTC(), nil
}

// delimitadores estruturais do formato compacto
const structural = ":~|;,/"

// UnescapeString remove a barra que escapa um delimitador ou espaço
// ("\:" -> ":", "\ " -> " "). Qualquer outra barra, inclusive "\\", é mantida.
func UnescapeString(s string) string {
	return unescape(s, structural+" ")
}

// unescapeMenuPath só remove escapes de delimitadores; a barra é o separador
// de níveis do menuPath ("\Horse Racing\GB\ (Ante Post)")
func unescapeMenuPath(s string) string {
	return unescape(s, structural)
}

func unescape(s, escapable string) string {
	if strings.IndexByte(s, escapeChar) < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == escapeChar && i+1 < len(s) && strings.IndexByte(escapable, s[i+1]) >= 0 {
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func invalidScalar(s string) error {
	return fmt.Errorf("%w %q", ErrInvalidScalar, s)
}
