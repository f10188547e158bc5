package compact

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// column é uma posição do registro: nome do campo + conversor que grava em T
type column[T any] struct {
	name string
	set  func(dst *T, raw string) error
}

// decodeFields aplica o schema posicionalmente. O número de campos precisa
// bater exatamente com o schema.
func decodeFields[T any](fields []string, schema []column[T], loc location, dst *T) error {
	if len(fields) != len(schema) {
		return loc.malformed(len(fields), len(schema))
	}
	for i, col := range schema {
		if err := col.set(dst, fields[i]); err != nil {
			// sub-registros (ex.: runners removidos) já trazem a própria localização
			var de *DecodeError
			if errors.As(err, &de) {
				return err
			}
			return loc.field(col.name, fields[i], err)
		}
	}
	return nil
}

func rawCol[T any](name string, set func(*T, string)) column[T] {
	return column[T]{name: name, set: func(dst *T, raw string) error {
		set(dst, raw)
		return nil
	}}
}

func textCol[T any](name string, set func(*T, string)) column[T] {
	return column[T]{name: name, set: func(dst *T, raw string) error {
		set(dst, UnescapeString(raw))
		return nil
	}}
}

func pathCol[T any](name string, set func(*T, string)) column[T] {
	return column[T]{name: name, set: func(dst *T, raw string) error {
		set(dst, unescapeMenuPath(raw))
		return nil
	}}
}

func intCol[T any](name string, set func(*T, int64)) column[T] {
	return column[T]{name: name, set: func(dst *T, raw string) error {
		v, err := ToInt(raw)
		if err != nil {
			return err
		}
		set(dst, v)
		return nil
	}}
}

// countCol é um inteiro com piso (quantidade de runners, vencedores)
func countCol[T any](name string, floor int64, set func(*T, int64)) column[T] {
	return column[T]{name: name, set: func(dst *T, raw string) error {
		v, err := ToInt(raw)
		if err != nil {
			return err
		}
		if v < floor {
			return fmt.Errorf("%w %q: must be >= %d", ErrInvalidScalar, raw, floor)
		}
		set(dst, v)
		return nil
	}}
}

func boolCol[T any](name string, set func(*T, bool)) column[T] {
	return column[T]{name: name, set: func(dst *T, raw string) error {
		set(dst, ToBool(raw))
		return nil
	}}
}

func timeCol[T any](name string, set func(*T, time.Time)) column[T] {
	return column[T]{name: name, set: func(dst *T, raw string) error {
		v, err := ToTimestamp(raw)
		if err != nil {
			return err
		}
		set(dst, v)
		return nil
	}}
}

func decimalCol[T any](name string, set func(*T, decimal.Decimal)) column[T] {
	return column[T]{name: name, set: func(dst *T, raw string) error {
		v, err := ToDecimal(raw)
		if err != nil {
			return err
		}
		set(dst, v)
		return nil
	}}
}

// amountCol é um decimal que não pode ser negativo (volumes, stakes)
func amountCol[T any](name string, set func(*T, decimal.Decimal)) column[T] {
	return column[T]{name: name, set: func(dst *T, raw string) error {
		v, err := ToDecimal(raw)
		if err != nil {
			return err
		}
		if v.IsNegative() {
			return fmt.Errorf("%w %q: negative amount", ErrInvalidScalar, raw)
		}
		set(dst, v)
		return nil
	}}
}

// priceCol é uma odd: obrigatória e maior que zero
func priceCol[T any](name string, set func(*T, decimal.Decimal)) column[T] {
	return column[T]{name: name, set: func(dst *T, raw string) error {
		v, err := ToDecimal(raw)
		if err != nil {
			return err
		}
		if !v.IsPositive() {
			return fmt.Errorf("%w %q: price must be positive", ErrInvalidScalar, raw)
		}
		set(dst, v)
		return nil
	}}
}
