package compact

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedRecord: registro com número de campos diferente do esperado
	ErrMalformedRecord = errors.New("malformed record")
	// ErrInvalidScalar: campo numérico/booleano com conteúdo não interpretável
	ErrInvalidScalar = errors.New("invalid scalar")
	// ErrEmptyInput: payload de preços vazio (o cabeçalho é obrigatório)
	ErrEmptyInput = errors.New("empty input")
)

// Segment identifica o tipo de trecho do payload onde a falha ocorreu
type Segment string

const (
	SegmentMarket        Segment = "market"
	SegmentHeader        Segment = "header"
	SegmentRemovedRunner Segment = "removed runner"
	SegmentRunner        Segment = "runner"
	SegmentPriceLevel    Segment = "price level"
	SegmentDepthLevel    Segment = "depth level"
)

// DecodeError localiza uma falha de decodificação.
// Index é a posição do registro no split bruto (mercado, runner ou runner
// removido; -1 para o cabeçalho). Level é a posição do nível de preço dentro
// do runner (-1 quando não se aplica).
type DecodeError struct {
	Segment Segment
	Index   int
	Level   int
	Field   string
	Value   string
	Err     error
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString("compact: ")
	switch e.Segment {
	case SegmentHeader:
		b.WriteString("header")
	case SegmentPriceLevel, SegmentDepthLevel:
		fmt.Fprintf(&b, "runner %d %s %d", e.Index, e.Segment, e.Level)
	default:
		fmt.Fprintf(&b, "%s %d", e.Segment, e.Index)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": field %q", e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// location é a posição corrente durante a decodificação
type location struct {
	segment Segment
	index   int
	level   int
}

func at(segment Segment, index int) location {
	return location{segment: segment, index: index, level: -1}
}

func (l location) withLevel(segment Segment, level int) location {
	return location{segment: segment, index: l.index, level: level}
}

func (l location) malformed(got, want int) error {
	return &DecodeError{
		Segment: l.segment,
		Index:   l.index,
		Level:   l.level,
		Err:     fmt.Errorf("%w: got %d fields, want %d", ErrMalformedRecord, got, want),
	}
}

func (l location) field(name, value string, err error) error {
	return &DecodeError{
		Segment: l.segment,
		Index:   l.index,
		Level:   l.level,
		Field:   name,
		Value:   value,
		Err:     err,
	}
}
