package compact

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	i, err := ToInt("")
	require.NoError(t, err)
	assert.Equal(t, int64(0), i)

	d, err := ToDecimal("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	assert.False(t, ToBool(""))

	ts, err := ToTimestamp("")
	require.NoError(t, err)
	assert.True(t, ts.Equal(time.Unix(0, 0)))
	assert.Equal(t, time.UTC, ts.Location())
}

func TestToInt(t *testing.T) {
	v, err := ToInt("-42")
	require.NoError(t, err)
	assert.Equal(t, int64(-42), v)

	for _, bad := range []string{"1.5", "abc", " 1", "1e3"} {
		_, err := ToInt(bad)
		assert.True(t, errors.Is(err, ErrInvalidScalar), bad)
	}
}

func TestToDecimalKeepsPrecision(t *testing.T) {
	d, err := ToDecimal("0.1")
	require.NoError(t, err)
	sum := d.Add(d).Add(d)
	assert.Equal(t, "0.3", sum.String())

	d, err = ToDecimal("1000.123456789012345")
	require.NoError(t, err)
	assert.Equal(t, "1000.123456789012345", d.String())

	_, err = ToDecimal("1,5")
	assert.ErrorIs(t, err, ErrInvalidScalar)
}

func TestToBool(t *testing.T) {
	for _, s := range []string{"true", "TRUE", "True", "y", "Y", "1"} {
		assert.True(t, ToBool(s), s)
	}
	for _, s := range []string{"", "0", "no", "N", "false", "Y ", "yes", "t"} {
		assert.False(t, ToBool(s), s)
	}
}

func TestToTimestamp(t *testing.T) {
	ts, err := ToTimestamp("1577836800123")
	require.NoError(t, err)
	assert.True(t, ts.Equal(time.Date(2020, 1, 1, 0, 0, 0, 123_000_000, time.UTC)))
	assert.Equal(t, 123_000, ts.Nanosecond()/1000, "microseconds from ms remainder")
	assert.Equal(t, time.UTC, ts.Location())

	_, err = ToTimestamp("2020-01-01")
	assert.ErrorIs(t, err, ErrInvalidScalar)
}

func TestUnescapeString(t *testing.T) {
	tests := map[string]string{
		"plain":         "plain",
		`Tennis:\ Pro`:  "Tennis: Pro",
		`a\:b\~c`:       "a:b~c",
		`r\|s\;t\,u\/v`: "r|s;t,u/v",
		`a\\b`:          `a\\b`,
		`50\\50`:        `50\\50`,
		`A\-B`:          `A\-B`,
		`Foo\.Bar`:      `Foo\.Bar`,
		`\(x\)`:         `\(x\)`,
		`C\dir`:         `C\dir`,
		`trailing\`:     `trailing\`,
		`caf\é`:         `caf\é`,
	}
	for in, want := range tests {
		assert.Equal(t, want, UnescapeString(in), in)
	}
}

func TestUnescapeRoundTrip(t *testing.T) {
	// escapar ":" num campo que já tem barra literal e desfazer devolve o original
	for _, field := range []string{`x\-y:z`, `50\\50`, `a\.b:c`} {
		escaped := strings.ReplaceAll(field, ":", `\:`)
		parts := Split(escaped+":next", ':')
		require.Len(t, parts, 2, field)
		assert.Equal(t, field, UnescapeString(parts[0]), field)
	}
}
