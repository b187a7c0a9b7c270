package units

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		amount   int64
		decimals int32
		want     string
	}{
		{1_500_000, 6, "1.5"},
		{19_752, 0, "19752"},
		{1, 9, "0.000000001"},
		{0, 9, "0"},
		{123_456_789, 3, "123456.789"},
	}
	for _, tc := range cases {
		got, err := Format(big.NewInt(tc.amount), tc.decimals)
		require.NoError(t, err)
		require.Equal(t, tc.want, got)
	}

	_, err := Format(big.NewInt(1), -1)
	require.ErrorIs(t, err, ErrInvalidDecimals)
	_, err = Format(nil, 6)
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestParse(t *testing.T) {
	t.Parallel()

	got, err := Parse("1.5", 6)
	require.NoError(t, err)
	require.Equal(t, "1500000", got.String())

	got, err = Parse("0.000000001", 9)
	require.NoError(t, err)
	require.Equal(t, "1", got.String())

	got, err = Parse("42", 0)
	require.NoError(t, err)
	require.Equal(t, "42", got.String())

	_, err = Parse("0.0000001", 6)
	require.ErrorIs(t, err, ErrTooPrecise)

	_, err = Parse("-1", 6)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = Parse("abc", 6)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = Parse("1", MaxDecimals+1)
	require.ErrorIs(t, err, ErrInvalidDecimals)
}

func TestParseFormatRoundTrip(t *testing.T) {
	t.Parallel()

	amount, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)

	s, err := Format(amount, 18)
	require.NoError(t, err)
	require.Equal(t, "123456789012.34567890123456789", s)

	back, err := Parse(s, 18)
	require.NoError(t, err)
	require.Zero(t, amount.Cmp(back))
}
