package cpamm

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReservePair_Valid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		pair ReservePair
		want bool
	}{
		{"ok", ReservePair{big.NewInt(1), big.NewInt(1), 0}, true},
		{"max_fee", ReservePair{big.NewInt(1), big.NewInt(1), 9_999}, true},
		{"fee_100pct", ReservePair{big.NewInt(1), big.NewInt(1), 10_000}, false},
		{"zero_in", ReservePair{big.NewInt(0), big.NewInt(100), 0}, false},
		{"zero_out", ReservePair{big.NewInt(100), big.NewInt(0), 0}, false},
		{"negative", ReservePair{big.NewInt(-5), big.NewInt(100), 0}, false},
		{"nil_in", ReservePair{nil, big.NewInt(100), 0}, false},
		{"nil_out", ReservePair{big.NewInt(100), nil, 0}, false},
		{"empty", ReservePair{}, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.pair.Valid())
		})
	}
}
