package money_test

import (
	"testing"

	"github.com/jrsteele09/pos-ledger-sync/money"
	"github.com/stretchr/testify/require"
)

func TestMoney_Decimal(t *testing.T) {
	require.Equal(t, 50.0, money.FromCents(5000, "aud").Decimal())
	require.Equal(t, 0.99, money.FromCents(99, "AUD").Decimal())
}

func TestMoney_String(t *testing.T) {
	tests := []struct {
		name string
		m    money.Money
		want string
	}{
		{"whole", money.FromCents(5000, "aud"), "50.00 AUD"},
		{"cents", money.FromCents(1205, "USD"), "12.05 USD"},
		{"negative", money.FromCents(-250, "USD"), "-2.50 USD"},
		{"no currency", money.Money{Amount: 7}, "0.07"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.m.String())
		})
	}
}
