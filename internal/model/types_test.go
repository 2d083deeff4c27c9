package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestBalanceTotalPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		balance *Balance
		want    float64
	}{
		{"nil balance", nil, 0},
		{"both fields absent", &Balance{}, 0},
		{"only balance", &Balance{Balance: floatPtr(42.5)}, 42.5},
		{"only totalBalance", &Balance{TotalBalance: floatPtr(99)}, 99},
		{"totalBalance wins", &Balance{Balance: floatPtr(42.5), TotalBalance: floatPtr(99)}, 99},
		{"explicit zero totalBalance wins", &Balance{Balance: floatPtr(42.5), TotalBalance: floatPtr(0)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.balance.Total())
		})
	}
}

func TestBalanceTotalFromWire(t *testing.T) {
	// the backend sometimes sends one field, sometimes the other
	var legacy Balance
	require.NoError(t, json.Unmarshal([]byte(`{"balance":12.3,"currency":"AZN"}`), &legacy))
	assert.Equal(t, 12.3, legacy.Total())

	var current Balance
	require.NoError(t, json.Unmarshal([]byte(`{"totalBalance":45.6,"wallets":[],"currency":"AZN"}`), &current))
	assert.Equal(t, 45.6, current.Total())
	assert.Nil(t, current.Balance)
}
