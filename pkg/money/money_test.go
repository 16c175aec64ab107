package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Programmer60/BorrowEase-sub002/pkg/money"
)

func TestNewCurrency(t *testing.T) {
	c, err := money.NewCurrency("INR")
	require.NoError(t, err)
	assert.Equal(t, "INR", c.Code())

	for _, code := range []string{"", "inr", "IN", "INRR", "IN1"} {
		_, err := money.NewCurrency(code)
		assert.Error(t, err, code)
	}
}

func TestNewFromString(t *testing.T) {
	m, err := money.NewFromString("25000.50", "INR")
	require.NoError(t, err)
	assert.Equal(t, "25000.50 INR", m.String())

	_, err = money.NewFromString("abc", "INR")
	assert.Error(t, err)

	_, err = money.NewFromString("10", "rupees")
	assert.Error(t, err)
}

func TestAdd(t *testing.T) {
	a := money.New(decimal.NewFromInt(1000), money.INR)
	b := money.New(decimal.NewFromInt(250), money.INR)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Equal(money.New(decimal.NewFromInt(1250), money.INR)))
	assert.True(t, a.Equal(money.New(decimal.NewFromInt(1000), money.INR)), "operands are immutable")

	_, err = a.Add(money.New(decimal.NewFromInt(1), money.USD))
	assert.Error(t, err)
}

func TestPredicates(t *testing.T) {
	assert.True(t, money.Zero(money.INR).IsZero())
	assert.True(t, money.New(decimal.NewFromInt(-5), money.INR).IsNegative())
	assert.False(t, money.New(decimal.NewFromInt(5), money.INR).IsNegative())
}
