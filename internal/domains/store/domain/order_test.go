package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition_Forward(t *testing.T) {
	require.NoError(t, CanTransition(StatusPending, StatusApproved))
	require.NoError(t, CanTransition(StatusPending, StatusRejected))
	require.NoError(t, CanTransition(StatusApproved, StatusShipped))
	require.NoError(t, CanTransition(StatusShipped, StatusDelivered))
	require.NoError(t, CanTransition(StatusDelivered, StatusReturned))
}

func TestCanTransition_NeverBackToPending(t *testing.T) {
	for _, from := range []Status{StatusApproved, StatusShipped, StatusDelivered, StatusReturned} {
		assert.ErrorIs(t, CanTransition(from, StatusPending), ErrStatusRegression, "from %s", from)
	}
}

func TestCanTransition_NoRegression(t *testing.T) {
	assert.ErrorIs(t, CanTransition(StatusDelivered, StatusShipped), ErrStatusRegression)
	assert.ErrorIs(t, CanTransition(StatusApproved, StatusApproved), ErrStatusRegression)
}

func TestCanTransition_UnknownStatus(t *testing.T) {
	assert.ErrorIs(t, CanTransition(StatusPending, Status("Lost")), ErrInvalidStatus)
}

func TestParseCents(t *testing.T) {
	cases := []struct {
		in   string
		want Cents
	}{
		{"49.99", 4999},
		{"12", 1200},
		{"0.5", 50},
		{"0.05", 5},
		{"-3.25", -325},
	}
	for _, tc := range cases {
		got, err := ParseCents(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseCents_Rejects(t *testing.T) {
	for _, in := range []string{"", "abc", "1.999", "1.2.3"} {
		_, err := ParseCents(in)
		assert.Error(t, err, in)
	}
}

func TestCentsString(t *testing.T) {
	assert.Equal(t, "49.99", Cents(4999).String())
	assert.Equal(t, "0.05", Cents(5).String())
	assert.Equal(t, "-3.25", Cents(-325).String())
}

func TestCentsMul(t *testing.T) {
	assert.Equal(t, Cents(14997), Cents(4999).Mul(3))
}
