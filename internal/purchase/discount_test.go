package purchase

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiscountSetModeResetsBothFields(t *testing.T) {
	d := Discount{Mode: DiscountModePercent}
	d = d.CommitValue("10", 500)
	require.Equal(t, 10.0, d.Percent)

	d = d.SetMode(DiscountModeAmount)
	require.Equal(t, DiscountModeAmount, d.Mode)
	require.Zero(t, d.Percent)
	require.Zero(t, d.Amount)
	require.Zero(t, d.Value)
}

func TestDiscountCommitValueExclusivity(t *testing.T) {
	d := Discount{Mode: DiscountModePercent}

	d = d.CommitValue("25", 1000)
	require.True(t, d.Exclusive())
	require.Equal(t, 25.0, d.Percent)
	require.Zero(t, d.Amount)
	require.Equal(t, 25.0, d.Value)

	d = d.SetMode(DiscountModeAmount).CommitValue("125.5", 1000)
	require.True(t, d.Exclusive())
	require.Zero(t, d.Percent)
	require.Equal(t, 125.5, d.Amount)
	require.Equal(t, 125.5, d.Value)
}

func TestDiscountPercentClampedToHundred(t *testing.T) {
	d := Discount{Mode: DiscountModePercent}.CommitValue("250", 100)
	require.Equal(t, 100.0, d.Percent)
}

func TestDiscountAmountCappedBySubtotal(t *testing.T) {
	d := Discount{Mode: DiscountModeAmount}.CommitValue("500", 120)
	require.Equal(t, 120.0, d.Amount)
}

func TestDiscountCommitUnparsableFallsBackToZero(t *testing.T) {
	d := Discount{Mode: DiscountModeAmount}.CommitValue("n/a", 120)
	require.Zero(t, d.Amount)
	require.Zero(t, d.Value)
}

func TestDiscountFromHeaderAmountWins(t *testing.T) {
	// Legacy snapshots may carry both representations; the amount wins for
	// display.
	d := DiscountFromHeader(OrderHeader{DiscountPercent: 10, DiscountAmount: 42})
	require.Equal(t, DiscountModeAmount, d.Mode)
	require.Equal(t, 42.0, d.Value)

	d = DiscountFromHeader(OrderHeader{DiscountPercent: 10})
	require.Equal(t, DiscountModePercent, d.Mode)
	require.Equal(t, 10.0, d.Value)
}

func TestDiscountApply(t *testing.T) {
	h := OrderHeader{DiscountPercent: 7}
	d := DiscountFromHeader(h).SetMode(DiscountModeAmount).CommitValue("30", 90)
	h = d.Apply(h)
	require.Zero(t, h.DiscountPercent)
	require.Equal(t, 30.0, h.DiscountAmount)
}
