package purchase

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPartitionKeepsRemovedLinesWithReceipts(t *testing.T) {
	lines := []OrderLine{
		{VariantID: 1},
		{VariantID: 2, IsRemoved: true, QtyReceived: 3},
		{VariantID: 3, IsRemoved: true},
		{VariantID: 4},
	}

	visible, removed := Partition(lines)

	require.Len(t, visible, 3)
	require.Equal(t, int64(1), visible[0].VariantID)
	require.Equal(t, int64(4), visible[1].VariantID)
	require.Equal(t, int64(2), visible[2].VariantID)

	require.Len(t, removed, 1)
	require.Equal(t, int64(3), removed[0].VariantID)
}

func TestPartitionRenumbersBothSets(t *testing.T) {
	lines := []OrderLine{
		{VariantID: 1, Position: 9},
		{VariantID: 2, IsRemoved: true, Position: 4},
	}

	visible, removed := Partition(lines)
	require.Equal(t, 1, visible[0].Position)
	require.Equal(t, 1, removed[0].Position)
}

func TestRenumberLeavesInputUntouched(t *testing.T) {
	in := []OrderLine{{VariantID: 1}, {VariantID: 2}}
	out := Renumber(in)
	require.Zero(t, in[0].Position)
	require.Equal(t, 1, out[0].Position)
	require.Equal(t, 2, out[1].Position)
}
