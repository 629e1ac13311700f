package masterdata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type stubRepo struct {
	vendors      []Vendor
	destinations []Destination
}

func (s *stubRepo) ActiveVendors(ctx context.Context) ([]Vendor, error) {
	return append([]Vendor(nil), s.vendors...), nil
}

func (s *stubRepo) ActiveDestinations(ctx context.Context) ([]Destination, error) {
	return append([]Destination(nil), s.destinations...), nil
}

func (s *stubRepo) GetVendor(ctx context.Context, id int64) (Vendor, error) {
	for _, v := range s.vendors {
		if v.ID == id {
			return v, nil
		}
	}
	return Vendor{}, ErrNotFound
}

func TestDataForNewSortsNamesCaseInsensitively(t *testing.T) {
	repo := &stubRepo{
		vendors: []Vendor{
			{ID: 1, Name: "zeta Supply"},
			{ID: 2, Name: "Acme Corp"},
			{ID: 3, Name: "beta Goods"},
		},
		destinations: []Destination{
			{ID: 1, Name: "warehouse B"},
			{ID: 2, Name: "Warehouse A"},
		},
	}
	svc := NewService(repo, language.English)

	data, err := svc.DataForNew(context.Background())
	require.NoError(t, err)

	require.Equal(t, []int64{2, 3, 1}, vendorIDs(data.Vendors))
	require.Equal(t, []int64{2, 1}, destinationIDs(data.Destinations))
}

func TestDataForNewEmptyListsAreNotNil(t *testing.T) {
	svc := NewService(&stubRepo{}, language.Und)

	data, err := svc.DataForNew(context.Background())
	require.NoError(t, err)
	require.NotNil(t, data.Vendors)
	require.NotNil(t, data.Destinations)
	require.Empty(t, data.Vendors)
}

func TestVendorLookup(t *testing.T) {
	repo := &stubRepo{vendors: []Vendor{{ID: 7, Name: "Acme"}}}
	svc := NewService(repo, language.English)

	v, err := svc.Vendor(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "Acme", v.Name)

	_, err = svc.Vendor(context.Background(), 8)
	require.ErrorIs(t, err, ErrNotFound)
}

func vendorIDs(vs []Vendor) []int64 {
	ids := make([]int64, len(vs))
	for i, v := range vs {
		ids[i] = v.ID
	}
	return ids
}

func destinationIDs(ds []Destination) []int64 {
	ids := make([]int64, len(ds))
	for i, d := range ds {
		ids[i] = d.ID
	}
	return ids
}
