package masterdata

import (
	"context"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// RepositoryPort describes repository operations used by Service.
type RepositoryPort interface {
	ActiveVendors(ctx context.Context) ([]Vendor, error)
	ActiveDestinations(ctx context.Context) ([]Destination, error)
	GetVendor(ctx context.Context, id int64) (Vendor, error)
}

// Service serves the reference lists shown when an order is created.
type Service struct {
	repo RepositoryPort
	coll *collate.Collator
}

// NewService constructs the master data service. Names sort with a
// case-insensitive locale collator so "ärmel" and "Zoo" land where a
// human expects them, not where their bytes do.
func NewService(repo RepositoryPort, tag language.Tag) *Service {
	if tag == language.Und {
		tag = language.English
	}
	return &Service{
		repo: repo,
		coll: collate.New(tag, collate.IgnoreCase),
	}
}

// DataForNew is everything the order creation screen needs up front.
type DataForNew struct {
	Vendors      []Vendor      `json:"vendors"`
	Destinations []Destination `json:"destinations"`
}

// DataForNew returns active vendors and destinations, name-ordered.
func (s *Service) DataForNew(ctx context.Context) (DataForNew, error) {
	vendors, err := s.repo.ActiveVendors(ctx)
	if err != nil {
		return DataForNew{}, err
	}
	destinations, err := s.repo.ActiveDestinations(ctx)
	if err != nil {
		return DataForNew{}, err
	}

	s.coll.Sort(vendorsByName(vendors))
	s.coll.Sort(destinationsByName(destinations))

	if vendors == nil {
		vendors = []Vendor{}
	}
	if destinations == nil {
		destinations = []Destination{}
	}
	return DataForNew{Vendors: vendors, Destinations: destinations}, nil
}

// Vendor fetches one vendor.
func (s *Service) Vendor(ctx context.Context, id int64) (Vendor, error) {
	return s.repo.GetVendor(ctx, id)
}

type vendorsByName []Vendor

func (v vendorsByName) Len() int           { return len(v) }
func (v vendorsByName) Swap(i, j int)      { v[i], v[j] = v[j], v[i] }
func (v vendorsByName) Bytes(i int) []byte { return []byte(v[i].Name) }

type destinationsByName []Destination

func (d destinationsByName) Len() int           { return len(d) }
func (d destinationsByName) Swap(i, j int)      { d[i], d[j] = d[j], d[i] }
func (d destinationsByName) Bytes(i int) []byte { return []byte(d[i].Name) }
