package catalog

import (
	"sync"
	"time"

	"github.com/retailcore/pos-gateway/internal/models"
)

// Snapshot is the read-only view of the catalog loaded at session start.
// Carts and purchase-order drafts resolve products against one snapshot;
// a submission that changes stock upstream invalidates it.
type Snapshot struct {
	Products   []models.Product  `json:"products"`
	Categories []models.Category `json:"categories"`
	Suppliers  []models.Supplier `json:"suppliers"`
	Customers  []models.Customer `json:"customers"`
	LoadedAt   time.Time         `json:"loaded_at"`

	indexOnce   sync.Once
	productMap  map[int64]models.Product
	supplierMap map[int64]models.Supplier
	customerMap map[int64]models.Customer
}

func NewSnapshot(products []models.Product, categories []models.Category, suppliers []models.Supplier, customers []models.Customer) *Snapshot {
	return &Snapshot{
		Products:   products,
		Categories: categories,
		Suppliers:  suppliers,
		Customers:  customers,
		LoadedAt:   time.Now(),
	}
}

// buildIndex runs lazily so snapshots rebuilt from the cache (plain JSON)
// index themselves on first lookup.
func (s *Snapshot) buildIndex() {
	s.indexOnce.Do(func() {
		s.productMap = make(map[int64]models.Product, len(s.Products))
		for _, p := range s.Products {
			s.productMap[p.ProductID] = p
		}

		s.supplierMap = make(map[int64]models.Supplier, len(s.Suppliers))
		for _, sup := range s.Suppliers {
			s.supplierMap[sup.SupplierID] = sup
		}

		s.customerMap = make(map[int64]models.Customer, len(s.Customers))
		for _, c := range s.Customers {
			s.customerMap[c.CustomerID] = c
		}
	})
}

func (s *Snapshot) Product(id int64) (models.Product, bool) {
	s.buildIndex()
	p, ok := s.productMap[id]

	return p, ok
}

func (s *Snapshot) Supplier(id int64) (models.Supplier, bool) {
	s.buildIndex()
	sup, ok := s.supplierMap[id]

	return sup, ok
}

func (s *Snapshot) Customer(id int64) (models.Customer, bool) {
	s.buildIndex()
	c, ok := s.customerMap[id]

	return c, ok
}
