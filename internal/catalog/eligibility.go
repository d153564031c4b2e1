package catalog

import "github.com/retailcore/pos-gateway/internal/models"

// AllCategories is the browse filter value meaning "no category constraint".
const AllCategories int64 = 0

// EligibleByCategory returns the products of one category in catalog order,
// or every product when the filter is AllCategories.
func (s *Snapshot) EligibleByCategory(categoryID int64) []models.Product {
	if categoryID == AllCategories {
		out := make([]models.Product, len(s.Products))
		copy(out, s.Products)

		return out
	}

	var out []models.Product

	for _, p := range s.Products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}

	return out
}

// EligibleForSupplier returns the products a supplier may appear on a purchase
// order with: those sharing the supplier's category. A supplier without a
// category constraint yields the full catalog; an unknown supplier yields
// nothing. An empty result is a real answer, and callers must disable
// item-adding affordances rather than submit against it.
func (s *Snapshot) EligibleForSupplier(supplierID int64) []models.Product {
	supplier, ok := s.Supplier(supplierID)
	if !ok {
		return nil
	}

	return s.EligibleByCategory(supplier.CategoryID)
}

// RetainSelection keeps a previously chosen product only while it remains in
// the eligible set; otherwise the selection is cleared to zero. This is the
// explicit form of the dependent-selector reset: a changed supplier or
// category must clear selections it invalidated, not merely hide them.
func RetainSelection(eligible []models.Product, productID int64) int64 {
	for _, p := range eligible {
		if p.ProductID == productID {
			return productID
		}
	}

	return 0
}
