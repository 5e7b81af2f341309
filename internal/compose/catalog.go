package compose

// Product is a single curated gift entry rendered on the guide's second page.
type Product struct {
	Name     string
	Price    string
	ImageRef string
}

// Catalog returns the curated gift selection. The catalog is fixed: every
// guide shows the same products so the document differs only in branding.
func Catalog() []Product {
	return []Product{
		{Name: "Insulated Travel Tumbler", Price: "$34", ImageRef: "tumbler"},
		{Name: "Wireless Charging Pad", Price: "$49", ImageRef: "charger"},
		{Name: "Heavyweight Knit Beanie", Price: "$28", ImageRef: "beanie"},
		{Name: "Leather Desk Organizer", Price: "$65", ImageRef: "organizer"},
		{Name: "Bluetooth Speaker Mini", Price: "$79", ImageRef: "speaker"},
		{Name: "Gourmet Snack Crate", Price: "$58", ImageRef: "snacks"},
	}
}
