package address

// Address is a saved delivery address. Customers keep a few of these and
// copy one into the checkout form when choosing courier delivery.
type Address struct {
	AddressID  int    `json:"addressId"`
	UserID     int    `json:"userId"`
	Label      string `json:"label,omitempty"`
	Line       string `json:"line"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}
