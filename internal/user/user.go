package user

// Roles stored on the users row. Admin unlocks the back-office routes.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID            int    `json:"userId"`
	Email         string `json:"email"`
	Password      string `json:"password,omitempty"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Phone         string `json:"phone"`
	Role          string `json:"role,omitempty"`
	MainAddressID *int   `json:"mainAddressId,omitempty"`

	// Cart maps productID -> quantity. Quantities are always >= 1; a drop
	// to zero removes the entry (see internal/cart).
	Cart map[int]int `json:"cart,omitempty"`

	OrderIDs           []int  `json:"orderId,omitempty"`
	WishlistProductIDs []int  `json:"wishlistProductId,omitempty"`
	CreatedAt          string `json:"createdAt,omitempty"`
	UpdatedAt          string `json:"updatedAt,omitempty"`
}

// FullName joins first and last name for checkout prefill.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
