package product

import "github.com/shopspring/decimal"

// Product represents one sawn timber item in the catalog and maps to the
// `products` table. Dimensions are millimetres; Price is per piece.
type Product struct {
	ID          int             `json:"productId"`
	Name        string          `json:"productName"`
	Description string          `json:"productDesc"`
	Species     *string         `json:"species,omitempty"`
	Grade       *string         `json:"grade,omitempty"`
	LengthMM    *int            `json:"lengthMm,omitempty"`
	WidthMM     *int            `json:"widthMm,omitempty"`
	ThicknessMM *int            `json:"thicknessMm,omitempty"`
	Price       decimal.Decimal `json:"productPrice"`
	Stock       int             `json:"stock"`
	Score       int             `json:"score"`
	Category    *string         `json:"category,omitempty"`
	ImageRef    *string         `json:"productImg,omitempty"`
	CreatedAt   *string         `json:"createdAt,omitempty"`
	UpdatedAt   *string         `json:"updatedAt,omitempty"`
}

// Summary is the slice of a product the cart and wishlist embed in their
// line items.
type Summary struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"productName"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	ImageRef  *string         `json:"productImg,omitempty"`
	Species   *string         `json:"species,omitempty"`
}

// AllowedCategories contains the supported catalog categories.
var AllowedCategories = []string{
	"Structural timber",
	"Decking",
	"Cladding",
	"Flooring",
	"Poles and posts",
	"Mouldings",
	"Firewood and offcuts",
}
