package category

// Category is one storefront navigation entry, ordered by Ord descending.
type Category struct {
	CategoryID int     `json:"categoryId"`
	Name       string  `json:"categoryName"`
	ImageRef   *string `json:"categoryImg,omitempty"`
	Ord        int     `json:"ord"`
}
