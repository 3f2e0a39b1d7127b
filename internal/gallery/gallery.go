package gallery

// Item is one image in the showroom gallery strip on the storefront.
type Item struct {
	GalleryID int     `json:"galleryId"`
	ImageRef  string  `json:"imageRef"`
	Link      *string `json:"link,omitempty"`
	Caption   *string `json:"caption,omitempty"`
	Ord       int     `json:"ord"`
}
