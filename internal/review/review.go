package review

// Review is a customer's rating of a product, score 1 to 5.
type Review struct {
	ReviewID     int    `json:"reviewId"`
	ProductID    int    `json:"productId"`
	UserID       int    `json:"userId"`
	ReviewerName string `json:"reviewerName"`
	Score        int    `json:"score"`
	Comment      string `json:"comment,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
}
