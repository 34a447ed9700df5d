package models

import "time"

// Review is a single customer review embedded in a product document.
type Review struct {
	ID        string    `json:"_id" bson:"_id"`
	User      string    `json:"user" bson:"user"`
	Name      string    `json:"name" bson:"name"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Product represents a product in the store. Reviews, images, sizes and colors
// are stored inline with the product so a product is always written as a whole.
type Product struct {
	ID              string    `json:"_id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	User            string    `json:"user" gorm:"column:user_id;type:varchar(36)" bson:"user"`
	Title           string    `json:"title" gorm:"index" bson:"title"`
	Description     string    `json:"description" bson:"description"`
	LongDescription string    `json:"longDescription" bson:"longDescription"`
	Images          []string  `json:"images" gorm:"serializer:json;type:text" bson:"images"`
	Price           float64   `json:"price" gorm:"index" bson:"price"`
	CountInStock    int       `json:"countInStock" bson:"countInStock"`
	Category        string    `json:"category" gorm:"index" bson:"category"`
	Sizes           []string  `json:"sizes" gorm:"serializer:json;type:text" bson:"sizes"`
	Colors          []string  `json:"colors" gorm:"serializer:json;type:text" bson:"colors"`
	Featured        bool      `json:"featured" gorm:"index" bson:"featured"`
	Rating          float64   `json:"rating" bson:"rating"`
	NumReviews      int       `json:"numReviews" bson:"numReviews"`
	Reviews         []Review  `json:"reviews" gorm:"serializer:json;type:text" bson:"reviews"`
	SKU             string    `json:"sku" gorm:"uniqueIndex;type:varchar(64)" bson:"sku"`
	CreatedAt       time.Time `json:"createdAt" gorm:"index" bson:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
}

// HasReviewFrom reports whether userID already reviewed the product.
func (p *Product) HasReviewFrom(userID string) bool {
	for _, r := range p.Reviews {
		if r.User == userID {
			return true
		}
	}
	return false
}

// RecalculateRating recomputes NumReviews and Rating from the embedded reviews.
func (p *Product) RecalculateRating() {
	p.NumReviews = len(p.Reviews)
	if p.NumReviews == 0 {
		p.Rating = 0
		return
	}
	sum := 0
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	p.Rating = float64(sum) / float64(p.NumReviews)
}
