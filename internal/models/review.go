package models

import "time"

type Aspect string

const (
	AspectCamera  Aspect = "camera"
	AspectBattery Aspect = "battery"
	AspectDisplay Aspect = "display"
	AspectDesign  Aspect = "design"
)

// Aspects is the fixed set of sub-ratings a review may carry.
var Aspects = []Aspect{AspectCamera, AspectBattery, AspectDisplay, AspectDesign}

func (a Aspect) Valid() bool {
	for _, known := range Aspects {
		if a == known {
			return true
		}
	}

	return false
}

const (
	MinRating = 1
	MaxRating = 5

	// MaxPhotosPerReview bounds Review.Photos regardless of configuration.
	MaxPhotosPerReview = 5
)

type Review struct {
	ID            int64          `json:"id"`
	ProductID     int64          `json:"product_id"`
	Rating        int            `json:"rating"`
	Comment       string         `json:"comment"`
	Author        string         `json:"author"`
	CreatedAt     time.Time      `json:"created_at"`
	HelpfulCount  int            `json:"helpful_count"`
	Photos        []string       `json:"photos,omitempty"`
	AspectRatings map[Aspect]int `json:"aspect_ratings,omitempty"`
}

type RatingSummary struct {
	Average      float64     `json:"average"`
	Total        int         `json:"total"`
	Distribution map[int]int `json:"distribution,omitempty"`
}

type ReviewSort string

const (
	ReviewSortRecent  ReviewSort = "recent"
	ReviewSortHelpful ReviewSort = "helpful"
	ReviewSortRating  ReviewSort = "rating"
)

type ReviewListOptions struct {
	Sort   ReviewSort
	Rating int
}

type CreateReviewRequest struct {
	Rating        int            `json:"rating"`
	Comment       string         `json:"comment"`
	Author        string         `json:"author" validate:"max=80"`
	AspectRatings map[string]int `json:"aspect_ratings"`
}

type ReviewList struct {
	Reviews []Review      `json:"reviews"`
	Summary RatingSummary `json:"summary"`
}
