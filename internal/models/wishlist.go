package models

type Wishlist struct {
	Items []Product `json:"items"`
	Count int       `json:"count"`
}

type AddToWishlistRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}
