package models

type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (l *CartLine) LineTotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

type CartLineView struct {
	CartLine
	LineTotal int64 `json:"line_total"`
}

type Cart struct {
	Lines     []CartLineView `json:"lines"`
	ItemCount int            `json:"item_count"`
	Subtotal  int64          `json:"subtotal"`
}

func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}

type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}
