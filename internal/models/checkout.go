package models

import (
	"time"

	"github.com/google/uuid"
)

type CheckoutStep int

const (
	StepShipping CheckoutStep = iota + 1
	StepPayment
	StepReview
)

type PaymentMethod string

const (
	PaymentCard       PaymentMethod = "card"
	PaymentUPI        PaymentMethod = "upi"
	PaymentNetBanking PaymentMethod = "netbanking"
	PaymentCOD        PaymentMethod = "cod"
)

type PaymentOption struct {
	ID          PaymentMethod `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
}

var PaymentOptions = []PaymentOption{
	{ID: PaymentCard, Name: "Credit/Debit Card", Description: "Pay securely with your card"},
	{ID: PaymentUPI, Name: "UPI", Description: "Google Pay, PhonePe, Paytm & more"},
	{ID: PaymentNetBanking, Name: "Net Banking", Description: "All major banks available"},
	{ID: PaymentCOD, Name: "Cash on Delivery", Description: "Pay when you receive"},
}

type ShippingDetails struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,numeric,min=10,max=15"`
	Address string `json:"address" validate:"required,max=300"`
	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state" validate:"required,max=100"`
	Pincode string `json:"pincode" validate:"required,numeric,len=6"`
}

type PaymentDetails struct {
	Method     PaymentMethod `json:"method" validate:"required,oneof=card upi netbanking cod"`
	CardNumber string        `json:"card_number,omitempty" validate:"omitempty,numeric,min=12,max=19"`
	ExpiryDate string        `json:"expiry_date,omitempty" validate:"omitempty,len=5"`
	CVV        string        `json:"cvv,omitempty" validate:"omitempty,numeric,min=3,max=4"`
	UPIID      string        `json:"upi_id,omitempty" validate:"omitempty,contains=@"`
}

// Masked drops the sensitive card fields before the details are kept in
// the session.
func (p PaymentDetails) Masked() PaymentDetails {
	if p.CardNumber != "" && len(p.CardNumber) > 4 {
		p.CardNumber = "****" + p.CardNumber[len(p.CardNumber)-4:]
	}
	p.CVV = ""

	return p
}

type CheckoutState struct {
	Step     CheckoutStep     `json:"step"`
	Shipping *ShippingDetails `json:"shipping,omitempty"`
	Payment  *PaymentDetails  `json:"payment,omitempty"`
}

type CheckoutView struct {
	State   CheckoutState   `json:"state"`
	Cart    Cart            `json:"cart"`
	Options []PaymentOption `json:"payment_options"`
}

type OrderConfirmation struct {
	OrderID       uuid.UUID       `json:"order_id"`
	Lines         []CartLineView  `json:"lines"`
	ItemCount     int             `json:"item_count"`
	Total         int64           `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Shipping      ShippingDetails `json:"shipping"`
	Reward        string          `json:"reward"`
	PlacedAt      time.Time       `json:"placed_at"`
}
