package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment methods accepted for customer payments.
const (
	MethodCash         = "cash"
	MethodBankTransfer = "bank_transfer"
	MethodUPI          = "upi"
	MethodCard         = "card"
	MethodCheque       = "cheque"
	MethodCredit       = "credit"
	MethodOther        = "other"
)

// OriginAdvance marks a payment derived from an order's advance. Payments
// entered by hand carry no origin.
const OriginAdvance = "advance"

// Payment is money received from a customer. RelatedOrder is a weak
// reference; nothing enforces that the order exists.
type Payment struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	User            primitive.ObjectID  `bson:"user" json:"user"`
	CustomerName    string              `bson:"customerName" json:"customerName"`
	CustomerContact string              `bson:"customerContact" json:"customerContact"`
	CustomerEmail   string              `bson:"customerEmail,omitempty" json:"customerEmail,omitempty"`
	PaymentDate     time.Time           `bson:"paymentDate" json:"paymentDate"`
	Amount          float64             `bson:"amount" json:"amount"`
	PaymentMethod   string              `bson:"paymentMethod" json:"paymentMethod"`
	RelatedOrder    *primitive.ObjectID `bson:"relatedOrder" json:"relatedOrder"`
	TransactionID   string              `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Notes           string              `bson:"notes,omitempty" json:"notes,omitempty"`
	Origin          string              `bson:"origin,omitempty" json:"origin,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// PaymentView is a payment with its relatedOrder resolved.
type PaymentView struct {
	Payment
	RelatedOrder *OrderRef `json:"relatedOrder"`
}
