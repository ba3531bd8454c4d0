package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Income types.
const (
	IncomeOrderPayment   = "order_payment"
	IncomeAdvancePayment = "advance_payment"
	IncomeFullPayment    = "full_payment"
	IncomeOther          = "other_income"
	IncomeRefund         = "refund"
	IncomeMisc           = "other"
)

type Income struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	User          primitive.ObjectID  `bson:"user" json:"user"`
	IncomeDate    time.Time           `bson:"incomeDate" json:"incomeDate"`
	Source        string              `bson:"source" json:"source"`
	IncomeType    string              `bson:"incomeType" json:"incomeType"`
	Amount        float64             `bson:"amount" json:"amount"`
	PayerName     string              `bson:"payerName,omitempty" json:"payerName,omitempty"`
	PayerContact  string              `bson:"payerContact,omitempty" json:"payerContact,omitempty"`
	PaymentMethod string              `bson:"paymentMethod" json:"paymentMethod"`
	RelatedOrder  *primitive.ObjectID `bson:"relatedOrder" json:"relatedOrder"`
	TransactionID string              `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Description   string              `bson:"description,omitempty" json:"description,omitempty"`
	Notes         string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// IncomeView is an income with its relatedOrder resolved.
type IncomeView struct {
	Income
	RelatedOrder *OrderRef `json:"relatedOrder"`
}
