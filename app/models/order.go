package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses.
const (
	OrderPending    = "pending"
	OrderInProgress = "in_progress"
	OrderReady      = "ready"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// Order takers.
const (
	TakerOwner    = "owner"
	TakerEmployee = "employee"
)

// Order is a customer order. AdvancePayment is not constrained to be <= Price.
type Order struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User               primitive.ObjectID `bson:"user" json:"user"`
	OrderTaker         string             `bson:"orderTaker" json:"orderTaker"`
	OrderTakerName     string             `bson:"orderTakerName,omitempty" json:"orderTakerName,omitempty"`
	CustomerName       string             `bson:"customerName" json:"customerName"`
	CustomerContact    string             `bson:"customerContact" json:"customerContact"`
	CustomerLocation   string             `bson:"customerLocation,omitempty" json:"customerLocation,omitempty"`
	Product            string             `bson:"product" json:"product"`
	Quantity           int                `bson:"quantity" json:"quantity"`
	Measurements       string             `bson:"measurements,omitempty" json:"measurements,omitempty"`
	Specifications     string             `bson:"specifications,omitempty" json:"specifications,omitempty"`
	OrderDate          time.Time          `bson:"orderDate" json:"orderDate"`
	DeliveryDate       time.Time          `bson:"deliveryDate" json:"deliveryDate"`
	ActualDeliveryDate *time.Time         `bson:"actualDeliveryDate,omitempty" json:"actualDeliveryDate,omitempty"`
	Price              float64            `bson:"price" json:"price"`
	AdvancePayment     float64            `bson:"advancePayment" json:"advancePayment"`
	Status             string             `bson:"status" json:"status"`
	Notes              string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Version            int64              `bson:"version" json:"version"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RemainingPayment is price minus advance. It is derived and never stored.
func (o Order) RemainingPayment() float64 {
	return decimal.NewFromFloat(o.Price).Sub(decimal.NewFromFloat(o.AdvancePayment)).InexactFloat64()
}

func (o Order) MarshalJSON() ([]byte, error) {
	type plain Order
	return json.Marshal(struct {
		plain
		RemainingPayment float64 `json:"remainingPayment"`
	}{plain(o), o.RemainingPayment()})
}

// OrderRef is the slice of an order shown when a payment or income resolves
// its relatedOrder.
type OrderRef struct {
	ID           primitive.ObjectID `json:"_id"`
	CustomerName string             `json:"customerName"`
	Product      string             `json:"product"`
	Price        float64            `json:"price"`
}

// Ref returns the populated view of o.
func (o Order) Ref() *OrderRef {
	return &OrderRef{ID: o.ID, CustomerName: o.CustomerName, Product: o.Product, Price: o.Price}
}
