package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultUnit is used when a purchase omits its unit.
const DefaultUnit = "pieces"

type MaterialPurchase struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User            primitive.ObjectID `bson:"user" json:"user"`
	PurchaseDate    time.Time          `bson:"purchaseDate" json:"purchaseDate"`
	ItemName        string             `bson:"itemName" json:"itemName"`
	ItemCategory    string             `bson:"itemCategory,omitempty" json:"itemCategory,omitempty"`
	Quantity        float64            `bson:"quantity" json:"quantity"`
	Unit            string             `bson:"unit" json:"unit"`
	SupplierName    string             `bson:"supplierName" json:"supplierName"`
	SupplierContact string             `bson:"supplierContact,omitempty" json:"supplierContact,omitempty"`
	SupplierEmail   string             `bson:"supplierEmail,omitempty" json:"supplierEmail,omitempty"`
	CostPerUnit     float64            `bson:"costPerUnit" json:"costPerUnit"`
	TotalCost       float64            `bson:"totalCost" json:"totalCost"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	InvoiceNumber   string             `bson:"invoiceNumber,omitempty" json:"invoiceNumber,omitempty"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
