package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Salary struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User            primitive.ObjectID `bson:"user" json:"user"`
	PaymentDate     time.Time          `bson:"paymentDate" json:"paymentDate"`
	EmployeeName    string             `bson:"employeeName" json:"employeeName"`
	EmployeeID      string             `bson:"employeeId,omitempty" json:"employeeId,omitempty"`
	EmployeeContact string             `bson:"employeeContact,omitempty" json:"employeeContact,omitempty"`
	EmployeeEmail   string             `bson:"employeeEmail,omitempty" json:"employeeEmail,omitempty"`
	Amount          float64            `bson:"amount" json:"amount"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	SalaryPeriod    string             `bson:"salaryPeriod,omitempty" json:"salaryPeriod,omitempty"`
	Month           string             `bson:"month,omitempty" json:"month,omitempty"`
	Year            int                `bson:"year,omitempty" json:"year,omitempty"`
	TransactionID   string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
