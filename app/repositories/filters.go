package repositories

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomerQuery identifies a customer by partial name and/or exact contact.
type CustomerQuery struct {
	Name    string
	Contact string
}

// Empty reports whether neither criterion is set.
func (q CustomerQuery) Empty() bool {
	return strings.TrimSpace(q.Name) == "" && strings.TrimSpace(q.Contact) == ""
}

// DateRange bounds a date field inclusively. Nil ends are open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// containsFold matches value as a case-insensitive substring; regex
// metacharacters in value are matched literally.
func containsFold(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(value)), Options: "i"}
}

// CustomerFilter builds the owner-scoped filter shared by the order and
// payment lookups of a customer summary. Both criteria are AND-ed.
func CustomerFilter(userID primitive.ObjectID, q CustomerQuery) bson.M {
	f := bson.M{"user": userID}
	if name := strings.TrimSpace(q.Name); name != "" {
		f["customerName"] = containsFold(name)
	}
	if contact := strings.TrimSpace(q.Contact); contact != "" {
		f["customerContact"] = contact
	}
	return f
}

// applyDateRange adds $gte/$lte bounds on field when the range has any.
func applyDateRange(f bson.M, field string, r DateRange) bson.M {
	if r.From == nil && r.To == nil {
		return f
	}
	bound := bson.M{}
	if r.From != nil {
		bound["$gte"] = *r.From
	}
	if r.To != nil {
		bound["$lte"] = *r.To
	}
	f[field] = bound
	return f
}

// DateFilter is the owner-scoped filter used by the stats endpoints.
func DateFilter(userID primitive.ObjectID, field string, r DateRange) bson.M {
	return applyDateRange(bson.M{"user": userID}, field, r)
}

// PaymentFilter narrows a payment listing.
type PaymentFilter struct {
	Range        DateRange
	CustomerName string
}

func (p PaymentFilter) bson(userID primitive.ObjectID) bson.M {
	f := DateFilter(userID, "paymentDate", p.Range)
	if p.CustomerName != "" {
		f["customerName"] = containsFold(p.CustomerName)
	}
	return f
}

// IncomeFilter narrows an income listing. IncomeType is exact, Source is a
// case-insensitive substring.
type IncomeFilter struct {
	Range      DateRange
	IncomeType string
	Source     string
}

func (p IncomeFilter) bson(userID primitive.ObjectID) bson.M {
	f := DateFilter(userID, "incomeDate", p.Range)
	if p.IncomeType != "" {
		f["incomeType"] = p.IncomeType
	}
	if p.Source != "" {
		f["source"] = containsFold(p.Source)
	}
	return f
}

// PurchaseFilter narrows a material purchase listing.
type PurchaseFilter struct {
	Range        DateRange
	SupplierName string
	ItemName     string
}

func (p PurchaseFilter) bson(userID primitive.ObjectID) bson.M {
	f := DateFilter(userID, "purchaseDate", p.Range)
	if p.SupplierName != "" {
		f["supplierName"] = containsFold(p.SupplierName)
	}
	if p.ItemName != "" {
		f["itemName"] = containsFold(p.ItemName)
	}
	return f
}

// SalaryFilter narrows a salary listing. Month and Year are exact.
type SalaryFilter struct {
	Range        DateRange
	EmployeeName string
	Month        string
	Year         int
}

func (p SalaryFilter) bson(userID primitive.ObjectID) bson.M {
	f := DateFilter(userID, "paymentDate", p.Range)
	if p.EmployeeName != "" {
		f["employeeName"] = containsFold(p.EmployeeName)
	}
	if p.Month != "" {
		f["month"] = p.Month
	}
	if p.Year != 0 {
		f["year"] = p.Year
	}
	return f
}
