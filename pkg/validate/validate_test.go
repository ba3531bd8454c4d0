package validate_test

import (
	"testing"
	"time"

	"github.com/shashiranjanraj/boutique/pkg/validate"
)

type paymentInput struct {
	CustomerName  string   `json:"customerName"  validate:"required,max=10"`
	Email         string   `json:"customerEmail" validate:"omitempty,email"`
	Amount        *float64 `json:"amount"        validate:"required,gte=0"`
	PaymentMethod string   `json:"paymentMethod" validate:"required,oneof=cash upi card"`
	PaymentDate   string   `json:"paymentDate"   validate:"omitempty,date"`
	RelatedOrder  string   `json:"relatedOrder"  validate:"omitempty,objectid"`
}

func amount(f float64) *float64 { return &f }

func TestValidInput(t *testing.T) {
	errs := validate.Struct(paymentInput{
		CustomerName:  "Asha",
		Amount:        amount(0),
		PaymentMethod: "upi",
		PaymentDate:   "2024-03-01",
		RelatedOrder:  "65f1c0a2b3c4d5e6f7a8b9c0",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFailsUseJSONNames(t *testing.T) {
	errs := validate.Struct(paymentInput{})
	if _, ok := errs["customerName"]; !ok {
		t.Errorf("expected customerName to be required, got %v", errs)
	}
	if _, ok := errs["amount"]; !ok {
		t.Errorf("expected nil amount to be required, got %v", errs)
	}
	if msg := errs["paymentMethod"]; msg != "The paymentMethod field is required." {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestNegativeAmount(t *testing.T) {
	errs := validate.Struct(paymentInput{CustomerName: "A", Amount: amount(-1), PaymentMethod: "cash"})
	if _, ok := errs["amount"]; !ok {
		t.Errorf("expected amount error, got %v", errs)
	}
}

func TestOneOfAndMax(t *testing.T) {
	errs := validate.Struct(paymentInput{CustomerName: "a very long name", Amount: amount(1), PaymentMethod: "barter"})
	if _, ok := errs["paymentMethod"]; !ok {
		t.Error("expected paymentMethod error")
	}
	if _, ok := errs["customerName"]; !ok {
		t.Error("expected customerName length error")
	}
}

func TestCustomRules(t *testing.T) {
	errs := validate.Struct(paymentInput{
		CustomerName:  "A",
		Amount:        amount(1),
		PaymentMethod: "cash",
		PaymentDate:   "yesterday",
		RelatedOrder:  "not-an-id",
	})
	if _, ok := errs["paymentDate"]; !ok {
		t.Error("expected paymentDate error")
	}
	if _, ok := errs["relatedOrder"]; !ok {
		t.Error("expected relatedOrder error")
	}
}

func TestNonStructIsIgnored(t *testing.T) {
	if errs := validate.Struct(42); validate.HasErrors(errs) {
		t.Errorf("expected no errors for non-struct, got %v", errs)
	}
}

func TestParseDate(t *testing.T) {
	cases := map[string]time.Time{
		"2024-03-01":                time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		"2024-03-01T10:30:00.000Z":  time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		"2024-03-01T16:00:00+05:30": time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := validate.ParseDate(in)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", in, err)
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := validate.ParseDate("soon"); err == nil {
		t.Error("expected error for unparseable date")
	}
}

type linkInput struct {
	RelatedOrder *string `json:"relatedOrder" validate:"omitempty,objectid"`
}

func TestObjectIDPointer(t *testing.T) {
	empty, bad, good := "", "not-an-id", "65f1c0a2b3c4d5e6f7a8b9c0"

	for _, in := range []linkInput{{}, {RelatedOrder: &empty}, {RelatedOrder: &good}} {
		if errs := validate.Struct(in); validate.HasErrors(errs) {
			t.Errorf("expected %v to be valid, got %v", in.RelatedOrder, errs)
		}
	}
	if errs := validate.Struct(linkInput{RelatedOrder: &bad}); !validate.HasErrors(errs) {
		t.Error("expected a malformed relatedOrder to fail")
	}
}
