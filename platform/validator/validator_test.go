package validator

import "testing"

type sampleItem struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"min=1"`
}

type sampleRequest struct {
	CustomerName  string       `json:"customerName" validate:"required,min=1"`
	CustomerEmail string       `json:"customerEmail" validate:"omitempty,email"`
	Items         []sampleItem `json:"items" validate:"required,min=1,dive"`
}

func TestFieldErrorsCollectsAllFailures(t *testing.T) {
	val := New()

	req := sampleRequest{
		CustomerName:  "",
		CustomerEmail: "not-an-email",
		Items:         []sampleItem{{ProductID: "", Quantity: 0}},
	}

	err := val.Struct(req)
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	fields := FieldErrors(err)
	if fields == nil {
		t.Fatal("expected field errors, got nil")
	}

	for _, want := range []string{"customerName", "customerEmail", "items[0].productId", "items[0].quantity"} {
		if len(fields[want]) == 0 {
			t.Fatalf("expected an error for field %q, got %v", want, fields)
		}
	}
}

func TestFieldErrorsUsesJSONTagNames(t *testing.T) {
	val := New()

	err := val.Struct(sampleRequest{Items: []sampleItem{{ProductID: "p1", Quantity: 1}}})
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	fields := FieldErrors(err)
	if _, ok := fields["CustomerName"]; ok {
		t.Fatal("expected json tag name customerName, found struct field name")
	}
	if len(fields["customerName"]) == 0 {
		t.Fatalf("expected customerName error, got %v", fields)
	}
}

func TestValidRequestProducesNoError(t *testing.T) {
	val := New()

	req := sampleRequest{
		CustomerName: "Acme",
		Items:        []sampleItem{{ProductID: "p1", Quantity: 2}},
	}

	if err := val.Struct(req); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
