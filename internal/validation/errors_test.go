package validation

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"gte=1,lte=10"`
	Addr  string `json:"addr" validate:"omitempty,hostname_port"`
}

func TestStructValid(t *testing.T) {
	v := New("json")
	if err := Struct(v, sample{Name: "a", Count: 3, Addr: "localhost:80"}); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestStructFieldErrors(t *testing.T) {
	v := New("json")
	err := Struct(v, sample{Count: 11, Addr: "nope"})
	if err == nil {
		t.Fatal("Expected validation error")
	}

	var multi MultiError
	if !errors.As(err, &multi) {
		t.Fatalf("Expected MultiError, got %T", err)
	}
	if len(multi) != 3 {
		t.Fatalf("Expected 3 field errors, got %d: %v", len(multi), multi)
	}

	expected := map[string]string{
		"name":  "is required",
		"count": "must be at most 10",
		"addr":  "must be a host:port address",
	}
	for _, fe := range multi {
		if want, ok := expected[fe.Field]; !ok || want != fe.Message {
			t.Errorf("Unexpected field error %s", fe)
		}
	}

	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("Expected joined message, got %s", err)
	}
}

func TestFromValidatorIgnoresOtherErrors(t *testing.T) {
	if got := FromValidator(errors.New("plain")); len(got) != 0 {
		t.Errorf("Expected no field errors, got %v", got)
	}
	if (MultiError{}).Error() != "" {
		t.Error("Expected empty message for empty MultiError")
	}
}

type payload struct {
	Body string `json:"body" validate:"maxbytes=4"`
}

func TestMaxBytesCountsBytes(t *testing.T) {
	v := New("json")

	if err := Struct(v, payload{Body: "abcd"}); err != nil {
		t.Errorf("Expected 4 bytes to pass, got %v", err)
	}

	// Three runes, six bytes.
	err := Struct(v, payload{Body: "ééé"})
	var multi MultiError
	if !errors.As(err, &multi) {
		t.Fatalf("Expected MultiError, got %v", err)
	}
	if len(multi) != 1 || multi[0].Field != "body" || multi[0].Message != "must be at most 4 bytes" {
		t.Errorf("Unexpected field errors: %v", multi)
	}
}
