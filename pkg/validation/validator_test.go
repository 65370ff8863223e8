package validation

import (
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin/binding"
)

type signupPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Name     string `json:"name" binding:"omitempty,min=2,max=100"`
}

func TestToDetailsNil(t *testing.T) {
	if got := ToDetails(nil); got != nil {
		t.Fatalf("ToDetails(nil) = %v, want nil", got)
	}
}

func TestToDetailsMalformedJSON(t *testing.T) {
	var p signupPayload
	err := json.Unmarshal([]byte("{"), &p)
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	got := ToDetails(err)
	if got["payload"] != "invalid json" {
		t.Fatalf("details = %v, want payload: invalid json", got)
	}
}

func TestToDetailsFieldMessages(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(signupPayload{
		Email:    "not-an-email",
		Password: "short",
		Name:     "x",
	})
	if err == nil {
		t.Fatal("expected validation errors")
	}
	got := ToDetails(err)

	if got["email"] != "must be a valid email" {
		t.Errorf("email message = %q", got["email"])
	}
	if got["password"] != "must be at least 8 characters long" {
		t.Errorf("password message = %q", got["password"])
	}
	if got["name"] != "must be at least 2 characters long" {
		t.Errorf("name message = %q", got["name"])
	}
}

func TestToDetailsUsesJSONNames(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(signupPayload{})
	if err == nil {
		t.Fatal("expected validation errors")
	}
	got := ToDetails(err)
	for field := range got {
		if field == "Email" || field == "Password" {
			t.Fatalf("field names not mapped to json tags: %v", got)
		}
	}
	if got["email"] != "is required" || got["password"] != "is required" {
		t.Fatalf("details = %v", got)
	}
}
