package validator_test

import (
	"strings"
	"testing"

	"casitas/shared/validator"
)

// Test structs for validation
type guestRequest struct {
	Name     string `validate:"required" json:"name"`
	Email    string `validate:"required,email" json:"email"`
	Capacity int    `validate:"gte=1,lte=10" json:"capacity"`
	RoomType string `validate:"oneof=private shared" json:"room_type"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *guestRequest
		expectError bool
	}{
		{
			name: "valid struct",
			data: &guestRequest{
				Name:     "Mariana Torres",
				Email:    "mariana@example.com",
				Capacity: 2,
				RoomType: "private",
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: &guestRequest{
				Email:    "mariana@example.com",
				Capacity: 2,
				RoomType: "private",
			},
			expectError: true,
		},
		{
			name: "invalid email",
			data: &guestRequest{
				Name:     "Mariana Torres",
				Email:    "invalid-email",
				Capacity: 2,
				RoomType: "private",
			},
			expectError: true,
		},
		{
			name: "capacity out of range",
			data: &guestRequest{
				Name:     "Mariana Torres",
				Email:    "mariana@example.com",
				Capacity: 15,
				RoomType: "private",
			},
			expectError: true,
		},
		{
			name: "invalid room type",
			data: &guestRequest{
				Name:     "Mariana Torres",
				Email:    "mariana@example.com",
				Capacity: 2,
				RoomType: "suite",
			},
			expectError: true,
		},
		{
			name: "zero capacity",
			data: &guestRequest{
				Name:     "Mariana Torres",
				Email:    "mariana@example.com",
				Capacity: 0,
				RoomType: "private",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "test",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid email",
			field:       "test@example.com",
			tag:         "email",
			expectError: false,
		},
		{
			name:        "invalid email",
			field:       "invalid-email",
			tag:         "email",
			expectError: true,
		},
		{
			name:        "valid number in range",
			field:       25,
			tag:         "gte=0,lte=100",
			expectError: false,
		},
		{
			name:        "number out of range",
			field:       150,
			tag:         "gte=0,lte=100",
			expectError: true,
		},
		{
			name:        "valid oneof",
			field:       "owner",
			tag:         "oneof=owner student",
			expectError: false,
		},
		{
			name:        "invalid oneof",
			field:       "admin",
			tag:         "oneof=owner student",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"name":"Mariana Torres","email":"mariana@example.com","capacity":2,"room_type":"private"}`,
			expectError: false,
		},
		{
			name:        "invalid JSON",
			jsonBody:    `{"name":"Mariana Torres","email":"invalid-email","capacity":2,"room_type":"private"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"name":"Mariana Torres","email":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.jsonBody)
			var data guestRequest
			err := validator.Validate(reader, &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	data := &guestRequest{}
	err := validator.ValidateStruct(data)

	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	errorMsg := err.Error()

	// Check that error message contains field name and is descriptive
	if !strings.Contains(errorMsg, "required") || errorMsg == "" {
		t.Errorf("expected descriptive error message containing 'required', got: %s", errorMsg)
	}
}

func TestMimetypeValidation(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		tag         string
		expectError bool
	}{
		{
			name:        "allowed base64 image",
			field:       "data:image/png;base64,iVBORw0KGgo=",
			tag:         "mimetypes=image/png image/jpeg",
			expectError: false,
		},
		{
			name:        "disallowed base64 content type",
			field:       "data:text/plain;base64,aG9sYQ==",
			tag:         "mimetypes=image/png image/jpeg",
			expectError: true,
		},
		{
			name:        "not a data URI",
			field:       "plain string",
			tag:         "mimetypes=image/png",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestMaxFileSizeValidation(t *testing.T) {
	// String fields are measured by byte length
	small := strings.Repeat("a", 1024)

	if err := validator.ValidateVar(small, "maxfilesize=1"); err != nil {
		t.Errorf("expected 1KB string to pass a 1MB limit, got: %v", err)
	}

	large := strings.Repeat("a", 2*1024*1024)

	if err := validator.ValidateVar(large, "maxfilesize=1"); err == nil {
		t.Error("expected 2MB string to fail a 1MB limit")
	}
}

func TestValidationErrorHandling(t *testing.T) {
	// Multiple violations at once
	data := &guestRequest{
		Name:     "",
		Email:    "invalid",
		Capacity: 0,
		RoomType: "suite",
	}

	err := validator.ValidateStruct(data)
	if err == nil {
		t.Fatal("expected validation error")
	}

	if err.Error() == "" {
		t.Error("expected non-empty error message")
	}
}
