package errmsg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mobilestore/storefront/internal/api"
)

func TestSummaryKnownShapes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "custom error shape message verbatim",
			err:  &api.Error{StatusCode: 400, Body: []byte(`{"success":false,"error":{"message":"Only 2 items available in stock","code":400}}`)},
			want: "Only 2 items available in stock",
		},
		{
			name: "detail passes through",
			err:  &api.Error{StatusCode: 403, Body: []byte(`{"detail":"You cannot access this order."}`)},
			want: "You cannot access this order.",
		},
		{
			name: "no active account rewritten to invalid credentials",
			err:  &api.Error{StatusCode: 401, Body: []byte(`{"detail":"No active account found with the given credentials"}`)},
			want: MsgInvalidCredentials,
		},
		{
			name: "message shape",
			err:  &api.Error{StatusCode: 400, Body: []byte(`{"message":"Cart cleared"}`)},
			want: "Cart cleared",
		},
		{
			name: "404 with no body falls back to table",
			err:  &api.Error{StatusCode: 404},
			want: MsgNotFound,
		},
		{
			name: "401 with unusable body falls back to table",
			err:  &api.Error{StatusCode: 401, Body: []byte(`not json`)},
			want: MsgAuthRequired,
		},
		{
			name: "unlisted status interpolated",
			err:  &api.Error{StatusCode: 502, Body: []byte(`{}`)},
			want: "An error occurred (502). Please try again.",
		},
		{
			name: "network failure fixed message",
			err:  &api.Error{Err: errors.New("dial tcp: connection refused")},
			want: MsgNetworkError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summary(tt.err))
		})
	}
}

func TestSummaryPriorityOrder(t *testing.T) {
	// error.message wins over detail and message when several shapes
	// appear in one body.
	err := &api.Error{StatusCode: 400, Body: []byte(`{
		"error": {"message": "from error"},
		"detail": "from detail",
		"message": "from message"
	}`)}
	assert.Equal(t, "from error", Summary(err))
}

func TestSummaryNonAPIError(t *testing.T) {
	assert.Equal(t, "boom", Summary(errors.New("boom")))
	assert.Equal(t, "", Summary(nil))
}

func TestFieldErrorsFlatShape(t *testing.T) {
	err := &api.Error{StatusCode: 400, Body: []byte(`{
		"email": ["Enter a valid email address."],
		"phone": "This field is required.",
		"detail": "ignored",
		"success": false
	}`)}

	fields := FieldErrors(err)
	assert.Equal(t, "Enter a valid email address.", fields["email"])
	assert.Equal(t, "This field is required.", fields["phone"])
	assert.NotContains(t, fields, "detail")
	assert.NotContains(t, fields, "success")
}

func TestFieldErrorsPassword2Rename(t *testing.T) {
	err := &api.Error{StatusCode: 400, Body: []byte(`{"password2":["too short"]}`)}

	fields := FieldErrors(err)
	assert.Equal(t, "too short", fields["confirmPassword"])
	assert.NotContains(t, fields, "password2")
}

func TestFieldErrorsEmailUniquenessRewrite(t *testing.T) {
	err := &api.Error{StatusCode: 400, Body: []byte(`{"email":["customer with this email already exists."]}`)}

	fields := FieldErrors(err)
	assert.Equal(t, MsgEmailTaken, fields["email"])
}

func TestFieldErrorsNestedDetailsShape(t *testing.T) {
	err := &api.Error{StatusCode: 400, Body: []byte(`{
		"error": {
			"message": "Validation error",
			"details": {"quantity": ["Quantity must be at least 1"], "name": "required"}
		}
	}`)}

	fields := FieldErrors(err)
	assert.Equal(t, "Quantity must be at least 1", fields["quantity"])
	assert.Equal(t, "required", fields["name"])
}

func TestFieldErrorsNonFieldErrors(t *testing.T) {
	err := &api.Error{StatusCode: 400, Body: []byte(`{"non_field_errors":["Something is off"]}`)}

	fields := FieldErrors(err)
	assert.Equal(t, "Something is off", fields["general"])
}

func TestFieldErrorsOneLevelNesting(t *testing.T) {
	err := &api.Error{StatusCode: 400, Body: []byte(`{"password":{"strength":["too weak"]}}`)}

	fields := FieldErrors(err)
	assert.Equal(t, "too weak", fields["password"])
}

func TestFieldErrorsNonAPIError(t *testing.T) {
	assert.Empty(t, FieldErrors(errors.New("boom")))
}
