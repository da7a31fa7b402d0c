package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableString_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    NullableString
		cleared bool
	}{
		{name: "absent", body: `{"user":{"email":"a@b.c"}}`, want: NullableString{}},
		{name: "null", body: `{"user":{"bio":null}}`, want: NullableString{Set: true}, cleared: true},
		{name: "empty", body: `{"user":{"bio":""}}`, want: NullableString{Set: true, Valid: true}, cleared: true},
		{name: "value", body: `{"user":{"bio":"hi"}}`, want: NullableString{Set: true, Valid: true, Value: "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateUserRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.User.Bio)
			assert.Equal(t, tt.cleared, req.User.Bio.Cleared())
		})
	}

	var req UpdateUserRequest
	assert.Error(t, json.Unmarshal([]byte(`{"user":{"bio":42}}`), &req))
}

func TestUpdateUserRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "no fields", body: `{"user":{}}`, wantErr: true},
		{name: "only null bio", body: `{"user":{"bio":null}}`},
		{name: "only null image", body: `{"user":{"image":null}}`},
		{name: "username", body: `{"user":{"username":"jake"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateUserRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
