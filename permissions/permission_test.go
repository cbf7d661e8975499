package permissions_test

import (
	"testing"

	"cheapticket/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		method string
		path   string
		role   string
		allow  bool
	}{
		{method: "GET", path: "/v1/admin/users", role: "staff", allow: true},
		{method: "GET", path: "/v1/admin/bookings/{kind}", role: "superuser", allow: true},
		{method: "GET", path: "/v1/admin/otp-logs", role: "customer", allow: false},
		{method: "DELETE", path: "/v1/admin/users/{id}", role: "staff", allow: false},
		{method: "DELETE", path: "/v1/admin/bookings/{kind}/{id}", role: "superuser", allow: true},
		{method: "POST", path: "/v1/admin/bookings/{kind}/export", role: "staff", allow: true},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path+" "+tt.role, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.path, permission.Path)
			assert.Equal(t, tt.allow, permission.Allows(tt.role))
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("unknown endpoint only needs authentication", func(t *testing.T) {
		data, err := permissions.Load([]byte(`{"endpoints":[]}`))

		require.NoError(t, err)
		assert.True(t, data.FindPermissions("/v1/other", "GET").Allows("customer"))
	})

	t.Run("duplicate endpoint", func(t *testing.T) {
		_, err := permissions.Load([]byte(`{"endpoints":[
			{"path":"/v1/admin/users","method":"GET"},
			{"path":"/v1/admin/users","method":"GET"}
		]}`))

		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := permissions.Load([]byte(`{`))

		assert.Error(t, err)
	})
}
