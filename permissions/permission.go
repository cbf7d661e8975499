// Package permissions holds the role table for routes behind RBAC. Entries
// are keyed by method and the full chi pattern, e.g. "DELETE /v1/admin/users/{id}".
package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

type Permission struct {
	Roles  []string `json:"permissions"`
	Path   string   `json:"path"`
	Method string   `json:"method"`
	Skip   bool     `json:"skip"`
}

// Allows reports whether role may call the endpoint. An entry without roles
// only requires authentication.
func (p Permission) Allows(role string) bool {
	return len(p.Roles) == 0 || slices.Contains(p.Roles, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

func endpointKey(method, path string) string {
	return method + " " + path
}

func (r *PermissionData) FindPermissions(path, method string) Permission {
	return r.index[endpointKey(method, path)]
}

// Load decodes a permission table and rejects duplicate endpoints.
func Load(raw []byte) (*PermissionData, error) {
	var data PermissionData

	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	data.index = make(map[string]Permission, len(data.Endpoints))

	for _, endpoint := range data.Endpoints {
		key := endpointKey(endpoint.Method, endpoint.Path)
		if _, ok := data.index[key]; ok {
			return nil, fmt.Errorf("duplicate permission entry %q", key)
		}

		data.index[key] = endpoint
	}

	return &data, nil
}

// Get loads the embedded table. A broken table yields nil, which RBAC treats
// as deny-all.
func Get() *PermissionData {
	data, err := Load(permissionsData)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(data.Endpoints)).Msg("Successfully loaded embedded permissions")

	return data
}
