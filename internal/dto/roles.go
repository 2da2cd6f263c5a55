package dto

// Role is a named permission group assigned to user accounts.
type Role struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// RolesResponse is returned by GET /api/users-permissions/roles. Roles is nil
// when the key is absent and empty when the catalog has no entries.
type RolesResponse struct {
	Roles []Role `json:"roles"`
}
