package user

// ProfileDTO is the response shape for the current-user endpoint.
type ProfileDTO struct {
	ID           int64    `json:"id"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	UserType     string   `json:"user_type"`
	EnterpriseID *string  `json:"enterprise_id,omitempty"`
	Permissions  []string `json:"permissions"`
}
