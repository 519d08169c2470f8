package domain

// Operator is a community moderator reviewing place edit requests.
type Operator struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	Name         string `json:"name,omitempty"`
	Surname      string `json:"surname,omitempty"`
}

// Token roles.
const (
	RoleUser     = "user"
	RoleOperator = "operator"
)
