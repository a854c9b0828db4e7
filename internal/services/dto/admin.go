package dto

type BanEmailRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Reason string `json:"reason"`
}

type SuspendUserRequest struct {
	Reason string `json:"reason"`
}

// DeleteUserRequest optionally bans the user's email so the address
// cannot be reused for a new registration.
type DeleteUserRequest struct {
	BanEmail bool   `json:"ban_email"`
	Reason   string `json:"reason"`
}

type UserListResponse struct {
	Users    []*UserResponse `json:"users"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

type BannedEmailResponse struct {
	Email    string `json:"email"`
	Reason   string `json:"reason,omitempty"`
	BannedBy string `json:"banned_by,omitempty"`
}
