package dto

type ProfileResponse struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	MonthlyLimit float64 `json:"monthlyLimit"`
	Bio          string  `json:"bio"`
	Phone        string  `json:"phone"`
	CreatedAt    string  `json:"createdAt"`
}

// UpdateProfileRequest carries a partial update; nil fields are left as-is.
type UpdateProfileRequest struct {
	Username     *string  `json:"username" validate:"omitempty,min=3,max=64"`
	MonthlyLimit *float64 `json:"monthlyLimit" validate:"omitempty,gte=0"`
	Bio          *string  `json:"bio" validate:"omitempty,max=500"`
	Phone        *string  `json:"phone" validate:"omitempty,max=32"`
}
