package entities

// Admin — административная запись, привязанная к пользователю.
type Admin struct {
	ID     uint64 `json:"id"`
	UserID uint64 `json:"user_id"`
	User   *User  `json:"user,omitempty"`
}
