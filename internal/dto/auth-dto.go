package dto

type LoginDTO struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RegisterDeviceDTO — привязка мобильного устройства к пользователю.
type RegisterDeviceDTO struct {
	DeviceToken string `json:"device_token" validate:"required,min=8"`
}
