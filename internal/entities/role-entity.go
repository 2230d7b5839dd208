package entities

type Role struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type Permission struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
