package types

type Filter struct {
	Search         string                 `json:"search"`
	Filter         map[string]interface{} `json:"filter"`
	Limit          uint64                 `json:"limit"`
	Offset         uint64                 `json:"offset"`
	WithPagination bool                   `json:"withPagination"`
}
