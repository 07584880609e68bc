package transport

type MakeResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ModelResponse struct {
	ID     int    `json:"id"`
	MakeID int    `json:"makeId"`
	Name   string `json:"name"`
}

type OptionResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ListModelsRequest filters models by make. A make of -1 or 0 means all makes.
type ListModelsRequest struct {
	Make int `form:"make" validate:"gte=-1"`
}
