package request

type StatusCheckRequest struct {
	ClientName string `json:"client_name" validate:"required" example:"frontend"`
}
