package dto

// CreateCityRequest represents city creation data
type CreateCityRequest struct {
	Name  string `json:"name" binding:"required" example:"Bengaluru"`
	State string `json:"state" binding:"required" example:"Karnataka"`
}

// UpdateCityRequest represents city update data
type UpdateCityRequest struct {
	Name  string `json:"name" binding:"required"`
	State string `json:"state" binding:"required"`
}
