package dto

type SlugAvailabilityResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}
