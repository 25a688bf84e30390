package dto

type ErrorResponseDTO struct {
	Error string `json:"error"`
}

type OkResponseDTO struct {
	OK bool `json:"ok"`
}
