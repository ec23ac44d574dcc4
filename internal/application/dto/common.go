package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RedirectErrorResponse error con indicación de redirección para el cliente web:
// a dónde ir y tras cuántos segundos (0 = inmediato).
type RedirectErrorResponse struct {
	Code                 string `json:"code"`
	Message              string `json:"message"`
	RedirectTo           string `json:"redirect_to"`
	RedirectAfterSeconds int    `json:"redirect_after_seconds"`
}
