package rest

// ErrorResponse is the JSON body returned for client-facing request errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
