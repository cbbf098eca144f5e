package api

import "time"

// DocumentHeaderPath addresses the document header in /headers routes.
const DocumentHeaderPath = "_"

// KeysResponse represents the response for listing keys
type KeysResponse struct {
	Keys  []string `json:"keys"`
	Count int      `json:"count"`
}

// ValueResponse represents a value together with its header
type ValueResponse struct {
	Path   string `json:"path"`
	Value  any    `json:"value"`
	Header string `json:"header,omitempty"`
}

// SetValueRequest represents the body of PUT /values/{path}
type SetValueRequest struct {
	Value any `json:"value"`
}

// HeaderResponse represents a header attached to a path
type HeaderResponse struct {
	Path   string `json:"path"`
	Header string `json:"header"`
}

// SetHeaderRequest represents the body of PUT /headers/{path}
type SetHeaderRequest struct {
	Header string `json:"header" validate:"required,max=4096"`
}

// StatusResponse represents the outcome of a mutating request
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	File      string    `json:"file"`
	Timestamp time.Time `json:"timestamp"`
}

// VersionResponse represents the version information
type VersionResponse struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
