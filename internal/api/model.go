package api

// LaunchResponse — ответ POST /api/launchpad/{platform}.
type LaunchResponse struct {
	Success     bool   `json:"success"`
	Transaction string `json:"transaction,omitempty"`
	Mint        string `json:"mint,omitempty"`
	Error       string `json:"error,omitempty"`
}

type PlatformsResponse struct {
	Platforms []string `json:"platforms"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse — общее тело ошибки.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
