package crateplay

const (
	// Base URL
	DefaultBaseURL = "http://localhost:8080"

	// API Endpoints
	SessionsEndpoint = "/api/sessions"
	HealthEndpoint   = "/health"

	// Roles
	RoleHost      = "host"
	RoleAssistant = "assistant"
	RoleJumbotron = "jumbotron"
)
