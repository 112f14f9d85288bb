package routes

const (
	// Health
	Health = "/health"

	// Registry endpoints
	Accounts        = "/api/v1/accounts"
	Account         = "/api/v1/accounts/{id}"
	AccountBalance  = "/api/v1/accounts/{id}/balance"
	AccountProperty = "/api/v1/accounts/{id}/property"
	Investments     = "/api/v1/investments"
)
