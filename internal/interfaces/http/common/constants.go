package common

const (
	// MaxRequestBody limits JSON request bodies for store/review endpoints.
	MaxRequestBody = 1 << 20
	// MaxListingLimit caps explicit ?limit values to keep queries bounded.
	MaxListingLimit = 100
)
