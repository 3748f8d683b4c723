package models

// Provider identifies a supported mobile-money service.
type Provider string

// Supported providers.
const (
	ProviderBkash  Provider = "bkash"
	ProviderNagad  Provider = "nagad"
	ProviderRocket Provider = "rocket"
)
