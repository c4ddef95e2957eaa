package model

import "time"

// Shared defaults used by both the terminal client and the daemon.
const (
	DefaultAPIBaseURL     = "https://pokeapi.co/api/v2"
	DefaultCollectionPath = "pokemon"
	DefaultPageSize       = 20
	DefaultRequestTimeout = 10 * time.Second
	DefaultSkin           = "default"
	FallbackColor         = "#000"
)
