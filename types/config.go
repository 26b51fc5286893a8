package types

// AppConfig holds all application settings
type AppConfig struct {
	CatalogURL          string `json:"catalog_url"`           // URL or local path of the base catalog (games.json)
	FetchTimeoutSeconds int    `json:"fetch_timeout_seconds"` // Upper bound for the catalog fetch
	StorageBackend      string `json:"storage_backend"`       // "sqlite" or "file"
	DataPath            string `json:"data_path"`             // Where the custom list is persisted
}
