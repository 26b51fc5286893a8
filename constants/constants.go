package constants

import "time"

// Storage
const (
	CustomGamesKey = "custom_games_v1"
	SQLiteFile     = "hub.db"
)

// Storage backends
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Custom entries
const (
	CustomCategory     = "Custom"
	DefaultDescription = "Custom embedded game."
	CustomIDPrefix     = "custom-"
)

// Backup
const (
	ExportFilename = "algebra-practise-backup.json"
)

// Event Names
const (
	EventCollectionLoading = "collection-loading"
	EventCollectionLoaded  = "collection-loaded"
)

// Limits
const (
	DefaultFetchTimeout = 5 * time.Second
	MaxDocumentSize     = 10 << 20
)

// Path Components
const (
	AppDir        = ".go-game-hub"
	CacheDir      = "cache"
	ConfigDir     = "config"
	DataDir       = "data"
	ThumbnailsDir = "thumbnails"
)
