package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./homebranch.db"

	DefaultUploadsDirectory = "./uploads"
)

type StorageProvider string

const (
	StorageProviderLocal StorageProvider = "local"
	StorageProviderMinio StorageProvider = "minio"
)
