package domain

import "time"

// RetrievalSettings holds the connection to the external video
// retrieval service.
type RetrievalSettings struct {
	// Endpoint is the service hostname, e.g. "myaccount.cognitiveservices.azure.com".
	Endpoint string

	// IndexName is the retrieval index holding the catalog.
	IndexName string

	// APIVersion is the service API version to request.
	APIVersion string

	// APIKey is the subscription key sent with every request.
	APIKey string
}

// IsConfigured returns true if the service connection is usable.
func (r RetrievalSettings) IsConfigured() bool {
	return r.Endpoint != "" && r.IndexName != "" && r.APIKey != ""
}

// StorageSettings holds the credentials for signing playback URLs
// against the storage account hosting the videos.
type StorageSettings struct {
	// AccountName is the storage account name.
	AccountName string

	// ContainerName is the container holding the videos.
	ContainerName string

	// AccountKey is the base64-encoded account key used for signing.
	AccountKey string

	// SASValidity is how long signed playback URLs remain valid.
	SASValidity time.Duration
}

// IsConfigured returns true if playback URLs can be signed.
func (s StorageSettings) IsConfigured() bool {
	return s.AccountName != "" && s.ContainerName != "" && s.AccountKey != ""
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Retrieval holds the retrieval service connection.
	Retrieval RetrievalSettings

	// Storage holds the playback signing credentials.
	Storage StorageSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// Service credentials are left unconfigured; users must set them
// via the settings commands.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Retrieval: RetrievalSettings{
			APIVersion: "2023-05-01-preview",
		},
		Storage: StorageSettings{
			SASValidity: time.Hour,
		},
	}
}
