package domain

import (
	"net/url"
	"strings"
	"time"
)

// CatalogKindVideo is the default document kind for catalog entries.
const CatalogKindVideo = "video"

// CatalogEntry is a video made available for indexing and search.
// Videos are referenced by URL; clipseek never manages the storage
// behind the URL.
type CatalogEntry struct {
	// ID is the unique identifier for the entry. It doubles as the
	// document ID in the retrieval service's index.
	ID string

	// URL is the network-accessible location of the video. It must be
	// dereferenceable by the retrieval service.
	URL string

	// Title is an optional human-readable title.
	Title string

	// Kind is the document kind submitted to the retrieval service.
	// Defaults to CatalogKindVideo when left empty.
	Kind string

	// CreatedAt is when the entry was added to the catalog.
	CreatedAt time.Time

	// UpdatedAt is when the entry was last updated.
	UpdatedAt time.Time
}

// Validate checks that the entry is well formed.
func (e CatalogEntry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrInvalidInput
	}
	raw := strings.TrimSpace(e.URL)
	if raw == "" {
		return ErrInvalidInput
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidInput
	}
	return nil
}

// DisplayName returns the title when set, otherwise the entry ID.
func (e CatalogEntry) DisplayName() string {
	if e.Title != "" {
		return e.Title
	}
	return e.ID
}
