// Package blobsas signs playback URLs with an Azure Blob Storage
// container SAS. Only read and list permissions are granted, scoped to
// the configured container, so a leaked URL cannot modify storage.
package blobsas

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/clipseek/clipseek-cli/internal/core/domain"
	"github.com/clipseek/clipseek-cli/internal/core/ports/driven"
)

const (
	// SignedVersion is the storage service version the SAS targets.
	SignedVersion = "2022-11-02"

	// SignedResource marks the SAS as container-scoped.
	SignedResource = "c"

	// SignedPermissions grants read and list access.
	SignedPermissions = "rl"

	// timeFormat is the SAS timestamp layout (UTC, second precision).
	timeFormat = "2006-01-02T15:04:05Z"
)

// Signing errors.
var (
	// ErrMissingAccount indicates the account name or key is not configured.
	ErrMissingAccount = errors.New("blobsas: storage account not configured")

	// ErrMissingContainer indicates the container name is not configured.
	ErrMissingContainer = errors.New("blobsas: container name not configured")

	// ErrInvalidAccountKey indicates the account key is not valid base64.
	ErrInvalidAccountKey = errors.New("blobsas: invalid account key")
)

// Ensure Signer implements the interface.
var _ driven.PlaybackSigner = (*Signer)(nil)

// Signer builds container SAS tokens and signed playback URLs.
type Signer struct {
	settings domain.StorageSettings
	now      func() time.Time
}

// NewSigner creates a signer for the configured storage container.
func NewSigner(settings domain.StorageSettings) *Signer {
	return &Signer{
		settings: settings,
		now:      time.Now,
	}
}

// SetClock replaces the signer's clock, used in tests.
func (s *Signer) SetClock(now func() time.Time) {
	s.now = now
}

// SignPlaybackURL returns a URL that grants read access to the video
// and starts playback at the given offset. The SAS query is appended
// to the raw video URL the way storage clients expect.
func (s *Signer) SignPlaybackURL(videoURL string, start domain.MediaTime) (string, error) {
	sas, err := s.ContainerSAS()
	if err != nil {
		return "", err
	}
	return videoURL + "?start=" + url.QueryEscape(start.String()) + "&" + sas, nil
}

// ContainerSAS builds a read/list container SAS query string valid from
// now until now plus the configured validity window.
func (s *Signer) ContainerSAS() (string, error) {
	if s.settings.AccountName == "" || s.settings.AccountKey == "" {
		return "", ErrMissingAccount
	}
	if s.settings.ContainerName == "" {
		return "", ErrMissingContainer
	}

	key, err := base64.StdEncoding.DecodeString(s.settings.AccountKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAccountKey, err)
	}

	validity := s.settings.SASValidity
	if validity <= 0 {
		validity = time.Hour
	}

	startAt := s.now().UTC()
	expiry := startAt.Add(validity)
	signedStart := startAt.Format(timeFormat)
	signedExpiry := expiry.Format(timeFormat)

	canonicalResource := fmt.Sprintf("/blob/%s/%s", s.settings.AccountName, s.settings.ContainerName)

	// Service SAS string-to-sign, storage version 2022-11-02.
	stringToSign := strings.Join([]string{
		SignedPermissions,
		signedStart,
		signedExpiry,
		canonicalResource,
		"", // signed identifier
		"", // signed IP
		"", // signed protocol
		SignedVersion,
		SignedResource,
		"", // snapshot time
		"", // encryption scope
		"", // cache-control
		"", // content-disposition
		"", // content-encoding
		"", // content-language
		"", // content-type
	}, "\n")

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(stringToSign))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	params := url.Values{}
	params.Set("sv", SignedVersion)
	params.Set("sr", SignedResource)
	params.Set("sp", SignedPermissions)
	params.Set("st", signedStart)
	params.Set("se", signedExpiry)
	params.Set("sig", signature)

	return params.Encode(), nil
}
