// Package services implements the core application logic: catalog
// management, ingestion submission and tracking, query dispatch, and
// settings. Services depend only on the driven ports.
package services
