// Package domain contains the core types for clipseek: the video
// catalog, queries, search results, and ingestion bookkeeping.
// The external retrieval service owns all index state; these types
// model only what clipseek itself holds.
package domain
