// Package driven defines the interfaces the core depends on:
// storage, configuration, the external retrieval service, and
// playback URL signing. Adapters implement these interfaces.
package driven
