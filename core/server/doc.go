// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this
// package defines the configuration structure for server settings (port and
// API key). It is primarily consumed by core/config to embed server settings.
package server
