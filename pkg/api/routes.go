// Package api defines the HTTP wire protocol shared by the sync client and server.
package api

// API paths
const (
	PathToken  = "/api/v1/auth/token"
	PathPush   = "/api/v1/sync/push"
	PathPull   = "/api/v1/sync/pull"
	PathHealth = "/api/v1/health"
)
