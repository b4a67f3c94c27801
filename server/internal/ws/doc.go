// Package ws implements the WebSocket hub for wingcheck-server.
//
// Hub manages a set of connected clients and broadcasts the recent
// assessment feed to all of them on a configurable interval (default 5s).
//
// New(store, interval, logger) creates a Hub.
// Hub.Run(ctx) starts the broadcast ticker. It blocks until ctx is cancelled,
// then closes all active connections.
// Hub.ServeHTTP upgrades an HTTP connection to WebSocket, sends the current
// feed immediately on connect, then streams updates on each tick.
//
// Message format sent to clients:
//
//	{
//	  "event": "assessments",
//	  "data":  {"generated_at": "...", "total": 3, "assessments": [ /* newest first, as GET /api/v1/assessments */ ]}
//	}
//
// The upgrader accepts all origins. Apply CORS restrictions at the reverse
// proxy level. The endpoint is mounted at /ws/stream by the server.
package ws
