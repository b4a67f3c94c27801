// Package config loads the server-side configuration from the `server:` section
// of config.yaml, then applies WINGCHECK_* environment overrides.
//
// Config fields:
//   - HTTPPort              port for the REST API, WebSocket feed and /metrics (default 8080)
//   - Catalog.Dir           directory of reference model YAML files (default "catalog")
//   - Catalog.Watch         reload the catalog on file change
//   - Assessments.TTL       retention of recent assessments (default 30m)
//   - Feed.Interval         WebSocket broadcast interval (default 5s)
//   - Log.Level, Log.Format zap level and json|console encoding
//   - Trim.MaxAdjustmentMm  cap on suggested line adjustments (default 40)
//
// Load(path) applies defaults before unmarshalling, then env overrides, then
// validates.
package config
