// Package session loads the technician's session file for the workbench CLI.
//
// A session file is YAML holding the wing geometry (row count, aspect ratio,
// line plan, references), the measuring method and offsets, the measured
// lines and the cloth test points. See testdata/session.yaml.
//
// Load(path) parses and shape-checks a file. Watch(ctx, path, log, fn) calls
// fn with the reloaded session on every save until ctx is cancelled.
package session
