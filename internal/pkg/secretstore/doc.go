// Package secretstore abstracts where secret material actually lives.
//
// The service only ever reads name -> field map snapshots, so the Store
// interface is a single Fetch method behind a driver factory: inline config
// (static), a watched YAML file (file), or redis hashes (redis). Per-name
// failures are scoped; callers render an error for that secret and keep
// serving the rest.
package secretstore
