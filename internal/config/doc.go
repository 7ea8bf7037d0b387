// Package config provides configuration loading, merging, and validation
// facilities for the sync client.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags bound with [BindFlags]
//  3. JSON or YAML config file
//
// Fields left empty by every source take the package defaults. The main
// entry points are [GetClientConfig] for the running engine and
// [GetOfflineConfig] for commands that only touch the local database.
package config
