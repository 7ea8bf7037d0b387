// Package http implements the local control API of a running sync engine.
//
// The UI collaborator uses it to report local mutations, inspect the change
// queue and drive the connection. Request tracing and access logging are
// applied to every route before requests reach the service layer.
package http
