// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync engine process runtime.
//
// [App] wires storage, the connection manager, the engine services, the
// background workers and the optional control API into a single process
// lifecycle. [Offline] exposes the maintenance operations that only need
// the local database.
package client
