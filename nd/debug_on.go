// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

//go:build ndsortdebug

package nd

// DebugChecks is true in builds tagged ndsortdebug.
const DebugChecks = true
