// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

//go:build !ndsortdebug

package nd

// DebugChecks is false in release builds; preconditions go unchecked.
const DebugChecks = false
