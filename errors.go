// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package maglev

import "errors"

// Sentinel errors returned by table mutations. Callers test them
// with [errors.Is].
var (
	// ErrNotInitialized, mutation or rendering attempted before Init.
	ErrNotInitialized = errors.New("table not initialized")

	// ErrInvalidSize, requested table size < 1 or beyond uint32.
	ErrInvalidSize = errors.New("invalid table size")

	// ErrInvalidName, empty node name or name longer than MaxNameLen.
	ErrInvalidName = errors.New("invalid node name")

	// ErrDuplicateName, Add with a name that is already a member.
	ErrDuplicateName = errors.New("node already exists")

	// ErrCapacity, Add would exceed the node limit.
	ErrCapacity = errors.New("maximum number of nodes reached")

	// ErrUnknownName, SetActive for a name that is not a member.
	ErrUnknownName = errors.New("no such node")
)
