// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package news

import "errors"

// Domain errors form a closed set; handlers match them with errors.Is and
// translate to HTTP statuses. Anything else coming out of the service is an
// internal failure and must not leak detail to clients.
var (
	// ErrNotFound means the operation targeted a non-existent news item.
	ErrNotFound = errors.New("news not found")

	// ErrSlugExists means a create or update collided with another item's
	// slug. It is produced from the storage layer's unique-violation signal,
	// never from an application-side pre-check.
	ErrSlugExists = errors.New("news slug already exists")
)
