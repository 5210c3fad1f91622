// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// ProfileSections maps section keys (e.g. "about", "mission", "governance")
// to their markdown content. The company profile is a small keyed document
// set rather than a full entity.
type ProfileSections map[string]string
