// Copyright (c) 2026 MODON Evolutio. All rights reserved.

package auth

// # Development Fixture
//
// A single back-office account seeded only outside production so the admin
// area is reachable on a fresh local database. The login handler refuses to
// consult the fixture when the environment is production.
const (
	DevAdminEmail    = "admin@modonevolutio.local"
	DevAdminPassword = "admin12345"
	DevAdminName     = "Local Admin"
)
