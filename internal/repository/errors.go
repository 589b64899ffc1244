// Package repository implements persistence for users and campaigns on top
// of database/sql.  Sentinel errors defined here let handlers map failure
// scenarios onto HTTP statuses without string matching.
package repository

import "errors"

// ErrEmailExists is returned by UserRepo.Create when the email is already
// registered.  Handlers translate this into HTTP 400.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when no user matches the lookup.  During login
// it must collapse into the same response as a wrong password so the API
// does not reveal which check failed.
var ErrUserNotFound = errors.New("user not found")

// ErrCampaignNotFound is returned when no campaign matches the lookup, or,
// for owner-scoped deletes, when the campaign exists but belongs to someone
// else.  The two cases are indistinguishable on purpose so a delete probe
// cannot confirm that a foreign campaign id exists.
var ErrCampaignNotFound = errors.New("campaign not found")

// ErrCampaignInactive is returned by Donate when the campaign already
// reached its goal.  A deactivated campaign never accepts donations again.
var ErrCampaignInactive = errors.New("campaign is not active")
