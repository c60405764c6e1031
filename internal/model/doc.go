// Package model defines domain entities and data structures for the clubs API.
//
// The model package contains the struct definitions shared by every layer:
// persisted rows (tagged for sqlx with `db`), derived read views, request
// bodies with their validation, and the JSON error body.
//
// # Domain Entities
//
//   - User: account with a fixed role (student or owner)
//   - Club: organization owned by one user, with a join policy
//   - Application: a student's pending/accepted/rejected request to join
//   - Membership: confirmed participation in a club
//   - Event: scheduled club activity
//   - RSVP: a member's attendance marker for an event
//
// # Derived Views
//
// Read endpoints return views such as ClubListing (member_count,
// application_status, is_member) that are computed per request.
//
// # Error Types
//
// ErrorResponse serializes as {"error": message, "code": CODE}:
//
//	model.NewNotFoundError("Club not found").WriteJSON(w)
package model
