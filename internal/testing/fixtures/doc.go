// Package fixtures provides test data factories for the clubs API.
//
// The fixtures package contains factory functions for creating test data
// with sensible defaults and optional customization.
//
// # Factory Pattern
//
// Create a factory with a database connection:
//
//	f := fixtures.New(tdb.DB)
//
// # Creating Test Data
//
// Factory methods create domain entities:
//
//	student := f.CreateUser(t)                  // Default student
//	owner := f.CreateOwner(t)                   // Club owner
//	club := f.CreateClub(t, owner)              // Open club owned by owner
//	f.AddMember(t, club, student)               // Add member
//
// # Customization
//
// Use option functions for customization:
//
//	student := f.CreateUser(t, fixtures.WithEmail("ada@yale.edu"))
//	club := f.CreateClub(t, owner, fixtures.WithJoinType(model.JoinTypeAudition))
//
// # Random Data
//
// Unique emails and names are generated automatically.
//
// # Cleanup
//
// Test data disappears with the test database.
package fixtures
