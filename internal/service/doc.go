// Package service implements the business logic layer for the clubs API.
//
// The service package contains all domain logic, validation rules, and
// orchestration of repository operations. Services are the primary
// abstraction between HTTP handlers and data access.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts a config struct with repository dependencies
//   - Methods take the caller's model.Identity explicitly; nothing reads identity from globals
//   - Errors are returned as sentinel errors or wrapped errors for context
//   - Compound writes run inside Transactor.WithTx
//
// # Membership State Engine
//
// MembershipService owns the relationship between a user and a club:
//
//	none --join(open)--------------> member
//	none --join(application)-------> pending application
//	pending --withdraw-------------> none
//	member --leave-----------------> none
//
// An owner's status decision drives membership through a fixed table:
// accepted grants membership; rejected and pending revoke it.
//
// # Repository Interfaces
//
// Services define their own repository interfaces, allowing:
//
//   - Easy mocking for unit tests
//   - Decoupling from specific database implementations
//   - Clear contracts for data access requirements
//
// # Error Handling
//
// Services return domain-specific errors defined as package-level variables:
//
//	var (
//	    ErrClubNotFound          = errors.New("club not found")
//	    ErrApplicationNotPending = errors.New("only pending applications can be withdrawn")
//	)
//
// Handlers map these to HTTP responses with errors.Is.
package service
