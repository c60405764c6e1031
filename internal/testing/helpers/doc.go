// Package helpers provides test utility functions for the clubs API.
//
// The helpers package contains common test utilities for building requests,
// minting tokens, and asserting on JSON responses.
//
// # JWT Helpers
//
// Generate test JWT tokens signed with TestJWTSecret:
//
//	jwtHelper := helpers.NewJWTHelper(t)
//	token := jwtHelper.GenerateToken(user)
//	expired := jwtHelper.GenerateExpiredToken(user)
//
// # Request Helpers
//
// Build and serve requests fluently:
//
//	resp := helpers.NewRequest(t, "POST", "/api/clubs/1/join").
//	    WithAuth(jwtHelper, student).
//	    Do(router)
//
// # Assertion Helpers
//
// Common response assertions:
//
//	helpers.AssertStatus(t, resp, http.StatusOK)
//	helpers.AssertError(t, resp, http.StatusNotFound, "Club not found")
//	helpers.AssertValidationError(t, resp, "start_time")
package helpers
