// Package jwt provides JSON Web Token utilities for the clubs API.
//
// Tokens are HS256-signed with a shared secret and carry the caller identity
// {id, email, name, role} alongside the registered claims. The default
// lifetime is seven days.
//
// # Token Generation
//
//	svc, err := jwt.NewService(jwt.Config{
//	    Secret:     os.Getenv("JWT_SECRET"),
//	    Issuer:     "clubs-api",
//	    Expiration: 7 * 24 * time.Hour,
//	})
//
//	token, err := svc.Sign(jwt.Claims{UserID: u.ID, Email: u.Email, Name: u.Name, Role: "student"})
//
// # Token Validation
//
//	claims, err := svc.Validate(tokenString)
//	if errors.Is(err, jwt.ErrTokenExpired) {
//	    // ask the user to sign in again
//	}
package jwt
