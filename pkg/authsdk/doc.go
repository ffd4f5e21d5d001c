/*
Package authsdk is the Go client for the inventory API.

# Client and Session

Client is a thin, stateless wrapper over the REST endpoints. Authenticated
calls take the access token as an argument:

	c := authsdk.NewClient("http://localhost:8080")
	tokens, err := c.Login(ctx, "alice", "correct-horse")
	me, err := c.Me(ctx, tokens.AccessToken)

Session owns the token pair through a SessionStore and handles expiry:

	s := authsdk.NewSession(c, authsdk.NewFileStore(path))
	if err := s.Login(ctx, "alice", "correct-horse"); err != nil { ... }
	vendors, err := s.ListVendors(ctx)

# Refresh

Access tokens are short lived. When a request made through Session.Do
fails with a 401 and a refresh token is held, the session redeems the
refresh token and retries the request once. Requests failing at the same
time share a single refresh call. If the refresh is rejected (or times out,
see WithRefreshTimeout) the store is cleared and the original 401 is
returned; the caller has to log in again.

# Errors

Every failure from the server is an *APIError carrying the wire code,
message and HTTP status. Use IsAuthenticationError and IsNotFound, or
errors.Is against the predefined values such as ErrInvalidCredentials.
*/
package authsdk
