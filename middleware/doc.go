// Package middleware provides the HTTP request pipeline: correlation
// context establishment, cookie-based session validation and request
// logging.
//
// Order matters: RequestContext must run first so the session and logging
// layers see the request id, then Session populates the identity slot,
// then handlers (optionally behind RequireAuth) consume it via Identity.
//
//	handler = middleware.RequestContext(
//		middleware.Logging(log)(
//			middleware.Session(mgr, cookies, log)(mux)))
package middleware
