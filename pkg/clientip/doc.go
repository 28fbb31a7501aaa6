// Package clientip extracts real client IP addresses from HTTP requests.
//
// Requests that arrive through proxies or load balancers carry the original
// client address in forwarding headers rather than in the TCP connection.
// The package checks headers in this priority order:
//  1. X-Forwarded-For (leftmost entry is the original client)
//  2. X-Real-IP (nginx and similar proxies)
//  3. RemoteAddr (direct connection)
//
// All candidates are validated with net.ParseIP and normalized; malformed
// values and the unspecified address are skipped. GetIP never panics and
// always returns a non-empty string, degrading to the raw RemoteAddr when
// nothing better is available.
package clientip
