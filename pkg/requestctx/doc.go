// Package requestctx carries per-request correlation data on context.Context.
//
// One Context is created per inbound request before any session validation
// runs and is discarded when the request completes. Because the value rides
// on the request's context.Context, every function in the request's call
// tree, including goroutines handed the same context, sees the same
// correlation data, while concurrent requests remain fully isolated.
//
// Child scopes layer additional fields over the parent without mutating it:
//
//	ctx = requestctx.Child(ctx, requestctx.Context{
//		Fields: map[string]string{"service": "SessionManager"},
//	})
//
// Lookups inside the child scope see the merged view; code holding the
// original context keeps seeing the original values.
package requestctx
