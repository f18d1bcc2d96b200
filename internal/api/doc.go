// Package api provides the HTTP boundary for the progress core: review
// submission, queue and quiz retrieval, level unlock and quota endpoints,
// and the trusted-time probe. Handlers translate between JSON requests and
// the service layer, map internal errors to safe HTTP responses, and never
// leak raw error strings to clients.
package api
