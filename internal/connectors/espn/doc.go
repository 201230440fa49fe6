// Package espn implements the client for the public scoreboard/stats API.
//
// The client is read-only and unauthenticated. Requests pass through a
// proactive rate limiter so bursts of cache misses cannot hammer the
// upstream. Responses are returned as raw JSON so callers can cache the
// bytes verbatim; typed decoding happens separately via the Parse
// functions.
package espn
