// Package api wraps each Vaultra backend endpoint in a typed call on top of
// core.AccessLayer. Reads go through the access layer's in-flight
// deduplication; writes are always sent.
package api
