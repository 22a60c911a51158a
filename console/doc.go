// Package console implements the data layer of the marketplace seller
// dashboard: cached resource reads and the mutation flows that keep the query
// store synchronized with the backend.
//
// # Overview
//
// A Console composes three collaborators:
//
//   - client.Client: typed resource endpoints over the REST backend
//   - cache.QueryStore: the session-scoped store of last-fetched payloads
//   - Notifier: the sink for user-facing success/error notifications
//
// Reads go through the store: a miss transparently invokes the matching
// endpoint and memoizes the result under a (resource, params) key. Mutations
// call one or more endpoints strictly in sequence and, on success, write
// through to the store so every loaded entry reflects the change before the
// flow returns.
//
// # Mutation Flows
//
//   - CreateProduct: upload image, create product, append the result to every
//     loaded product-list entry
//   - EditProduct: optional upload, edit product, replace the product by id in
//     loaded lists and overwrite the detail entry
//   - ChangeProductStatus: change status, patch only the status field wherever
//     the product is loaded
//   - SignUp / SignIn / SignOut: account flows; SignOut also drops every entry
//     loaded during the session
//
// Any failing step aborts the remaining ones. Prior store state is left
// unchanged and the error propagates to the caller after an error
// notification; there are no automatic retries. Side effects of steps that
// already succeeded (an uploaded attachment, say) are not rolled back.
//
// # Cache Synchronization
//
// The console registers every key it populates, mapped to its resource name.
// Patches iterate the registered product-list keys and rewrite each entry
// from a copy, so slices already returned to readers are never mutated in
// place. Lists that were never loaded are never materialized by a patch; they
// fetch fresh on first read. Status patches are field-level and idempotent:
// applying the same patch twice leaves the store in the same state.
//
// # Concurrency
//
// The console itself holds no locks. Concurrent identical reads are coalesced
// by the store, and patches from two racing mutations apply last-writer-wins,
// which is acceptable because the backend is the authority on state. In-flight
// requests are not cancelled on navigation; a late response writes to the
// store harmlessly.
//
// # Validation
//
// Form types validate with ozzo-validation before any request is issued.
// Failures return a *ValidationError with per-field messages and trigger no
// notification; rendering them inline is the form layer's job.
package console
