// Package semfed is a SPARQL federation adapter. It lets a query engine
// delegate a SERVICE fragment addressed by a custom identifier scheme
// (wf:// by default) to a remote SPARQL endpoint reached through an HTTP
// gateway, and folds the remote results back into local evaluation as a
// lazy stream of variable bindings.
//
// # Architecture
//
// The adapter is split into small, single-purpose packages:
//
//   - scheme: pure identifier claim check and marker-to-gateway rewrite
//   - transport: HTTP GET request construction and single-shot execution
//   - sparql: SPARQL results wire formats, result sets, binding streams
//   - plan: the query-fragment and variable-set surface borrowed from
//     the enclosing engine
//   - service: the service descriptor, the per-call evaluable, and the
//     scheme-keyed registry the engine selects adapters from
//   - errors, config, metric: classified evaluation errors, adapter
//     configuration, and prometheus instruments
//
// Control flow for one evaluation:
//
//	engine -> scheme.Resolver -> transport.BuildRequest ->
//	transport.Executor -> sparql.ParseSelect -> sparql.BindingStream -> engine
//
// Exactly one synchronous HTTP round trip happens per evaluation. The
// adapter performs no retries, no caching, and no authentication; those
// policies belong to the engine and the deployment.
package semfed
