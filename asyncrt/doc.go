// Package asyncrt implements the process-global asynchronous runtime: a
// reactor owning the OS readiness poller plus the timer tables, and a
// cooperative executor driven by a mutex-guarded FIFO ready queue.
//
// Both the reactor and the executor are process-wide singletons, reachable
// via [GetReactor] and [GetExecutor]. A host program and any dynamically
// loaded plugins that link this package share exactly one of each — by
// design, not by accident: the foreign interface built on top of this
// package (see the sibling cmd/libasynctui shim) exists precisely so a
// host and its plugins cooperate in one reactor/executor pair instead of
// running duplicate runtimes. Loading two independent copies of this
// package into the same process (e.g. via two statically-linked plugins
// built against different versions) is an error outside this package's
// control.
package asyncrt
