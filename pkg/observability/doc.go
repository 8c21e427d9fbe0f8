/*
Package observability turns engine lifecycle hooks into metrics and logs.

Metrics owns a private Prometheus registry so several engines (or tests) can
coexist in one process; Combine fans one engine's hooks out to several sinks.
*/
package observability
