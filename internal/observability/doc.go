// Package observability builds the service's zap logger and its Prometheus
// metrics.
package observability
