// Package metrics exports run statistics in the Prometheus text format.
//
// The CLI runs once and exits, so nothing is scraped; instead WriteTextfile dumps
// the registry to a file picked up by the node_exporter textfile collector.
package metrics
