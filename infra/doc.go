// Package infra contains technical adapters such as the optimizer and
// forecast HTTP clients, the MQTT change publisher and metrics exporters.
// These packages should depend only on the interfaces defined in the core
// packages.
package infra
