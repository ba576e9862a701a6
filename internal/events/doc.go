// Package events provides board change events and their fan-out.
//
// The board service emits a BoardEvent after every successful mutation.
// Handlers registered with an EventEmitter receive each event; a failing
// handler is logged and never fails the mutation that produced the event.
//
// The primary components are:
// - BoardEvent: a single change to a column or task
// - InMemoryEventEmitter: dispatches events to registered handlers
// - AuditHandler: writes one structured log line per event
// - RedisPublisher: publishes events as JSON to a Redis pub/sub channel
package events
