// Package api handles incoming HTTP requests for the board, validates them,
// and formats responses. It adapts HTTP to the board service: handlers
// decode and validate input, call service.BoardService, and map errors to
// status codes with MapErrorToStatusCode.
package api
