// Package models provides the data structures exchanged with the remote messaging API and its callbacks.
package models

// Request is a transport-agnostic inbound callback: the raw body and lower-cased headers.
type Request struct {
	Body    string
	Headers map[string]string
}

// Response is the transport-agnostic answer to a callback.
type Response struct {
	Body       string
	Headers    map[string]string
	StatusCode int
}
