// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// MovieImportedEvent is published after each import request completes. It
// reports both persistence legs so downstream consumers can audit
// divergence between the relational store and the document mirror without
// querying either.
type MovieImportedEvent struct {
	Title          string   `json:"title"`
	Year           int      `json:"year"`
	Genre          string   `json:"genre"`
	Actors         []string `json:"actors"`
	RelationalID   int64    `json:"relational_id"`
	DocumentID     int64    `json:"document_id"`
	AlreadyExisted bool     `json:"already_existed"`
	DocumentError  string   `json:"document_error,omitempty"`
	ImportedAt     string   `json:"imported_at"`
}
