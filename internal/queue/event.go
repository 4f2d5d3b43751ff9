// Package queue defines message payloads exchanged over the message broker.
package queue

// LoginAttemptQueueName is the durable queue carrying audit events for
// login attempts.
const LoginAttemptQueueName = "auth.login_attempts"

// LoginAttemptEvent is published for every login attempt, successful
// or not. Detail holds the specific internal reason for a failure;
// it exists only on this side channel and is never part of an HTTP
// response.
type LoginAttemptEvent struct {
	Timestamp  string `json:"timestamp"`
	Identifier string `json:"identificador"`
	Success    bool   `json:"exitoso"`
	Detail     string `json:"detalle"`
}
