// Package common defines shared constants and sentinel errors used across
// client and server layers of wikipost. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors raised before anything touches the network.
	ErrorValidation = errors.New("validation error")

	// A submission attempt while another one is still in flight.
	ErrorSubmissionInFlight = errors.New("submission already in progress")
)
