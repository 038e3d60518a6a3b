// Package models defines the typed records exchanged with the OpenMat API.
//
// Every record decoded from a response implements Validate, which reports a
// missing required field; the API layer turns that (and any JSON type
// mismatch) into a schema error instead of trusting the payload.
package models
