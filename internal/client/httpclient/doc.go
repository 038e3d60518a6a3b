// Package httpclient is the single request-sending facility of the OpenMat
// client.
//
// A Client has a fixed base URL and a mutable set of default headers that are
// attached to every outgoing request until cleared. The session layer uses it
// to carry "Authorization: Bearer <token>"; nothing else should touch that
// header.
//
// Every call is exactly one attempt: there is no retry and no caching. Non-2xx
// responses come back as *HTTPError, transport failures as *NetworkError.
package httpclient
