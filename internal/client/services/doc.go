// Package services contains the use cases behind each screen of the OpenMat
// client: browsing academies, orders, the owner dashboard and the profile.
//
// Services that need the signed-in user read the session from the context
// (see session.WithSession); calling them with a bare context yields
// session.ErrConfiguration.
package services
