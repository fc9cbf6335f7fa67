// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation on the X-API-Key header. An empty configured key
//     disables the check.
//   - rayid: assigns a request id (RayID) to every request, stores it in the
//     fiber locals for logger.WithRayID and echoes it in the X-Ray-ID header.
//
// rayid is registered first so every log line of a request carries the same id.
package middleware
