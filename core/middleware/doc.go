// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key header or api_key query parameter).
//   - rayid: assigns a ray id to every request, stores it in the request
//     locals for logger.WithRayID and echoes it in the X-Ray-ID header.
//
// Register rayid first so every later log line carries the id.
package middleware
