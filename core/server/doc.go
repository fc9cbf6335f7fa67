// Package server holds the HTTP server configuration.
//
// The start command owns the fiber application; this package only defines the
// settings it reads: listen port, API key and graceful shutdown timeout.
//
// # Usage
//
//	if err := cfg.Server.Validate(); err != nil {
//	    return err
//	}
//	app.Listen(cfg.Server.Address())
package server
