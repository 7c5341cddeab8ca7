// Package connectors holds the candidate providers for each launcher
// source and the factory that builds them from provider settings.
//
// Providers are registered with the Factory at startup.
package connectors
