// Package server runs the HTTP endpoint of long-running textc processes.
//
// In watch mode it serves Prometheus metrics and the health probes. The
// server binds synchronously, so address errors surface before the first
// rebuild, and serves in the background until Shutdown.
package server
