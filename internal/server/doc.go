// Package server assembles the HTTP surface of the site: the GitHub stars
// endpoint, legacy redirects, health and Prometheus metrics, and optionally
// the built static output.
package server
