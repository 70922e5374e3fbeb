// Package githubstars fetches the repository star count from the GitHub REST
// API and serves it at /api/github-stars. Upstream failures degrade to a zero
// count with an error field; the handler never panics and never retries.
package githubstars
