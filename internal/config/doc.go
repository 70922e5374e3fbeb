// Package config manages user-level settings stored at ~/.smoothui/config.yaml.
// Values can be overridden with SMOOTHUI_* environment variables, e.g.
// SMOOTHUI_SITE_BASE_URL overrides the site.base_url key.
package config
