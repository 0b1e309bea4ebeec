// Package config manages user-level settings stored at ~/.cuba-cli/config.yaml.
// Values can also be supplied through CUBA_-prefixed environment variables,
// e.g. CUBA_NON_INTERACTIVE=true or CUBA_TEMPLATES_DIR=/path/to/templates.
package config
