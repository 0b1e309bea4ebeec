// Package theme implements extend-theme. Extending a theme copies its
// customization skeleton into modules/web/themes/<theme> and, the first time
// a theme is extended, registers the web-themes module in settings.gradle
// and build.gradle.
package theme
