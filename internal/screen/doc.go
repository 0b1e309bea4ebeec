// Package screen implements the create-screen and create-entity-screen
// commands and the helper that registers screens in the web module's
// web-screens.xml, web-menu.xml and main message bundle.
package screen
