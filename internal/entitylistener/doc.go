// Package entitylistener implements create-entity-listener: it generates a
// Spring bean implementing the chosen CUBA entity listener interfaces in the
// core module and registers the bean in the entity's @Listeners annotation.
package entitylistener
