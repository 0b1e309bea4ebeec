// Package gradle runs tasks through a project's Gradle wrapper.
package gradle
