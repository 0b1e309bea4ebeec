// Package doctor checks that a project has the layout the generators expect
// and optionally repairs what can be repaired safely: a wrapper that lost its
// executable bit, or a missing screen or menu registry file.
package doctor
