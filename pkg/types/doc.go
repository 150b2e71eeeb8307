// Package types defines the WordStore interface, the word graph entity types
// (WordRecord, Bubble, Identity), backend configuration, and the standard
// error values shared by every wordbubble component.
package types
