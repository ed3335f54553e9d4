// Package provider implements content generation backends.
package provider

import "github.com/ZaguanLabs/gosocial"

// Generator is an alias to the main package interface for convenience.
type Generator = gosocial.Generator

// PromptRequest is an alias to the main package type.
type PromptRequest = gosocial.PromptRequest
