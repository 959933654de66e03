// Package prompts implements the prompt template domain for claimcheck.
// It provides types, data access, and HTTP handlers for managing named
// prompt template overrides per analysis stage, plus the composition
// logic that binds policy and invoice text into a template.
package prompts

import "github.com/google/uuid"

// Prompt represents a named template override for an analysis stage.
type Prompt struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Stage       Stage     `json:"stage"`
	Template    string    `json:"template"`
	Description *string   `json:"description"`
	Active      bool      `json:"active"`
}

// CreateCommand carries the data needed to create a new prompt override.
type CreateCommand struct {
	Name        string  `json:"name"`
	Stage       Stage   `json:"stage"`
	Template    string  `json:"template"`
	Description *string `json:"description"`
}

// UpdateCommand carries the data needed to update an existing prompt override.
type UpdateCommand struct {
	Name        string  `json:"name"`
	Stage       Stage   `json:"stage"`
	Template    string  `json:"template"`
	Description *string `json:"description"`
}
