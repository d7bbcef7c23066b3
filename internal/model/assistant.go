package model

// AssistantRequest is the payload for the general AI assistant endpoint.
type AssistantRequest struct {
	Prompt string `json:"prompt" binding:"required,max=8192"`
}

// ProblemHelpRequest is the payload for contextual per-problem help.
type ProblemHelpRequest struct {
	Question           string `json:"question" binding:"required,max=4096"`
	ProblemTitle       string `json:"problem_title" binding:"max=200"`
	ProblemDescription string `json:"problem_description" binding:"max=8192"`
	Language           string `json:"language" binding:"max=32"`
}
