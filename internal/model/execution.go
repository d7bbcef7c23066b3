package model

// ExecuteRequest is the payload for running code through the sandbox proxy.
type ExecuteRequest struct {
	Code     string `json:"code" binding:"required,max=65536"`
	Language string `json:"language" binding:"required,max=32"`
}

// ExecutionResult is the sandbox output passed back to the client.
type ExecutionResult struct {
	Output     string `json:"output"`
	Memory     string `json:"memory"`
	CPUTime    string `json:"cpu_time"`
	StatusCode int    `json:"status_code"`
}
