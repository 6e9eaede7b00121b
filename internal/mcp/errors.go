// Package mcp implements the Model Context Protocol (MCP) server for awsmcp.
package mcp

import (
	"context"
	"errors"
	"fmt"

	serrors "github.com/opskit/awsmcp/internal/errors"
)

// Custom MCP error codes for awsmcp.
const (
	// ErrCodeKnowledgeDisabled indicates the document knowledge base is off.
	ErrCodeKnowledgeDisabled = -32001

	// ErrCodeAWSUnavailable indicates AWS credentials could not be resolved.
	ErrCodeAWSUnavailable = -32002

	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout = -32003

	// Standard JSON-RPC error codes.
	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternalError  = -32603
)

// MCPError represents an MCP protocol error with code and message.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// MapError converts internal errors to MCP errors.
func MapError(err error) *MCPError {
	if err == nil {
		return nil
	}

	var se *serrors.SyncError
	if errors.As(err, &se) {
		return mapSyncError(se)
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &MCPError{Code: ErrCodeTimeout, Message: "Request timed out."}
	case errors.Is(err, context.Canceled):
		return &MCPError{Code: ErrCodeTimeout, Message: "Request was canceled."}
	default:
		return &MCPError{Code: ErrCodeInternalError, Message: "Internal server error."}
	}
}

// NewInvalidParamsError creates an error for invalid parameters with a custom message.
func NewInvalidParamsError(msg string) *MCPError {
	return &MCPError{
		Code:    ErrCodeInvalidParams,
		Message: msg,
	}
}

// mapSyncError converts a SyncError to an MCPError by category.
func mapSyncError(se *serrors.SyncError) *MCPError {
	switch se.Category {
	case serrors.CategoryValidation:
		return &MCPError{Code: ErrCodeInvalidParams, Message: se.Message}
	case serrors.CategoryNetwork:
		if se.Code == serrors.ErrCodeAWSUnavailable {
			return &MCPError{Code: ErrCodeAWSUnavailable, Message: se.Message}
		}
		return &MCPError{Code: ErrCodeInternalError, Message: se.Message}
	default:
		return &MCPError{Code: ErrCodeInternalError, Message: se.Message}
	}
}
