package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced by the simulated API.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeTicketNotFound    = "TICKET_NOT_FOUND"
	CodeAuditNotFound     = "AUDIT_NOT_FOUND"
	CodeCommentNotFound   = "COMMENT_NOT_FOUND"
	CodeUserNotFound      = "USER_NOT_FOUND"
	CodeUserAlreadyExists = "USER_ALREADY_EXISTS"
	CodeUploadNotFound    = "UPLOAD_TOKEN_NOT_FOUND"
	CodeAttachmentMissing = "ATTACHMENT_NOT_FOUND"
	CodeInternal          = "INTERNAL_ERROR"
)

// DomainError standardizes application errors. HTTPStatus mirrors the REST
// surface being simulated; nothing listens on a socket.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

func NewTicketNotFound(ticketID int64) error {
	return NewDomainError(CodeTicketNotFound, fmt.Sprintf("Ticket with ID %d not found", ticketID),
		http.StatusNotFound, map[string]any{"ticket_id": ticketID})
}

func NewAuditNotFound(auditID, ticketID int64) error {
	return NewDomainError(CodeAuditNotFound,
		fmt.Sprintf("Audit with ID %d not found for ticket %d", auditID, ticketID),
		http.StatusNotFound, map[string]any{"audit_id": auditID, "ticket_id": ticketID})
}

func NewCommentNotFound(commentID int64) error {
	return NewDomainError(CodeCommentNotFound, fmt.Sprintf("Comment with ID %d not found", commentID),
		http.StatusNotFound, map[string]any{"comment_id": commentID})
}

func NewUserNotFound(userID int64) error {
	return NewDomainError(CodeUserNotFound, fmt.Sprintf("User ID %d not found", userID),
		http.StatusNotFound, map[string]any{"user_id": userID})
}

func NewUserAlreadyExists(field, value string) error {
	return NewDomainError(CodeUserAlreadyExists,
		fmt.Sprintf("User with %s '%s' already exists", field, value),
		http.StatusConflict, map[string]any{field: value})
}

func NewUploadTokenNotFound(token string) error {
	return NewDomainError(CodeUploadNotFound, fmt.Sprintf("Upload token %s not found", token),
		http.StatusNotFound, map[string]any{"token": token})
}

func NewAttachmentNotFound(attachmentID int64) error {
	return NewDomainError(CodeAttachmentMissing,
		fmt.Sprintf("Attachment with ID %d not found", attachmentID),
		http.StatusNotFound, map[string]any{"attachment_id": attachmentID})
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// CodeOf extracts the error code, or empty for nil.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	return ToDomainError(err).Code
}
