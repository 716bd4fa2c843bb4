package response

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// Business codes carried in Response.Code. 0 is success; the leading
// digits group codes by area (10 request, 11 auth, 12 attendance,
// 13 reports, 50 server).
const (
	CodeOK = 0

	CodeBadRequest      = 10001
	CodeUnauthenticated = 10002
	CodeForbidden       = 10003
	CodeRateLimited     = 10004
	CodeBodyTooLarge    = 10005

	CodeInvalidCredentials = 11001
	CodeInvalidToken       = 11002
	CodeUserNotFound       = 11003

	CodeInvalidAttendance = 12001
	CodeStatusUnchanged   = 12002
	CodeSlotMarked        = 12003
	CodeOverrideConflict  = 12004
	CodeRecordNotFound    = 12005

	CodeInvalidReport   = 13001
	CodeStudentNotFound = 13002
	CodeSubjectNotFound = 13003

	CodeInternal = 50000
)

// Response is the JSON envelope for every API reply.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// OK 200
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: CodeOK, Message: "success", Data: data})
}

// Created 201, used when a submission stored new rows.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: CodeOK, Message: "success", Data: data})
}

// Attachment streams an export as a download. The filename is sent in the
// RFC 5987 form so roll numbers and dates survive any client.
func Attachment(c *gin.Context, filename, contentType string, buf *bytes.Buffer) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// Error writes an error envelope. Handlers abort so later middleware sees
// the failure.
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.AbortWithStatusJSON(httpStatus, Response{Code: code, Message: message})
}

// ErrorWithDetails is Error plus a details string, usually a binding error.
func ErrorWithDetails(c *gin.Context, httpStatus int, code int, message, details string) {
	c.AbortWithStatusJSON(httpStatus, Response{Code: code, Message: message, Details: details})
}

func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code int, message string) {
	Error(c, http.StatusForbidden, code, message)
}

func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// Conflict reports a lost race on a slot or record.
func Conflict(c *gin.Context, code int, message string) {
	Error(c, http.StatusConflict, code, message)
}

// TooManyRequests 429 for the login limiter.
func TooManyRequests(c *gin.Context) {
	Error(c, http.StatusTooManyRequests, CodeRateLimited, "too many requests, try again later")
}

// InternalError hides the cause; handlers log it first.
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternal, "internal server error")
}
