package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误
	ErrCodeInternalServer ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrCodeBadRequest     ErrorCode = "BAD_REQUEST"
	ErrCodeNotFound       ErrorCode = "NOT_FOUND"

	// 验证错误
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrCodeMissingRequired  ErrorCode = "MISSING_REQUIRED"

	// 文档处理错误
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	ErrCodeExtractionFailure ErrorCode = "EXTRACTION_FAILURE"
	ErrCodeDocumentNotFound  ErrorCode = "DOCUMENT_NOT_FOUND"
	ErrCodeFileTooLarge      ErrorCode = "FILE_TOO_LARGE"

	// 外部能力错误
	ErrCodeGenerationFailure ErrorCode = "GENERATION_FAILURE"
	ErrCodeTimeout           ErrorCode = "TIMEOUT"
)

// ErrorType 错误类型
type ErrorType int

const (
	ErrorTypeSystem ErrorType = iota
	ErrorTypeBusiness
	ErrorTypeValidation
	ErrorTypeExternal
)

// AppError 应用错误结构体
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Type     ErrorType   `json:"type"`
	HTTPCode int         `json:"-"`
	Details  interface{} `json:"details,omitempty"`
	Cause    error       `json:"-"`
}

// Error 实现error接口
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails 添加错误详情
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause 添加错误原因
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// 错误构造函数

// NewSystemError 创建系统错误
func NewSystemError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Type:     ErrorTypeSystem,
		HTTPCode: http.StatusInternalServerError,
	}
}

// NewValidationError 创建验证错误
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:     ErrCodeValidationFailed,
		Message:  message,
		Type:     ErrorTypeValidation,
		HTTPCode: http.StatusBadRequest,
	}
}

// NewUnsupportedFormatError 创建不支持的文件格式错误
func NewUnsupportedFormatError(filename string) *AppError {
	return &AppError{
		Code:     ErrCodeUnsupportedFormat,
		Message:  fmt.Sprintf("unsupported file type: %s", filename),
		Type:     ErrorTypeValidation,
		HTTPCode: http.StatusBadRequest,
	}
}

// NewExtractionFailureError 创建文本提取失败错误
func NewExtractionFailureError(filename string, cause error) *AppError {
	return &AppError{
		Code:     ErrCodeExtractionFailure,
		Message:  fmt.Sprintf("error processing document: %s", filename),
		Type:     ErrorTypeBusiness,
		HTTPCode: http.StatusBadRequest,
		Cause:    cause,
	}
}

// NewDocumentNotFoundError 创建文档未找到错误
func NewDocumentNotFoundError(docID string) *AppError {
	return &AppError{
		Code:     ErrCodeDocumentNotFound,
		Message:  "document not found",
		Type:     ErrorTypeBusiness,
		HTTPCode: http.StatusNotFound,
		Details:  map[string]string{"doc_id": docID},
	}
}

// NewGenerationFailureError 创建外部生成能力调用失败错误
func NewGenerationFailureError(operation string, cause error) *AppError {
	return &AppError{
		Code:     ErrCodeGenerationFailure,
		Message:  fmt.Sprintf("%s call failed", operation),
		Type:     ErrorTypeExternal,
		HTTPCode: http.StatusBadGateway,
		Cause:    cause,
	}
}

// NewFileTooLargeError 创建文件过大错误
func NewFileTooLargeError(limit int64) *AppError {
	return &AppError{
		Code:     ErrCodeFileTooLarge,
		Message:  fmt.Sprintf("file exceeds the %d byte upload limit", limit),
		Type:     ErrorTypeValidation,
		HTTPCode: http.StatusRequestEntityTooLarge,
	}
}

// IsAppError 检查是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 获取AppError，如果不是则包装为系统错误
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewSystemError(ErrCodeInternalServer, "internal server error").WithCause(err)
}
