package error

// EmailErrorCode identifies why an email was not delivered.
type EmailErrorCode string

const (
	// ErrCodeEmailRejected means the provider refused the message itself,
	// so sending it again will fail the same way.
	ErrCodeEmailRejected EmailErrorCode = "EMAIL-020002"
	// ErrCodeEmailUnavailable means the provider could not be reached or
	// failed on its side.
	ErrCodeEmailUnavailable EmailErrorCode = "EMAIL-020003"
	ErrCodeTemplateRender   EmailErrorCode = "EMAIL-030001"
)

// EmailError reports a failed delivery.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

func (e *EmailError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *EmailError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the same email may succeed later.
func (e *EmailError) Retryable() bool {
	return e.Code == ErrCodeEmailUnavailable
}

// NewEmailError builds an EmailError.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{Code: code, Message: message, Err: err}
}
