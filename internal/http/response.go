package http

import (
	"encoding/json"
	"net/http"
)

const genericServerError = "Internal Server Error"

// Response builds one reply: status, headers and a JSON or plain-text body.
type Response struct {
	statusCode int
	headers    map[string]string
	body       []byte
}

func NewResponse() *Response {
	return &Response{
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

func (b *Response) Status(code int) *Response {
	b.statusCode = code
	return b
}

func (b *Response) Header(name, value string) *Response {
	b.headers[name] = value
	return b
}

// JSON encodes v as the body. Encoding failures turn the reply into a 500.
func (b *Response) JSON(v any) *Response {
	data, err := json.Marshal(v)
	if err != nil {
		return InternalError()
	}
	b.headers["Content-Type"] = "application/json; charset=utf-8"
	b.body = data
	return b
}

func (b *Response) Text(s string) *Response {
	b.headers["Content-Type"] = "text/plain; charset=utf-8"
	b.headers["X-Content-Type-Options"] = "nosniff"
	b.body = []byte(s + "\n")
	return b
}

// Body sets raw bytes with an explicit content type.
func (b *Response) Body(contentType string, data []byte) *Response {
	b.headers["Content-Type"] = contentType
	b.body = data
	return b
}

func (b *Response) Write(w http.ResponseWriter) {
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}
	w.WriteHeader(b.statusCode)
	if len(b.body) > 0 {
		_, _ = w.Write(b.body)
	}
}

// BadRequest is a 400 with a plain-text reason.
func BadRequest(message string) *Response {
	return NewResponse().Status(http.StatusBadRequest).Text(message)
}

// InternalError is a 500 that never leaks the underlying error.
func InternalError() *Response {
	return NewResponse().Status(http.StatusInternalServerError).Text(genericServerError)
}

func ServiceUnavailable(message string) *Response {
	return NewResponse().Status(http.StatusServiceUnavailable).JSON(map[string]string{"status": message})
}
