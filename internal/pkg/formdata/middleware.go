package formdata

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"medappointment/internal/pkg/response"
)

const contextKey = "formdata.result"

// Middleware parses the request with p and stores the Result on the gin
// context. A failed parse aborts the chain with the mapped status.
func Middleware(p *Parser) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := p.Parse(c.Request.Context(), c.GetHeader("Content-Type"), c.Request.Body)
		if err != nil {
			abort(c, err)
			return
		}

		c.Set(contextKey, res)
		c.Next()
	}
}

// FromContext returns the Result stored by Middleware.
func FromContext(c *gin.Context) (*Result, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil, false
	}
	res, ok := v.(*Result)
	return res, ok && res != nil
}

func abort(c *gin.Context, err error) {
	var fe *Error
	if !errors.As(err, &fe) {
		_ = c.Error(err)
		log.Printf("upload_store_failed path=%s error=%q", c.Request.URL.Path, err.Error())
		response.Abort(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store uploaded file")
		return
	}

	status := fe.Kind.Status()
	if fe.Kind == KindTransport {
		_ = c.Error(err)
		response.Abort(c, status, "INTERNAL_ERROR", "Failed to read request body")
		return
	}

	// The rest of an oversized body is never read; the client must not reuse the connection.
	if status == http.StatusRequestEntityTooLarge {
		c.Header("Connection", "close")
	}
	response.Abort(c, status, string(fe.Kind), fe.Msg)
}
