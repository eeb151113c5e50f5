package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tfortune6/perimeter-security/envelope"
	"github.com/tfortune6/perimeter-security/logging"
	"github.com/tfortune6/perimeter-security/store"
)

// Failure messages
const (
	msgUnauthorized   = "not logged in"
	msgLoginFailed    = "invalid username or password"
	msgInvalidBody    = "invalid request body"
	msgUnknownSource  = "currentSourceId does not exist"
	msgUnsupportedExt = "unsupported file format, only MP4/AVI/MKV"
)

// ok writes a success envelope
func ok(c *gin.Context, data any) {
	c.Set(logging.EnvelopeCodeKey, envelope.CodeOK)
	c.JSON(http.StatusOK, envelope.Success(data))
}

// fail writes a failure envelope. The transport status stays 200.
func fail(c *gin.Context, code int, message string) {
	c.Set(logging.EnvelopeCodeKey, code)
	c.AbortWithStatusJSON(http.StatusOK, envelope.Failure(code, message, nil))
}

// storeError maps a store sentinel error onto an envelope failure
func storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrZoneNotFound),
		errors.Is(err, store.ErrAlarmNotFound),
		errors.Is(err, store.ErrVideoNotFound):
		fail(c, envelope.CodeNotFound, err.Error())
	case errors.Is(err, store.ErrInvalidPolygon):
		fail(c, envelope.CodeValidation, err.Error())
	case errors.Is(err, store.ErrUnknownSource):
		fail(c, envelope.CodeValidation, msgUnknownSource)
	default:
		fail(c, envelope.CodeInternal, err.Error())
	}
}
