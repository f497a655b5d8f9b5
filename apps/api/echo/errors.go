package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/festify/console/core"
)

var statusOfCode = map[core.ErrorCode]int{
	core.CodeNotFound:     http.StatusNotFound,
	core.CodeBadRequest:   http.StatusBadRequest,
	core.CodeUnauthorized: http.StatusUnauthorized,
	core.CodeInternal:     http.StatusInternalServerError,
}

var codeOfStatus = map[int]core.ErrorCode{
	http.StatusNotFound:     core.CodeNotFound,
	http.StatusUnauthorized: core.CodeUnauthorized,
	http.StatusForbidden:    core.CodeUnauthorized,
}

type errorResponse struct {
	Code   core.ErrorCode    `json:"code"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		res := errorResponse{Code: core.CodeInternal, Error: http.StatusText(http.StatusInternalServerError)}

		var appErr *core.Error
		var httpErr *echo.HTTPError
		var vErr *core.ValidationError
		var fldErrs validator.ValidationErrors

		switch {
		case errors.As(err, &appErr):
			res.Code = appErr.Code
			res.Error = appErr.Message
		case errors.As(err, &vErr):
			res.Code = core.CodeBadRequest
			res.Error = vErr.Error()
			if len(vErr.Fields) > 0 {
				res.Fields = make(map[string]string, len(vErr.Fields))
				for _, fErr := range vErr.Fields {
					res.Fields[fErr.Field] = fErr.Error
				}
				res.Error = vErr.Fields[0].Error
			}
		case errors.As(err, &fldErrs):
			res.Code = core.CodeBadRequest
			res.Fields = make(map[string]string, len(fldErrs))
			for _, fErr := range fldErrs {
				res.Fields[fErr.Field()] = fErr.Translate(translator)
			}
			res.Error = fldErrs[0].Translate(translator)
		case errors.As(err, &httpErr):
			if herr, ok := httpErr.Internal.(*echo.HTTPError); ok {
				httpErr = herr
			}
			res.Code = core.CodeBadRequest
			if code, ok := codeOfStatus[httpErr.Code]; ok {
				res.Code = code
			} else if httpErr.Code >= http.StatusInternalServerError {
				res.Code = core.CodeInternal
			}
			if msg, ok := httpErr.Message.(string); ok {
				res.Error = msg
			} else {
				res.Error = http.StatusText(httpErr.Code)
			}
		}

		status := statusOfCode[res.Code]
		if res.Code == core.CodeInternal {
			logger.Error(res.Error, errors.Wrap(err, res.Error), contextActor(ctx))

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
			if ctx.Echo().Debug {
				res.Error = err.Error()
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(status)
			} else {
				err = ctx.JSON(status, res)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
