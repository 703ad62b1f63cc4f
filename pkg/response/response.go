package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tradecove/catalog-service/internal/apperrors"
)

type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

type ErrorBody struct {
	Code       int                        `json:"code"`
	Msg        string                     `json:"msg"`
	Violations []apperrors.FieldViolation `json:"violations,omitempty"`
}

func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, Response{Code: http.StatusOK, Msg: "success", Data: data})
}

func Created(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusCreated, Response{Code: http.StatusCreated, Msg: "created", Data: data})
}

func NoContent(ctx *gin.Context) {
	ctx.Status(http.StatusNoContent)
}

// Error maps the apperrors kind of err to an HTTP status. Ambiguous purchase
// requests are caller integration bugs and surface as 422.
func Error(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindConflict:
		status = http.StatusConflict
	case apperrors.KindInvalidRequest:
		status = http.StatusBadRequest
	case apperrors.KindStateConflict, apperrors.KindAmbiguous:
		status = http.StatusUnprocessableEntity
	}

	body := ErrorBody{Code: status, Msg: err.Error()}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		body.Violations = appErr.Violations
	}
	ctx.JSON(status, body)
}
