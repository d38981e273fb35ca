package response

import (
	"errors"
	"net/http"

	"github.com/alimikegami/refurbished-store/storefront-service/pkg/errs"
	"github.com/labstack/echo/v4"
)

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Errors  interface{} `json:"errors"`
}

func WriteSuccessResponse(c echo.Context, message string, data interface{}) error {
	return writeSuccess(c, http.StatusOK, message, data)
}

func WriteCreatedResponse(c echo.Context, message string, data interface{}) error {
	return writeSuccess(c, http.StatusCreated, message, data)
}

func writeSuccess(c echo.Context, statusCode int, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Status = "success"
	resp.Data = data
	resp.Message = message

	return c.JSON(statusCode, resp)
}

// WriteErrorResponse never leaks the text of an unclassified error.
func WriteErrorResponse(c echo.Context, err error, errors interface{}) error {
	statusCode := errs.GetErrorStatusCode(err)
	resp := ErrorResponse{}
	resp.Status = "error"
	resp.Message = publicMessage(err, statusCode)
	resp.Errors = errors

	return c.JSON(statusCode, resp)
}

func publicMessage(err error, statusCode int) string {
	if statusCode == http.StatusInternalServerError && !errors.Is(err, errs.ErrSeedNotConfigured) {
		return errs.ErrInternalServer.Error()
	}

	return err.Error()
}
