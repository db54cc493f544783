package utils

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

type PageMeta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

func JSONPage(ctx iris.Context, data interface{}, page, perPage int, total int64) {
	ctx.JSON(iris.Map{
		"data":  data,
		"meta":  PageMeta{Page: page, PerPage: perPage, Total: total},
		"links": iris.Map{},
	})
}

func CreateError(statusCode int, title string, detail string, ctx iris.Context) {
	ctx.StopWithJSON(statusCode, iris.Map{"title": title, "detail": detail})
}

func CreateNotFound(ctx iris.Context) {
	CreateError(iris.StatusNotFound, "Not Found", "Resource not found.", ctx)
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(iris.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred.", ctx)
}

func CreateEmailAlreadyRegistered(ctx iris.Context) {
	CreateError(iris.StatusConflict, "Conflict", "Email already registered.", ctx)
}

// HandleValidationErrors maps ReadJSON/validator failures to a 400 listing
// the failing fields.
func HandleValidationErrors(err error, ctx iris.Context) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]iris.Map, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			fields = append(fields, iris.Map{
				"field":     fieldErr.Field(),
				"condition": fieldErr.Tag(),
			})
		}
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"title": "Validation Error", "fields": fields})
		return
	}
	CreateError(iris.StatusBadRequest, "Bad Request", err.Error(), ctx)
}
