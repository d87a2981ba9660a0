package v1

import (
	"fmt"
	"gateway/internal/domain"
	"gateway/pkg/utils"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type NewDepositData struct {
	Username   string  `json:"username" validate:"required,min=1,max=64"`
	PriceFloat float64 `json:"price" validate:"required,gt=0"`
	Currency   string  `json:"currency" validate:"max=16"`
	Network    string  `json:"network" validate:"network"`
	Webhook    string  `json:"webhook" validate:"webhook,max=200"`

	Price decimal.Decimal `json:"-"` // used after validation
}

// checks the validity of data in body
// returns false if there is an error
func filterQuery(c *gin.Context) (*NewDepositData, bool) {
	var data NewDepositData
	err := c.ShouldBindJSON(&data)
	if err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return nil, false
	}

	v := validator.New()

	v.RegisterValidation("network", validateNetwork)
	v.RegisterValidation("webhook", validateWebhook)
	err = v.Struct(data)
	if err == nil {
		data.Price = decimal.NewFromFloat(data.PriceFloat)

		return &data, true
	}

	validationErrs, castErr := utils.SafeCast[validator.ValidationErrors](err)
	if castErr != nil || validationErrs == nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return nil, false
	}

	validationErr := validationErrs[0]
	responseErr(c, http.StatusBadRequest, formatValidationErr(data, validationErr), "")

	return nil, false
}

func validateNetwork(fl validator.FieldLevel) bool {
	if fl.Field().String() == "" { // network is optional
		return true
	}
	return !domain.StrToNetwork(fl.Field().String()).IsNone()
}

func validateWebhook(fl validator.FieldLevel) bool {
	if fl.Field().String() == "" { // webhook is not set
		return true
	}

	if len(fl.Field().String()) <= 8 {
		return false
	}
	if !strings.Contains(fl.Field().String(), ".") { // has dot
		return false
	}

	_, err := url.ParseRequestURI(fl.Field().String())
	return err == nil
}

func formatValidationErr(data any, err validator.FieldError) string {
	jsonTag := getJSONTag(data, err.Field())

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", jsonTag)
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of '%s'", jsonTag, err.Param())
	case "min":
		return fmt.Sprintf("field '%s' must be at least %s characters long", jsonTag, err.Param())
	case "max":
		return fmt.Sprintf("field '%s' must be at most %s characters long", jsonTag, err.Param())
	case "gt":
		return domain.ErrMsgInvalidAmount
	//  custom tags
	case "webhook":
		return fmt.Sprintf("field '%s' must be a valid url", jsonTag)
	case "network":
		return fmt.Sprintf("field '%s' must be one of '%s'", jsonTag, strings.TrimSpace(strings.Join(domain.Networks[1:], " ")))
	default:
		return fmt.Sprintf("invalid field '%s'", jsonTag)
	}
}

func getJSONTag(structType any, fieldName string) string {
	typ := reflect.TypeOf(structType)
	field, ok := typ.FieldByName(fieldName)
	if !ok {
		return fieldName
	}
	tag := field.Tag.Get("json")
	if tag == "" {
		return fieldName
	}
	return tag
}
