package handlers

import (
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
)

// validateInput 校验请求体，返回字段级错误报告；为 nil 表示校验通过
func (a *App) validateInput(input interface{}) map[string]string {
	err := a.validate.Struct(input)
	if err == nil {
		return nil
	}

	fields := map[string]string{}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		fields["non_field_errors"] = err.Error()
		return fields
	}

	for _, fe := range vErrs {
		fields[fe.Field()] = validationMessage(fe)
	}

	return fields
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("ensure this field has at least %s characters", fe.Param())
	case "email":
		return "enter a valid email address"
	default:
		return fmt.Sprintf("failed on %s validation", fe.Tag())
	}
}
