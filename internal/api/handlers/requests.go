package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/chandrabs25/Andaman-travel-website/pkg/errors"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createBookingRequest struct {
	PackageID   *int64 `json:"package_id" validate:"omitempty,gt=0"`
	TotalPeople string `json:"total_people" validate:"required,numeric"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"required,datetime=2006-01-02"`
	TotalAmount int64  `json:"total_amount" validate:"gte=0"`
}

type createReviewRequest struct {
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type createVendorRequest struct {
	BusinessName string `json:"business_name" validate:"required,max=200"`
	Description  string `json:"description" validate:"max=2000"`
	Address      string `json:"address" validate:"max=500"`
}

// decodeAndValidate reads a JSON body into dst and checks its tags. When
// missing is set it replaces the description of an absent required field.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any, missing string) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if missing != "" && errors.Is(err, io.EOF) {
			return apperrors.NewValidationError(missing)
		}
		return apperrors.NewValidationError("invalid request payload")
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if missing != "" && errors.As(err, &fieldErrs) && fieldErrs[0].Tag() == "required" {
			return apperrors.NewValidationError(missing)
		}
		return apperrors.NewValidationError(describeValidation(err))
	}
	return nil
}

func describeValidation(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "invalid request payload"
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "numeric":
		return fmt.Sprintf("%s must be a number", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s must be YYYY-MM-DD", fe.Field())
	case "min", "max":
		if fe.Field() == "rating" {
			return "Rating must be between 1 and 5"
		}
		return fmt.Sprintf("%s is out of range", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
