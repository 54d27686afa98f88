package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/authservice/internal/common"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const maxBodyBytes = 1 << 20

type validatable interface {
	Validate() error
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r credentialsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 24)),
	)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r refreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (r changePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OldPassword, validation.Required, validation.Length(8, 48)),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(8, 48)),
	)
}

// decodeRequest reads a JSON body into dst and runs its rules. Both
// failures are KindValidation; rule failures carry per-field details.
func decodeRequest(r *http.Request, dst validatable) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return common.WrapError(common.KindValidation, "Invalid request body", err)
	}

	if err := dst.Validate(); err != nil {
		e := common.WrapError(common.KindValidation, common.ErrValidation.Message, err)

		var fieldErrs validation.Errors
		if errors.As(err, &fieldErrs) {
			details := make(map[string]string, len(fieldErrs))
			for field, fe := range fieldErrs {
				details[field] = fe.Error()
			}
			e.Details = details
		}
		return e
	}

	return nil
}
