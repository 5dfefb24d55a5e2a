package contact

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"contact-form/internal/domain"
)

const (
	MsgNameRequired  = "name is required"
	MsgNameTooShort  = "name must be at least 3 characters"
	MsgEmailRequired = "email is required"
	MsgEmailInvalid  = "must be a valid email"
	MsgPhoneInvalid  = "must be a valid phone number"
)

// PhonePattern is the Brazilian mobile format, e.g. "(11) 91234-5678".
const PhonePattern = `^\(\d{2}\) \d{5}-\d{4}$`

var (
	phoneRe  = regexp.MustCompile(PhonePattern)
	validate = newValidate()
)

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// 全串匹配，不做 trim
	mustRegister(v, "br_mobile", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("contact: register validation " + tag + ": " + err.Error())
	}
}

// ValidationError lists every failed field rule in name, email, phone order.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string { return strings.Join(e.Messages, "; ") }

// Validate turns an untyped input record into a NormalizedContact. All rules
// are checked; on failure the returned error is a *ValidationError.
func Validate(input map[string]any) (domain.NormalizedContact, error) {
	var msgs []string

	name, ok := input["name"].(string)
	switch {
	case !ok:
		msgs = append(msgs, MsgNameRequired)
	case validate.Var(name, "min=3") != nil:
		msgs = append(msgs, MsgNameTooShort)
	}

	email, ok := input["email"].(string)
	switch {
	case !ok:
		msgs = append(msgs, MsgEmailRequired)
	case validate.Var(email, "email") != nil:
		msgs = append(msgs, MsgEmailInvalid)
	}

	phone, ok := input["phone"].(string)
	if !ok || validate.Var(phone, "br_mobile") != nil {
		msgs = append(msgs, MsgPhoneInvalid)
	}

	if len(msgs) > 0 {
		return domain.NormalizedContact{}, &ValidationError{Messages: msgs}
	}
	return domain.NormalizedContact{Name: name, Email: email, Phone: phone}, nil
}
