// Package forms validates submitted HTML forms against per-field rule
// tables. Rules use go-playground/validator tag syntax.
package forms

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Field struct {
	Name  string
	Label string
	Rule  string
}

type Form struct {
	Name   string
	Fields []Field
}

var (
	MessageForm = Form{Name: "message", Fields: []Field{
		{Name: "text", Label: "text", Rule: "required,max=140"},
	}}

	UserAddForm = Form{Name: "signup", Fields: []Field{
		{Name: "username", Label: "Username", Rule: "required"},
		{Name: "email", Label: "E-mail", Rule: "required,email"},
		{Name: "password", Label: "Password", Rule: "min=6"},
		{Name: "image_url", Label: "Image URL", Rule: "omitempty,http_url"},
	}}

	LoginForm = Form{Name: "login", Fields: []Field{
		{Name: "username", Label: "Username", Rule: "required"},
		{Name: "password", Label: "Password", Rule: "min=6"},
	}}

	EditUserForm = Form{Name: "edit-user", Fields: []Field{
		{Name: "username", Label: "Username", Rule: "omitempty"},
		{Name: "email", Label: "E-mail", Rule: "omitempty,email"},
		{Name: "image_url", Label: "Image URL", Rule: "omitempty,http_url"},
		{Name: "header_image_url", Label: "Header Image URL", Rule: "omitempty,http_url"},
		{Name: "bio", Label: "Bio", Rule: "max=200"},
		{Name: "location", Label: "Location", Rule: "max=20"},
		{Name: "password", Label: "Password", Rule: "min=6"},
	}}
)

var validate = validator.New()

// Result holds the submitted values (trimmed, except passwords) and the
// first error message for each failing field.
type Result struct {
	Values map[string]string
	Errors map[string]string
}

func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

func (r Result) Get(field string) string {
	return r.Values[field]
}

// Validate checks every field of form against the value returned by get,
// which is usually gin's PostForm.
func Validate(form Form, get func(string) string) Result {
	res := Result{Values: make(map[string]string), Errors: make(map[string]string)}

	for _, f := range form.Fields {
		value := get(f.Name)
		if f.Name != "password" {
			value = strings.TrimSpace(value)
		}
		res.Values[f.Name] = value

		if err := validate.Var(value, f.Rule); err != nil {
			res.Errors[f.Name] = describe(f, err)
		}
	}
	return res
}

func describe(f Field, err error) string {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return fmt.Sprintf("%s is invalid.", f.Label)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "http_url":
		return "Invalid URL."
	case "min":
		return fmt.Sprintf("Field must be at least %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", f.Label)
	}
}
