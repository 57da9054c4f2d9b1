package models

import (
	"regexp"
)

type FieldName string

const (
	FieldFullName   FieldName = "name"
	FieldNationalID FieldName = "cpf"
	FieldBirth      FieldName = "birth"
	FieldContact    FieldName = "contact"
	FieldEmail      FieldName = "email"
	FieldPostcode   FieldName = "cep"
	FieldStreet     FieldName = "address"
	FieldNumber     FieldName = "number"
	FieldComplement FieldName = "complement"
	FieldDistrict   FieldName = "district"
	FieldCity       FieldName = "city"
	FieldState      FieldName = "state"
	FieldTerms      FieldName = "terms"
)

// InputType mirrors the input types the form declares. Only email and
// number carry a type check of their own.
type InputType string

const (
	InputText     InputType = "text"
	InputEmail    InputType = "email"
	InputNumber   InputType = "number"
	InputDate     InputType = "date"
	InputTel      InputType = "tel"
	InputCheckbox InputType = "checkbox"
)

// Constraints is the declared constraint set of a field
type Constraints struct {
	Required  bool
	Type      InputType
	Pattern   *regexp.Regexp
	MinLength int
}

// Field is a named input of the form. CustomError is the custom-invalidity
// override (empty means none) and Message is the inline error slot.
type Field struct {
	Name        FieldName
	Label       string
	Placeholder string
	Value       string
	Constraints Constraints
	CustomError string
	Message     string
}

// IsCheckbox reports whether the field is toggled rather than typed
func (f *Field) IsCheckbox() bool {
	return f.Constraints.Type == InputCheckbox
}

// MustPattern compiles an input pattern the way browsers apply it: the
// whole value has to match.
func MustPattern(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + pattern + `)$`)
}
