package models

// CheckboxOn is the value a checked checkbox field holds
const CheckboxOn = "on"

// FormState is the whole registration form: every field, whether the
// submit action is enabled and the error shown by the postcode lookup.
// It is passed explicitly to every operation that reads or mutates it.
type FormState struct {
	fields map[FieldName]*Field
	order  []FieldName

	SubmitEnabled bool
	LookupError   string

	lookupSeq uint64
}

// NewFormState builds a form from field definitions, keeping their order
func NewFormState(fields ...Field) *FormState {
	s := &FormState{
		fields:        make(map[FieldName]*Field, len(fields)),
		order:         make([]FieldName, 0, len(fields)),
		SubmitEnabled: true,
	}

	for _, f := range fields {
		field := f
		if _, exists := s.fields[field.Name]; !exists {
			s.order = append(s.order, field.Name)
		}
		s.fields[field.Name] = &field
	}

	return s
}

// NewRegistrationForm declares the registration form and its constraints
func NewRegistrationForm() *FormState {
	return NewFormState(
		Field{
			Name:        FieldFullName,
			Label:       "Nome completo",
			Placeholder: "Maria da Silva",
			Constraints: Constraints{
				Required:  true,
				Type:      InputText,
				Pattern:   MustPattern(`[\p{L}' -]+`),
				MinLength: 3,
			},
		},
		Field{
			Name:        FieldNationalID,
			Label:       "CPF",
			Placeholder: "000.000.000-00",
			Constraints: Constraints{
				Required:  true,
				Type:      InputText,
				Pattern:   MustPattern(`\d{3}\.?\d{3}\.?\d{3}-?\d{2}`),
				MinLength: 11,
			},
		},
		Field{
			Name:        FieldBirth,
			Label:       "Data de nascimento",
			Placeholder: "AAAA-MM-DD",
			Constraints: Constraints{Required: true, Type: InputDate},
		},
		Field{
			Name:        FieldContact,
			Label:       "Telefone",
			Placeholder: "(00) 00000-0000",
			Constraints: Constraints{
				Required:  true,
				Type:      InputTel,
				Pattern:   MustPattern(`\(\d{2}\) \d{4,5}-\d{4}`),
				MinLength: 14,
			},
		},
		Field{
			Name:        FieldEmail,
			Label:       "E-mail",
			Placeholder: "nome@exemplo.com",
			Constraints: Constraints{Required: true, Type: InputEmail, MinLength: 6},
		},
		Field{
			Name:        FieldPostcode,
			Label:       "CEP",
			Placeholder: "00000-000",
			Constraints: Constraints{Required: true, Type: InputText},
		},
		Field{
			Name:        FieldStreet,
			Label:       "Endereço",
			Constraints: Constraints{Required: true, Type: InputText},
		},
		Field{
			Name:        FieldNumber,
			Label:       "Número",
			Constraints: Constraints{Required: true, Type: InputNumber},
		},
		Field{
			Name:        FieldComplement,
			Label:       "Complemento",
			Constraints: Constraints{Required: true, Type: InputText},
		},
		Field{
			Name:        FieldDistrict,
			Label:       "Bairro",
			Constraints: Constraints{Required: true, Type: InputText},
		},
		Field{
			Name:        FieldCity,
			Label:       "Cidade",
			Constraints: Constraints{Required: true, Type: InputText},
		},
		Field{
			Name:        FieldState,
			Label:       "UF",
			Constraints: Constraints{Required: true, Type: InputText},
		},
		Field{
			Name:        FieldTerms,
			Label:       "Li e aceito os termos de uso",
			Constraints: Constraints{Required: true, Type: InputCheckbox},
		},
	)
}

// Field returns the named field for in-place mutation
func (s *FormState) Field(name FieldName) (*Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Value returns the current value of a field, or "" if it does not exist
func (s *FormState) Value(name FieldName) string {
	if f, ok := s.fields[name]; ok {
		return f.Value
	}
	return ""
}

// SetValue replaces the value of a field. Unknown names are ignored.
func (s *FormState) SetValue(name FieldName, value string) {
	if f, ok := s.fields[name]; ok {
		f.Value = value
	}
}

// Names returns the field names in declaration order
func (s *FormState) Names() []FieldName {
	names := make([]FieldName, len(s.order))
	copy(names, s.order)
	return names
}

// Fields returns the fields in declaration order
func (s *FormState) Fields() []*Field {
	fields := make([]*Field, 0, len(s.order))
	for _, name := range s.order {
		fields = append(fields, s.fields[name])
	}
	return fields
}

// Required returns the fields that carry the required constraint
func (s *FormState) Required() []*Field {
	var fields []*Field
	for _, name := range s.order {
		if f := s.fields[name]; f.Constraints.Required {
			fields = append(fields, f)
		}
	}
	return fields
}

// NextLookupSeq starts a new postcode lookup and returns its sequence number
func (s *FormState) NextLookupSeq() uint64 {
	s.lookupSeq++
	return s.lookupSeq
}

// LookupSeq returns the sequence number of the most recent lookup
func (s *FormState) LookupSeq() uint64 {
	return s.lookupSeq
}
