package validation

import (
	"errors"
	"fmt"

	"rhystmorgan/regform/internal/models"
)

// Custom-invalidity reasons set by the verifier
const (
	ReasonNationalIDUnknown = "O CPF digitado não existe."
	ReasonUnderage          = "O usuário deve ser maior de 18 anos."
)

// Catalog maps (field, flag) to the message shown to the user
type Catalog struct {
	messages map[models.FieldName]map[Flag]string
}

// NewCatalog copies the given messages into a catalog
func NewCatalog(messages map[models.FieldName]map[Flag]string) *Catalog {
	c := &Catalog{messages: make(map[models.FieldName]map[Flag]string, len(messages))}
	for field, byFlag := range messages {
		c.messages[field] = make(map[Flag]string, len(byFlag))
		for flag, msg := range byFlag {
			c.messages[field][flag] = msg
		}
	}
	return c
}

// DefaultCatalog returns the messages of the registration form
func DefaultCatalog() *Catalog {
	return NewCatalog(map[models.FieldName]map[Flag]string{
		models.FieldFullName: {
			FlagValueMissing:    "O campo do nome não pode estar vazio.",
			FlagPatternMismatch: "Por favor, preencha um nome válido.",
			FlagTooShort:        "Por favor, preencha um nome válido.",
		},
		models.FieldNationalID: {
			FlagValueMissing:    "O campo de CPF não pode estar vazio.",
			FlagPatternMismatch: "Por favor, preencha um CPF válido.",
			FlagCustomError:     "O CPF digitado não existe.",
			FlagTooShort:        "O campo de CPF não tem caractéres suficientes.",
		},
		models.FieldBirth: {
			FlagValueMissing: "O campo da data de nascimento não pode estar vazio.",
			FlagCustomError:  "Você deve ser maior que 18 anos para se cadastrar.",
		},
		models.FieldContact: {
			FlagValueMissing:    "O campo de contato não pode estar vazio.",
			FlagPatternMismatch: "Por favor, preencha um número de telefone válido.",
			FlagTooShort:        "Por favor, preencha um número de telefone válido.",
		},
		models.FieldEmail: {
			FlagValueMissing: "O campo de e-mail não pode estar vazio.",
			FlagTypeMismatch: "Por favor, preencha um email válido.",
			FlagTooShort:     "Por favor, preencha um e-mail válido.",
		},
		models.FieldPostcode: {
			FlagValueMissing: "O campo de CEP não pode estar vazio.",
		},
		models.FieldStreet: {
			FlagValueMissing: "O campo do endereço não pode estar vazio.",
		},
		models.FieldNumber: {
			FlagValueMissing: "O campo do número da rua não pode estar vazio.",
			FlagTypeMismatch: "Por favor, preencha um número válido.",
		},
		models.FieldComplement: {
			FlagValueMissing: "O campo de complemento não pode estar vazio.",
		},
		models.FieldDistrict: {
			FlagValueMissing: "O campo do bairro não pode estar vazio.",
		},
		models.FieldCity: {
			FlagValueMissing: "O campo da cidade não pode estar vazio.",
		},
		models.FieldState: {
			FlagValueMissing: "O campo da UF não pode estar vazio.",
		},
		models.FieldTerms: {
			FlagValueMissing: "Você deve aceitar os termos de uso para se cadastrar.",
		},
	})
}

// Lookup returns the message for one field and flag
func (c *Catalog) Lookup(field models.FieldName, flag Flag) (string, bool) {
	msg, ok := c.messages[field][flag]
	return msg, ok
}

// Message returns the message for the first active flag of an outcome.
// A valid outcome, or a combination with no entry, yields "".
func (c *Catalog) Message(field models.FieldName, outcome ValidityOutcome) (string, bool) {
	flag, ok := outcome.First()
	if !ok {
		return "", false
	}
	return c.Lookup(field, flag)
}

// Validate reports every flag a form field can raise that has no message.
// customFields lists the fields that receive custom-invalidity overrides.
func (c *Catalog) Validate(form *models.FormState, customFields ...models.FieldName) error {
	custom := make(map[models.FieldName]bool, len(customFields))
	for _, name := range customFields {
		custom[name] = true
	}

	var errs []error
	for _, f := range form.Fields() {
		for _, flag := range raisableFlags(f.Constraints, custom[f.Name]) {
			if _, ok := c.Lookup(f.Name, flag); !ok {
				errs = append(errs, fmt.Errorf("no message for %s/%s", f.Name, flag))
			}
		}
	}

	return errors.Join(errs...)
}

func raisableFlags(c models.Constraints, custom bool) []Flag {
	var flags []Flag
	if c.Required {
		flags = append(flags, FlagValueMissing)
	}
	if _, ok := typeChecks[c.Type]; ok {
		flags = append(flags, FlagTypeMismatch)
	}
	if c.Pattern != nil {
		flags = append(flags, FlagPatternMismatch)
	}
	if c.MinLength > 0 {
		flags = append(flags, FlagTooShort)
	}
	if custom {
		flags = append(flags, FlagCustomError)
	}
	return flags
}
