package models

import (
	"strings"
)

// RegistrationRecord is the submission payload. It holds every data field
// of the form; the terms checkbox is not part of it.
type RegistrationRecord struct {
	Name       string `json:"name"`
	CPF        string `json:"cpf"`
	Birth      string `json:"birth"`
	Contact    string `json:"contact"`
	Email      string `json:"email"`
	CEP        string `json:"cep"`
	Address    string `json:"address"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
}

// NewRegistrationRecord snapshots the form values into a record
func NewRegistrationRecord(state *FormState) RegistrationRecord {
	return RegistrationRecord{
		Name:       state.Value(FieldFullName),
		CPF:        state.Value(FieldNationalID),
		Birth:      state.Value(FieldBirth),
		Contact:    state.Value(FieldContact),
		Email:      state.Value(FieldEmail),
		CEP:        state.Value(FieldPostcode),
		Address:    state.Value(FieldStreet),
		Number:     state.Value(FieldNumber),
		Complement: state.Value(FieldComplement),
		District:   state.Value(FieldDistrict),
		City:       state.Value(FieldCity),
		State:      state.Value(FieldState),
	}
}

// Entries returns the record as ordered (field, value) pairs for display
func (r RegistrationRecord) Entries() []RecordEntry {
	return []RecordEntry{
		{FieldFullName, r.Name},
		{FieldNationalID, r.CPF},
		{FieldBirth, r.Birth},
		{FieldContact, r.Contact},
		{FieldEmail, r.Email},
		{FieldPostcode, r.CEP},
		{FieldStreet, r.Address},
		{FieldNumber, r.Number},
		{FieldComplement, r.Complement},
		{FieldDistrict, r.District},
		{FieldCity, r.City},
		{FieldState, r.State},
	}
}

// IsEmpty reports whether no field of the record carries a value
func (r RegistrationRecord) IsEmpty() bool {
	for _, e := range r.Entries() {
		if strings.TrimSpace(e.Value) != "" {
			return false
		}
	}
	return true
}

type RecordEntry struct {
	Field FieldName
	Value string
}
