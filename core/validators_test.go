package core

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type person struct {
	Name       string `json:"name" validate:"required,personname"`
	Phone      string `json:"phone" validate:"ugphone"`
	NationalID string `json:"national_id" validate:"nationalid"`
	Born       string `json:"born" validate:"omitempty,datetime=2006-01-02"`
}

func newValidator() (*validator.Validate, func(error) map[string]string) {
	validate := validator.New()
	translator := NewTranslator()
	InitValidators(validate, translator)
	return validate, func(err error) map[string]string {
		if err == nil {
			return nil
		}
		return TranslateErrors(err.(validator.ValidationErrors), translator)
	}
}

func TestInitValidators(t *testing.T) {
	validate, translate := newValidator()

	tests := []struct {
		name string
		p    person
		want map[string]string
	}{
		{name: "valid", p: person{Name: "Nakato Grace", Phone: "0775-123-456", NationalID: "CM85001234567PE", Born: "2008-05-15"}},
		{name: "hyphen and apostrophe", p: person{Name: "Mary-Jane O'Neil", Phone: "+256 775 123 456"}},
		{name: "accented", p: person{Name: "Zoë Ssekandi", Phone: "0775123456"}},
		{name: "empty optional fields", p: person{Name: "Kato"}},
		{name: "required", p: person{}, want: map[string]string{"name": "this field is required"}},
		{
			name: "digits in name", p: person{Name: "Kat0"},
			want: map[string]string{"name": "only letters, spaces, apostrophes and hyphens are allowed"},
		},
		{
			name: "double space", p: person{Name: "Kato  Michael"},
			want: map[string]string{"name": "only letters, spaces, apostrophes and hyphens are allowed"},
		},
		{
			name: "foreign phone", p: person{Name: "Kato", Phone: "+254 712 345 678"},
			want: map[string]string{"phone": "enter a valid Ugandan phone number, e.g. +256 775 123 456 or 0775-123-456"},
		},
		{
			name: "short national id", p: person{Name: "Kato", NationalID: "CM850012"},
			want: map[string]string{"national_id": "enter a valid national ID, e.g. CM85001234567PE"},
		},
		{
			name: "bad date", p: person{Name: "Kato", Born: "15/05/2008"},
			want: map[string]string{"born": "born must be formatted as YYYY-MM-DD"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.p)
			if (err != nil) != (tt.want != nil) {
				t.Fatalf("Struct() error = %v, wantErr %v", err, tt.want != nil)
			}
			assert.Equal(t, tt.want, translate(err))
		})
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name         string
		err          *ValidationError
		wantMsg      string
		wantFieldMap map[string]string
	}{
		{name: "empty", err: &ValidationError{}},
		{
			name:         "field",
			err:          NewFieldError("grade", "grade is out of range").(*ValidationError),
			wantMsg:      "grade is out of range",
			wantFieldMap: map[string]string{"grade": "grade is out of range"},
		},
		{
			name:         "fields only",
			err:          NewValidationError(nil, FieldError{Field: "a", Error: "bad a"}, FieldError{Field: "b", Error: "bad b"}).(*ValidationError),
			wantMsg:      "a: bad a",
			wantFieldMap: map[string]string{"a": "bad a", "b": "bad b"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
			assert.Equal(t, tt.wantFieldMap, tt.err.FieldMap())
		})
	}
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Kato", CleanString("  Kato\n"))
	assert.Equal(t, "kato", CleanString(" KATO ", true))
	assert.True(t, ContainsFold("Nakato Grace", "GRACE"))
	assert.True(t, ContainsFold("anything", ""))
	assert.False(t, ContainsFold("Nakato", "grace"))
}
