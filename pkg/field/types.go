package field

import "strings"

// DataType is the declared value kind of a form field. The tags mirror the
// codes used by clinical form definitions; Section is the empty tag carried by
// header rows that hold no value of their own.
type DataType string

const (
	DataTypeBoolean     DataType = "BL"
	DataTypeInteger     DataType = "INT"
	DataTypeReal        DataType = "REAL"
	DataTypeShortText   DataType = "ST"
	DataTypeLongText    DataType = "TX"
	DataTypeBinary      DataType = "BIN"
	DataTypeDate        DataType = "DT"
	DataTypeDateTime    DataType = "DTM"
	DataTypeTime        DataType = "TM"
	DataTypeCodedNoExc  DataType = "CNE"
	DataTypeCodedExc    DataType = "CWE"
	DataTypeRatio       DataType = "RTO"
	DataTypeQuantity    DataType = "QTY"
	DataTypeYear        DataType = "YEAR"
	DataTypeMonth       DataType = "MONTH"
	DataTypeDay         DataType = "DAY"
	DataTypeURL         DataType = "URL"
	DataTypeEmail       DataType = "EMAIL"
	DataTypePhone       DataType = "PHONE"
	DataTypeSection     DataType = ""
)

// dataTypes enumerates every recognized tag so definition loaders can reject
// typos early. Unrecognized tags are still accepted by the validator itself
// (they validate as always-true), but a definition file naming one is almost
// certainly a mistake.
var dataTypes = map[DataType]struct{}{
	DataTypeBoolean: {}, DataTypeInteger: {}, DataTypeReal: {},
	DataTypeShortText: {}, DataTypeLongText: {}, DataTypeBinary: {},
	DataTypeDate: {}, DataTypeDateTime: {}, DataTypeTime: {},
	DataTypeCodedNoExc: {}, DataTypeCodedExc: {}, DataTypeRatio: {},
	DataTypeQuantity: {}, DataTypeYear: {}, DataTypeMonth: {},
	DataTypeDay: {}, DataTypeURL: {}, DataTypeEmail: {},
	DataTypePhone: {}, DataTypeSection: {},
}

// Known reports whether the tag belongs to the recognized set.
func (dt DataType) Known() bool {
	_, ok := dataTypes[dt]
	return ok
}

// Restriction key constants. The names follow the XML Schema facet vocabulary
// the original form definitions use.
const (
	RestrictionMinExclusive   = "minExclusive"
	RestrictionMinInclusive   = "minInclusive"
	RestrictionMaxExclusive   = "maxExclusive"
	RestrictionMaxInclusive   = "maxInclusive"
	RestrictionTotalDigits    = "totalDigits"
	RestrictionFractionDigits = "fractionDigits"
	RestrictionLength         = "length"
	RestrictionMinLength      = "minLength"
	RestrictionMaxLength      = "maxLength"
	RestrictionEnumeration    = "enumeration"
	RestrictionWhiteSpace     = "whiteSpace"
	RestrictionPattern        = "pattern"
)

// Restriction is a single declarative constraint attached to a field. Value
// holds the threshold, length, or delimiter-wrapped pattern as declared.
type Restriction struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// RestrictionSet preserves declaration order so validation messages come out
// in the order the constraints were written.
type RestrictionSet []Restriction

// Get returns the first restriction declared under name.
func (rs RestrictionSet) Get(name string) (Restriction, bool) {
	for _, r := range rs {
		if r.Name == name {
			return r, true
		}
	}
	return Restriction{}, false
}

// Field describes a single question inside a form definition.
type Field struct {
	Question     string         `json:"question"`
	Label        string         `json:"label,omitempty"`
	DataType     DataType       `json:"dataType"`
	Required     bool           `json:"required"`
	Restrictions RestrictionSet `json:"restrictions,omitempty"`
}

// Form is an ordered collection of field definitions.
type Form struct {
	ID     string  `json:"id"`
	Title  string  `json:"title,omitempty"`
	Fields []Field `json:"fields"`
}

// Field looks up a field definition by question code.
func (f Form) Field(question string) (Field, bool) {
	for _, fld := range f.Fields {
		if fld.Question == question {
			return fld, true
		}
	}
	return Field{}, false
}

// DisplayLabel returns the label, falling back to the question code.
func (f Field) DisplayLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return f.Question
}
