package validation

import (
	"regexp"
	"sync"

	"github.com/goliatone/go-formval/pkg/field"
)

// requiredMessage is appended when a required field holds no value.
const requiredMessage = "requires a value"

// typeRule pairs a data type's value pattern with its fixed failure message.
type typeRule struct {
	pattern *regexp.Regexp
	message string
}

// Catalog holds the static per-type rules and per-restriction message
// templates. The tables are populated once by NewCatalog and never mutated;
// the compiled-pattern cache for restriction regexes is guarded separately.
type Catalog struct {
	types        map[field.DataType]typeRule
	restrictions map[string]string

	mu       sync.RWMutex
	compiled map[string]*regexp.Regexp
}

// NewCatalog builds the default rule tables. The type patterns are
// deliberately loose (the phone, email, and url forms accept far more than
// the RFCs allow) because form authors expect permissive client-side checks.
func NewCatalog() *Catalog {
	return &Catalog{
		types: map[field.DataType]typeRule{
			field.DataTypeInteger: {
				pattern: regexp.MustCompile(`^\s*(\d+)\s*$`),
				message: "must be an integer number.",
			},
			field.DataTypeReal: {
				pattern: regexp.MustCompile(`^-?\d+(\.\d*)?$`),
				message: "must be a decimal number.",
			},
			field.DataTypePhone: {
				pattern: regexp.MustCompile(`^(\(?\+?[0-9]{1,2}\)?[-. ]?)?(\(?[0-9]{3}\)?[-. ]?)?[0-9]{3}[-. ]?[0-9]{4}( ?(x|X|ext)\.? ?[0-9]{1,5})?$`),
				message: "must be a phone number.",
			},
			field.DataTypeEmail: {
				pattern: regexp.MustCompile(`^\w+(\.\w+)*@\w+(\.\w+)+$`),
				message: "must be an email address.",
			},
			field.DataTypeURL: {
				pattern: regexp.MustCompile(`^(https?://)?([\w-]+\.)+[\w-]+(/[\w\-./?%&=~+#]*)?$`),
				message: "must be a URL.",
			},
			field.DataTypeTime: {
				pattern: regexp.MustCompile(`^(([01]?\d|2[0-3]):[0-5]\d|(0?[1-9]|1[0-2]):[0-5]\d ?[AaPp][Mm])$`),
				message: "must be a time value.",
			},
			field.DataTypeYear: {
				pattern: regexp.MustCompile(`^\d{1,4}$`),
				message: "must be a numeric value of year.",
			},
			field.DataTypeMonth: {
				pattern: regexp.MustCompile(`^(0?[1-9]|1[0-2])$`),
				message: "must be a numeric value of month.",
			},
			field.DataTypeDay: {
				pattern: regexp.MustCompile(`^(0?[1-9]|[12]\d|3[01])$`),
				message: "must be a numeric value of day.",
			},
			// Booleans are checked by identity, not pattern; only the
			// message lives here.
			field.DataTypeBoolean: {
				message: "must be a boolean (true/false).",
			},
		},
		restrictions: map[string]string{
			field.RestrictionMinExclusive: "must be a value greater than %s.",
			field.RestrictionMinInclusive: "must be a value greater than or equal to %s.",
			field.RestrictionMaxExclusive: "must be a value less than %s.",
			field.RestrictionMaxInclusive: "must be a value less than or equal to %s.",
			field.RestrictionLength:       "must have a total length of %s.",
			field.RestrictionMinLength:    "must have a total length greater than or equal to %s.",
			field.RestrictionMaxLength:    "must have a total length less than or equal to %s.",
			field.RestrictionPattern:      "must match a RegExp pattern of %s.",
		},
		compiled: make(map[string]*regexp.Regexp),
	}
}

// typeRuleFor returns the rule for a data type; absence means always valid.
func (c *Catalog) typeRuleFor(dt field.DataType) (typeRule, bool) {
	rule, ok := c.types[dt]
	return rule, ok
}

// restrictionMessage returns the message template for a restriction key.
func (c *Catalog) restrictionMessage(name string) (string, bool) {
	msg, ok := c.restrictions[name]
	return msg, ok
}

// compilePattern resolves a delimiter-wrapped restriction pattern, caching
// successful compilations. A malformed expression returns an error so the
// restriction check can fail the value instead of panicking.
func (c *Catalog) compilePattern(raw string) (*regexp.Regexp, error) {
	c.mu.RLock()
	re, ok := c.compiled[raw]
	c.mu.RUnlock()
	if ok {
		return re, nil
	}

	expr, flags := splitPattern(raw)
	if prefix := flagPrefix(flags); prefix != "" {
		expr = prefix + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.compiled[raw] = re
	c.mu.Unlock()
	return re, nil
}

// splitPattern breaks a "/pattern/flags" string into its parts. A string
// without the leading delimiter is taken as a bare pattern; a missing
// trailing delimiter yields empty flags.
func splitPattern(raw string) (expr, flags string) {
	if len(raw) == 0 || raw[0] != '/' {
		return raw, ""
	}
	if idx := lastSlash(raw); idx > 0 {
		return raw[1:idx], raw[idx+1:]
	}
	return raw[1:], ""
}

func lastSlash(s string) int {
	for i := len(s) - 1; i > 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}

// flagPrefix translates recognized JavaScript-style regex flags into a Go
// inline-flag group. Unsupported flags are ignored.
func flagPrefix(flags string) string {
	var out []byte
	for _, r := range flags {
		switch r {
		case 'i', 'm', 's':
			out = append(out, byte(r))
		}
	}
	if len(out) == 0 {
		return ""
	}
	return "(?" + string(out) + ")"
}
