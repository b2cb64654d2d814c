package gen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
	"github.com/iancoleman/strcase"
)

// Irregular is a singular/plural pair registered as an exception
// to the inflection rules.
type Irregular struct {
	Singular string `yaml:"singular" json:"singular"`
	Plural   string `yaml:"plural" json:"plural"`
}

// DefaultIrregulars are registered by DefaultConfig.
var DefaultIrregulars = []Irregular{
	{Singular: "person", Plural: "persons"},
}

// Naming derives table, class and column names. Each Naming owns its
// inflection rules, so irregulars registered on one instance never leak
// into another. A Naming is read-only after construction and safe for
// concurrent use.
type Naming struct {
	rules *inflect.Ruleset
}

// NewNaming returns a Naming with the default English rules plus the
// given irregulars. Rule matching is case-sensitive, so each pair is
// registered both lower-cased and capitalized.
func NewNaming(irregulars ...Irregular) *Naming {
	rules := inflect.NewDefaultRuleset()
	// Words already ending in "ss" or "us" are singular.
	rules.AddSingular("ss", "ss")
	rules.AddSingular("us", "us")
	// The default "statuses" rule misses capitalized and compound names.
	rules.AddSingular("tatuses", "tatus")
	for _, ir := range irregulars {
		s, p := strings.ToLower(ir.Singular), strings.ToLower(ir.Plural)
		rules.AddIrregular(s, p)
		rules.AddIrregular(capitalize(s), capitalize(p))
	}
	return &Naming{rules: rules}
}

// Plural returns the plural form of s.
func (n *Naming) Plural(s string) string {
	return n.rules.Pluralize(s)
}

// Singular returns the singular form of s.
func (n *Naming) Singular(s string) string {
	return n.rules.Singularize(s)
}

// Snake converts s to snake_case.
//
//	Username       => username
//	CustomerOrders => customer_orders
//	HTTPCode       => http_code
func (n *Naming) Snake(s string) string {
	return strcase.ToSnake(s)
}

// Pascal converts s to an exported Go identifier.
//
//	customer_id  => CustomerID
//	first_name   => FirstName
func (n *Naming) Pascal(s string) string {
	p := strcase.ToCamel(s)
	for _, acr := range acronyms {
		if strings.HasSuffix(p, acr.from) {
			p = strings.TrimSuffix(p, acr.from) + acr.to
			break
		}
	}
	return p
}

var acronyms = []struct{ from, to string }{
	{"Id", "ID"},
	{"Ids", "IDs"},
	{"Url", "URL"},
	{"Uuid", "UUID"},
}

// TableName returns the storage name of a type: the snake_case of its plural.
func (n *Naming) TableName(typeName string) string {
	return n.Snake(n.Plural(typeName))
}

// ClassName returns the singular form of a type name.
func (n *Naming) ClassName(typeName string) string {
	return n.Singular(typeName)
}

// ForeignKey returns the default foreign-key column for a reference
// to the given type.
//
//	Users              => user_id
//	CustomerAttributes => customer_attribute_id
func (n *Naming) ForeignKey(target string) string {
	return n.Singular(n.Snake(target)) + "_id"
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
