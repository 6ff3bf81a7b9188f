// Package rules declares the per-field validation rules for the customer
// dataset contract. Each rule is a pure check over a single field's value;
// only the identifier uniqueness rule carries cross-record state, and that
// state depends strictly on earlier record positions.
package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/tmcf/custaudit/internal/dataset"
)

// Kind tags an issue with its defect category. The severity policy maps each
// kind to exactly one tier.
type Kind string

const (
	KindMissing         Kind = "missing"
	KindNotInteger      Kind = "not_integer"
	KindNotPositive     Kind = "not_positive"
	KindDuplicateID     Kind = "duplicate_id"
	KindBadLength       Kind = "bad_length"
	KindBadFormat       Kind = "bad_format"
	KindDateSentinel    Kind = "date_sentinel"
	KindBadDateFormat   Kind = "bad_date_format"
	KindNotNumeric      Kind = "not_numeric"
	KindNegativeValue   Kind = "negative_value"
	KindAboveMaximum    Kind = "above_maximum"
	KindInvalidCategory Kind = "invalid_category"
)

// Issue is one reported rule violation.
type Issue struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Context carries the cross-record state for the identifier uniqueness rule.
// It must be threaded through record positions in original order.
type Context struct {
	seenIDs map[int64]struct{}
}

// NewContext returns a fresh uniqueness context for one validation run.
func NewContext() *Context {
	return &Context{seenIDs: make(map[int64]struct{})}
}

// CheckFunc evaluates one field value. value is trimmed; present is false when
// the record held no value (or only whitespace) for the field.
type CheckFunc func(value string, present bool, ctx *Context) []Issue

// Rule binds a field to a named check. Rules for the same field run in
// declaration order and their issues are merged into a single failure.
type Rule struct {
	Field string
	Name  string
	Check CheckFunc
}

// Catalog returns the fixed rule set in declaration order. The numeric
// thresholds are externally meaningful: they define "valid" for this
// dataset's contract.
func Catalog() []Rule {
	return []Rule{
		{Field: dataset.FieldCustomerID, Name: "positive_integer", Check: checkCustomerID},
		{Field: dataset.FieldCustomerID, Name: "unique", Check: checkCustomerIDUnique},
		{Field: dataset.FieldFirstName, Name: "person_name", Check: checkName},
		{Field: dataset.FieldLastName, Name: "person_name", Check: checkName},
		{Field: dataset.FieldEmail, Name: "email_format", Check: checkEmail},
		{Field: dataset.FieldPhone, Name: "ten_digits", Check: checkPhone},
		{Field: dataset.FieldDateOfBirth, Name: "known_date_format", Check: checkDate},
		{Field: dataset.FieldAddress, Name: "address_length", Check: checkAddress},
		{Field: dataset.FieldIncome, Name: "income_bounds", Check: checkIncome},
		{Field: dataset.FieldAccountStatus, Name: "status_member", Check: checkStatus},
		{Field: dataset.FieldCreatedDate, Name: "known_date_format", Check: checkDate},
	}
}

// FieldOrder returns the validated fields in catalog declaration order,
// without duplicates.
func FieldOrder() []string {
	var order []string
	seen := make(map[string]struct{})
	for _, rule := range Catalog() {
		if _, ok := seen[rule.Field]; ok {
			continue
		}
		seen[rule.Field] = struct{}{}
		order = append(order, rule.Field)
	}
	return order
}

var (
	namePattern  = regexp.MustCompile(`^[A-Za-z \-]+$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nonDigits    = regexp.MustCompile(`\D`)

	// Tried in order; first match wins for ambiguous inputs.
	dateLayouts = []string{"2006-01-02", "2006/01/02", "01/02/2006"}

	incomeMax = decimal.NewFromInt(10_000_000)
)

const (
	nameMinLen    = 2
	nameMaxLen    = 50
	addressMinLen = 10
	addressMaxLen = 200
	phoneDigits   = 10
)

func missingIssue() Issue {
	return Issue{Kind: KindMissing, Text: "Empty (should be non-empty)"}
}

func checkCustomerID(value string, present bool, _ *Context) []Issue {
	if !present {
		return []Issue{missingIssue()}
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return []Issue{{Kind: KindNotInteger, Text: fmt.Sprintf("%s (should be integer)", value)}}
	}
	if id <= 0 {
		return []Issue{{Kind: KindNotPositive, Text: fmt.Sprintf("%s (should be positive)", value)}}
	}
	return nil
}

// checkCustomerIDUnique flags the second and later occurrences of an
// identifier, never the first. Missing or malformed identifiers do not enter
// the seen set, so they cannot make a later record a duplicate.
func checkCustomerIDUnique(value string, present bool, ctx *Context) []Issue {
	if !present {
		return nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil
	}
	if _, dup := ctx.seenIDs[id]; dup {
		return []Issue{{Kind: KindDuplicateID, Text: fmt.Sprintf("%s (duplicate ID)", value)}}
	}
	ctx.seenIDs[id] = struct{}{}
	return nil
}

func checkName(value string, present bool, _ *Context) []Issue {
	if !present {
		return []Issue{missingIssue()}
	}
	var issues []Issue
	// Length bounds count characters, not bytes.
	if n := utf8.RuneCountInString(value); n < nameMinLen {
		issues = append(issues, Issue{Kind: KindBadLength, Text: fmt.Sprintf("'%s' (too short, min %d chars)", value, nameMinLen)})
	} else if n > nameMaxLen {
		issues = append(issues, Issue{Kind: KindBadLength, Text: fmt.Sprintf("'%s' (too long, max %d chars)", value, nameMaxLen)})
	}
	if !namePattern.MatchString(value) {
		issues = append(issues, Issue{Kind: KindBadFormat, Text: fmt.Sprintf("'%s' (should be alphabetic)", value)})
	}
	return issues
}

func checkEmail(value string, present bool, _ *Context) []Issue {
	if !present {
		return []Issue{missingIssue()}
	}
	if !emailPattern.MatchString(value) {
		return []Issue{{Kind: KindBadFormat, Text: fmt.Sprintf("'%s' (invalid email format)", value)}}
	}
	return nil
}

func checkPhone(value string, present bool, _ *Context) []Issue {
	if !present {
		return []Issue{missingIssue()}
	}
	digits := nonDigits.ReplaceAllString(value, "")
	if len(digits) != phoneDigits {
		return []Issue{{Kind: KindBadFormat, Text: fmt.Sprintf("'%s' (should have %d digits, found %d)", value, phoneDigits, len(digits))}}
	}
	return nil
}

func checkDate(value string, present bool, _ *Context) []Issue {
	if !present {
		return []Issue{missingIssue()}
	}
	if strings.ToLower(value) == "invalid_date" {
		return []Issue{{Kind: KindDateSentinel, Text: "'invalid_date' (invalid date value)"}}
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return nil
		}
	}
	return []Issue{{Kind: KindBadDateFormat, Text: fmt.Sprintf("'%s' (unrecognized date format)", value)}}
}

func checkAddress(value string, present bool, _ *Context) []Issue {
	if !present {
		return []Issue{missingIssue()}
	}
	if n := utf8.RuneCountInString(value); n < addressMinLen {
		return []Issue{{Kind: KindBadLength, Text: fmt.Sprintf("'%s' (too short, min %d chars)", value, addressMinLen)}}
	} else if n > addressMaxLen {
		return []Issue{{Kind: KindBadLength, Text: fmt.Sprintf("'%s' (too long, max %d chars)", value, addressMaxLen)}}
	}
	return nil
}

func checkIncome(value string, present bool, _ *Context) []Issue {
	if !present {
		return []Issue{missingIssue()}
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return []Issue{{Kind: KindNotNumeric, Text: fmt.Sprintf("'%s' (should be numeric)", value)}}
	}
	if amount.IsNegative() {
		return []Issue{{Kind: KindNegativeValue, Text: fmt.Sprintf("%s (should be non-negative)", amount.String())}}
	}
	if amount.GreaterThan(incomeMax) {
		return []Issue{{Kind: KindAboveMaximum, Text: fmt.Sprintf("%s (exceeds $10M limit)", amount.String())}}
	}
	return nil
}

var validStatuses = map[string]struct{}{
	"active":    {},
	"inactive":  {},
	"suspended": {},
}

func checkStatus(value string, present bool, _ *Context) []Issue {
	if !present {
		return []Issue{{Kind: KindMissing, Text: "Empty (should be one of: active, inactive, suspended)"}}
	}
	if _, ok := validStatuses[strings.ToLower(value)]; !ok {
		return []Issue{{Kind: KindInvalidCategory, Text: fmt.Sprintf("'%s' (invalid value, should be: active, inactive, suspended)", value)}}
	}
	return nil
}
