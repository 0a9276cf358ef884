package models

import (
	"errors"
	"fmt"
	"strings"
)

const fieldSeparator = "\x01"

// ErrInvalidAccountString is returned when a stored account string cannot be parsed.
var ErrInvalidAccountString = errors.New("invalid account string")

// AccountWithDataSet is an Account plus an optional data-set discriminator.
// A nil DataSet means the account has no data set; a pointer to "" is an
// empty data set and survives a Stringify/UnstringifyAccount round trip.
type AccountWithDataSet struct {
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	DataSet *string `json:"data_set,omitempty"`
}

// NewAccountWithDataSet builds an AccountWithDataSet without a data set.
func NewAccountWithDataSet(name, accountType string) AccountWithDataSet {
	return AccountWithDataSet{Name: name, Type: accountType}
}

// WithDataSet returns a copy of a carrying the given data set.
func (a AccountWithDataSet) WithDataSet(dataSet string) AccountWithDataSet {
	a.DataSet = &dataSet
	return a
}

// Account drops the data set.
func (a AccountWithDataSet) Account() Account {
	return Account{Name: a.Name, Type: a.Type}
}

// Equal compares name, type and data set, treating nil and "" as different.
func (a AccountWithDataSet) Equal(other AccountWithDataSet) bool {
	if a.Name != other.Name || a.Type != other.Type {
		return false
	}
	if a.DataSet == nil || other.DataSet == nil {
		return a.DataSet == nil && other.DataSet == nil
	}
	return *a.DataSet == *other.DataSet
}

func (a AccountWithDataSet) String() string {
	if a.DataSet == nil {
		return fmt.Sprintf("%s/%s", a.Name, a.Type)
	}
	return fmt.Sprintf("%s/%s/%s", a.Name, a.Type, *a.DataSet)
}

// Stringify encodes a into the single token stored as a preference value.
func (a AccountWithDataSet) Stringify() string {
	var sb strings.Builder
	sb.WriteString(a.Name)
	sb.WriteString(fieldSeparator)
	sb.WriteString(a.Type)
	if a.DataSet != nil {
		sb.WriteString(fieldSeparator)
		sb.WriteString(*a.DataSet)
	}
	return sb.String()
}

// UnstringifyAccount decodes a token produced by Stringify.
func UnstringifyAccount(s string) (AccountWithDataSet, error) {
	parts := strings.SplitN(s, fieldSeparator, 3)
	if len(parts) < 2 {
		return AccountWithDataSet{}, fmt.Errorf("%w: %q", ErrInvalidAccountString, s)
	}
	a := AccountWithDataSet{Name: parts[0], Type: parts[1]}
	if len(parts) == 3 {
		dataSet := parts[2]
		a.DataSet = &dataSet
	}
	return a, nil
}
