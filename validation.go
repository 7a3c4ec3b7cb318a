package wallet

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// decimals are compared as floats by the numeric tags.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the user supplied fields of a transaction or obligation
// against the pillars of the wallet. It returns an error listing every
// failure.
func (w *Wallet) Validate(item any) error {
	var errs []error
	if err := validate.Struct(item); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			errs = append(errs, fmt.Errorf("invalid %s: failed %q check with value %v", fe.Field(), fe.Tag(), fe.Value()))
		}
	}
	var pillarID, subID string
	switch v := item.(type) {
	case Transaction:
		pillarID, subID = v.PillarID, v.SubCategoryID
	case Installment:
		pillarID, subID = v.PillarID, v.SubCategoryID
		if v.StartDate.IsZero() {
			errs = append(errs, errors.New("invalid startDate: required"))
		}
	case Receivable:
		pillarID = v.PillarID
	case Certificate:
		pillarID = v.PillarID
		if v.StartDate.IsZero() || v.EndDate.IsZero() {
			errs = append(errs, errors.New("invalid certificate: start and end dates are required"))
		} else if !v.StartDate.Before(v.EndDate) {
			errs = append(errs, fmt.Errorf("invalid certificate: end date %s is not after start date %s", v.EndDate, v.StartDate))
		}
	}
	if pillarID != "" {
		if _, ok := w.state.Pillar(pillarID); !ok {
			errs = append(errs, fmt.Errorf("unknown pillar %q", pillarID))
		}
	}
	if subID != "" {
		found := false
		for _, s := range w.state.SubCategories {
			if s.ID == subID {
				found = s.PillarID == pillarID
				break
			}
		}
		if !found {
			errs = append(errs, fmt.Errorf("sub-category %q does not belong to pillar %q", subID, pillarID))
		}
	}
	return errors.Join(errs...)
}
