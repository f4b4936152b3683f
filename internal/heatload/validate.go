package heatload

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json names so messages match request and export keys.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must be %s %s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

// CheckWindowArea enforces window area <= gross wall area.
func CheckWindowArea(in GeometryInput) error {
	wall := in.WallAreaGross()
	if in.WindowArea > wall {
		return fmt.Errorf("%w: %.2f m² > %.2f m²", ErrWindowAreaExceedsWall, in.WindowArea, wall)
	}
	return nil
}

func (in GeometryInput) Validate() error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if !in.RidgeAxis.Valid() {
		return ErrInvalidRidgeAxis
	}
	return CheckWindowArea(in)
}

func (th ThermalInput) Validate() error {
	return validateStruct(th)
}

func (in DetailedInput) Validate() error {
	if err := in.GeometryInput.Validate(); err != nil {
		return err
	}
	return in.ThermalInput.Validate()
}

func (in SimpleInput) Validate() error {
	return validateStruct(in)
}
