package ctdf

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// ValidationError blocks saving a group until the user corrects it
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

var groupValidator = newGroupValidator()

var lineIndexRegex = regexp.MustCompile(`Lines\[(\d+)\]`)

func newGroupValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}

	return v
}

func validationErrorFor(group *LineGroup, err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	validationError := &ValidationError{}

	for _, fieldError := range fieldErrors {
		switch fieldError.StructField() {
		case "Name":
			validationError.Problems = append(validationError.Problems, "a group name is required")
		case "SelectedStop":
			validationError.Problems = append(validationError.Problems, missingStopProblem(group, fieldError.StructNamespace()))
		default:
			validationError.Problems = append(validationError.Problems, fmt.Sprintf("%s is invalid", fieldError.Namespace()))
		}
	}

	return validationError
}

func missingStopProblem(group *LineGroup, namespace string) string {
	matches := lineIndexRegex.FindStringSubmatch(namespace)
	if len(matches) == 2 {
		if index, err := strconv.Atoi(matches[1]); err == nil && index < len(group.Lines) {
			line := group.Lines[index]
			return fmt.Sprintf("a stop must be selected for line %s (%s)", line.ShortName, line.LongName)
		}
	}

	return "a stop must be selected for every line"
}
