package ledger

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate  *validator.Validate
	once      sync.Once
	sanitizer = bluemonday.StrictPolicy()
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

// cleanText strips markup and surrounding whitespace from user-entered text and
// rejects it when nothing is left.
func cleanText(field, value string, maxLen int) (string, error) {
	value = strings.TrimSpace(sanitizer.Sanitize(value))
	err := getValidator().Var(value, "required,max="+strconv.Itoa(maxLen))
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "max" {
			return "", errors.Join(errorvalues.ErrValidation, errors.New(field+" is too long"))
		}
		return "", errors.Join(errorvalues.ErrValidation, errors.New(field+" is required"))
	}
	return value, nil
}
