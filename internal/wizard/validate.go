package wizard

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// the original accepts exactly http(s) schemes with a dotted host
	httpURLRegex = regexp.MustCompile(`^https?://.+\..+`)

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
		return httpURLRegex.MatchString(fl.Field().String())
	})
	return v
}

// Rules selects which optional fields participate in validation; revisions
// of the form differed on image and location.
type Rules struct {
	RequireImage    bool
	RequireLocation bool
}

type textFields struct {
	Title       string `validate:"required"`
	URL         string `validate:"required,httpurl"`
	Description string `validate:"required"`
}

// Validate checks a draft and collects every failing field into a
// field-name-to-message mapping. Any entry blocks submission; there is no
// partial save.
func Validate(draft *Draft, rules Rules) map[string]string {
	errs := make(map[string]string)

	fields := textFields{
		Title:       strings.TrimSpace(draft.Title),
		URL:         strings.TrimSpace(draft.URL),
		Description: strings.TrimSpace(draft.Description),
	}
	if err := validate.Struct(fields); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			switch fieldErr.StructField() {
			case "Title":
				errs["title"] = "Title is required."
			case "URL":
				if fieldErr.Tag() == "required" {
					errs["url"] = "URL is required."
				} else {
					errs["url"] = "Invalid URL format. Must start with http:// or https://"
				}
			case "Description":
				errs["description"] = "Description is required."
			}
		}
	}

	if rules.RequireLocation {
		// only an autocomplete selection populates coordinates; free-typed
		// address text without one does not pass
		if strings.TrimSpace(draft.Address) == "" || draft.Coords == nil {
			errs["location"] = "Please select a valid location."
		}
	}

	if rules.RequireImage && draft.ImagePath == "" {
		errs["image"] = "Please upload an image."
	}

	return errs
}
