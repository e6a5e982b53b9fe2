package validate

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"estateadmin/internal/domain"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reName  = regexp.MustCompile(`^[\p{L}0-9 '&-]{1,50}$`)
	reArea  = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
	reForm  = regexp.MustCompile(`^(new|edit-[A-Za-z0-9_-]{1,64})$`)
)

// Errors maps a form field to the message shown next to it.
type Errors map[string]string

func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Password only bounds the length; the listing API owns the real policy.
func Password(s string) bool {
	return len(s) > 0 && len(s) <= 128
}

// ID validates a remote resource identifier taken from a path.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// FormKey validates the staging form key: "new" or "edit-<id>".
func FormKey(s string) (string, bool) {
	return s, reForm.MatchString(s)
}

// Name validates a category or district name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, reName.MatchString(s)
}

// Description caps free text at max runes.
func Description(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len([]rune(s)) <= max
}

// Amount parses a non-negative whole commission amount.
func Amount(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func count(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return n, true
}

// Property reads the create/edit form through get. images is the number of
// images the property will end up with (kept plus staged). When the property
// is marked sold a commission amount is required as well.
func Property(get func(key string) string, images int) (domain.PropertyInput, int64, Errors) {
	errs := Errors{}
	in := domain.PropertyInput{
		Title:       strings.TrimSpace(get("title")),
		Location:    strings.TrimSpace(get("location")),
		Description: strings.TrimSpace(get("description")),
		Category:    strings.ToLower(strings.TrimSpace(get("category"))),
		District:    strings.ToLower(strings.TrimSpace(get("district"))),
		Area:        strings.TrimSpace(get("area")),
		Type:        strings.ToLower(strings.TrimSpace(get("type"))),
	}
	in.IsSold = get("isSold") == "on" || get("isSold") == "true"

	if in.Title == "" {
		errs.Add("title", "Title is required")
	} else if len([]rune(in.Title)) > 120 {
		errs.Add("title", "Title is too long")
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(get("price")), 64)
	switch {
	case strings.TrimSpace(get("price")) == "":
		errs.Add("price", "Price is required")
	case err != nil || price < 0 || math.IsNaN(price) || math.IsInf(price, 0):
		errs.Add("price", "Price must be a non-negative number")
	default:
		in.Price = price
	}
	if in.Location == "" {
		errs.Add("location", "Location is required")
	}
	if in.Description == "" {
		errs.Add("description", "Description is required")
	} else if len([]rune(in.Description)) > 5000 {
		errs.Add("description", "Description is too long")
	}
	if n, ok := count(get("bedroom")); ok {
		in.Bedrooms = n
	} else {
		errs.Add("bedroom", "Number of bedrooms is required")
	}
	if n, ok := count(get("bathroom")); ok {
		in.Bathrooms = n
	} else {
		errs.Add("bathroom", "Number of bathrooms is required")
	}
	if in.Category == "" {
		errs.Add("category", "Category is required")
	}
	if in.District == "" {
		errs.Add("district", "District is required")
	}
	if in.Area == "" {
		errs.Add("area", "Area is required")
	} else if !reArea.MatchString(in.Area) {
		errs.Add("area", "Area must be a number")
	}
	if in.Type != domain.TypeSale && in.Type != domain.TypeRent {
		errs.Add("type", "Choose sale or rent")
	}
	if images == 0 {
		errs.Add("images", "At least one image is required")
	}

	var amount int64
	if in.IsSold {
		a, ok := Amount(get("commission"))
		if !ok {
			errs.Add("commission", "Commission amount is required for a sold property")
		}
		amount = a
	}
	return in, amount, errs
}
