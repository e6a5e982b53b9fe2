package viewmodel

import (
	"sort"
	"strings"

	"estateadmin/internal/domain"
)

// Options are the selector values offered on the list screen, taken from the
// loaded properties so the screen needs no extra requests.
type Options struct {
	Categories []string
	Districts  []string
	Bedrooms   []int
}

func OptionsOf(props []domain.Property) Options {
	cats, dists, beds := map[string]bool{}, map[string]bool{}, map[int]bool{}
	var o Options
	for _, p := range props {
		if c := strings.ToLower(p.Category); c != "" && !cats[c] {
			cats[c] = true
			o.Categories = append(o.Categories, c)
		}
		if d := strings.ToLower(p.District); d != "" && !dists[d] {
			dists[d] = true
			o.Districts = append(o.Districts, d)
		}
		if !beds[p.Bedrooms] {
			beds[p.Bedrooms] = true
			o.Bedrooms = append(o.Bedrooms, p.Bedrooms)
		}
	}
	sort.Strings(o.Categories)
	sort.Strings(o.Districts)
	sort.Ints(o.Bedrooms)
	return o
}
