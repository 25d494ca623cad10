package site

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// DisclosureParam is the query parameter carrying open indexes for the
// no-script path, e.g. ?aberto=0,2.
const DisclosureParam = "aberto"

// Disclosure is the set of expanded entries in a list of collapsible items.
// The zero value has every entry collapsed. Values are immutable.
type Disclosure struct {
	open []int
}

// ParseDisclosure decodes a comma separated index list, ignoring entries
// that are not in [0, size).
func ParseDisclosure(raw string, size int) Disclosure {
	var open []int
	for _, part := range strings.Split(raw, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || i < 0 || i >= size {
			continue
		}
		open = append(open, i)
	}
	return newDisclosure(open)
}

func newDisclosure(open []int) Disclosure {
	if len(open) == 0 {
		return Disclosure{}
	}
	sort.Ints(open)
	uniq := open[:1]
	for _, i := range open[1:] {
		if i != uniq[len(uniq)-1] {
			uniq = append(uniq, i)
		}
	}
	return Disclosure{open: uniq}
}

// Expanded reports whether entry i is open.
func (d Disclosure) Expanded(i int) bool {
	idx := sort.SearchInts(d.open, i)
	return idx < len(d.open) && d.open[idx] == i
}

// AriaExpanded renders Expanded as an aria-expanded attribute value.
func (d Disclosure) AriaExpanded(i int) string {
	return strconv.FormatBool(d.Expanded(i))
}

// Toggle flips entry i.
func (d Disclosure) Toggle(i int) Disclosure {
	next := make([]int, 0, len(d.open)+1)
	found := false
	for _, j := range d.open {
		if j == i {
			found = true
			continue
		}
		next = append(next, j)
	}
	if !found {
		next = append(next, i)
	}
	return newDisclosure(next)
}

// Open lists the expanded indexes in ascending order.
func (d Disclosure) Open() []int {
	return append([]int(nil), d.open...)
}

// Encode renders the set in the ParseDisclosure format.
func (d Disclosure) Encode() string {
	parts := make([]string, len(d.open))
	for k, i := range d.open {
		parts[k] = strconv.Itoa(i)
	}
	return strings.Join(parts, ",")
}

// ToggleHref is the link that flips entry i for the page at path. Other
// parameters in keep, such as the theme variant, are carried along.
func (d Disclosure) ToggleHref(path string, keep url.Values, i int) string {
	var parts []string
	if next := d.Toggle(i).Encode(); next != "" {
		parts = append(parts, DisclosureParam+"="+next)
	}
	rest := url.Values{}
	for k, v := range keep {
		if k != DisclosureParam && len(v) > 0 {
			rest[k] = v
		}
	}
	if len(rest) > 0 {
		parts = append(parts, rest.Encode())
	}
	if len(parts) == 0 {
		return path
	}
	return path + "?" + strings.Join(parts, "&")
}
