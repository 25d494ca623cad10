// Package site holds the brochure content: brand, navigation, page headers,
// services, team, FAQ and icons. Content ships as YAML embedded in the
// binary and is validated once at startup by Load. Disclosure models the
// open/closed state of the FAQ entries and service details.
package site
