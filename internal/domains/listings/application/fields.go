package application

import (
	"strconv"
	"strings"

	listingtypes "github.com/Apurer/marketplace-api/internal/domains/listings/application/types"
	"github.com/Apurer/marketplace-api/internal/domains/listings/domain"
)

// parseLeadingInt reads an optional sign followed by the leading run of decimal digits.
// "12kg" yields 12 and "3.7" yields 3; input with no leading digits stays unset.
func parseLeadingInt(raw string) *int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return nil
	}
	value, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil
	}
	return &value
}

func parseForEid(raw string) bool {
	return raw == "true"
}

func draftFromFields(fields listingtypes.ListingFields, imageURLs []string) domain.Draft {
	return domain.Draft{
		Title:       fields.Title,
		Type:        fields.Type,
		Breed:       fields.Breed,
		Age:         parseLeadingInt(fields.Age),
		Weight:      parseLeadingInt(fields.Weight),
		Price:       parseLeadingInt(fields.Price),
		Location:    fields.Location,
		Description: fields.Description,
		Images:      imageURLs,
		ForEid:      parseForEid(fields.ForEid),
	}
}
