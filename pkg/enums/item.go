package enums

import "fmt"

// ItemCategory groups catalog items for browsing.
type ItemCategory string

const (
	ItemCategoryBeer    ItemCategory = "beer"
	ItemCategoryWine    ItemCategory = "wine"
	ItemCategoryLiquor  ItemCategory = "liquor"
	ItemCategoryWhiskey ItemCategory = "whiskey"
)

var validItemCategories = []ItemCategory{
	ItemCategoryBeer,
	ItemCategoryWine,
	ItemCategoryLiquor,
	ItemCategoryWhiskey,
}

func (c ItemCategory) String() string { return string(c) }

func (c ItemCategory) IsValid() bool {
	for _, candidate := range validItemCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseItemCategory converts raw input into an ItemCategory.
func ParseItemCategory(value string) (ItemCategory, error) {
	for _, candidate := range validItemCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item category %q", value)
}

// ItemLabel drives the badge color shown next to an item.
type ItemLabel string

const (
	ItemLabelPrimary   ItemLabel = "primary"
	ItemLabelSecondary ItemLabel = "secondary"
	ItemLabelDanger    ItemLabel = "danger"
)

var validItemLabels = []ItemLabel{ItemLabelPrimary, ItemLabelSecondary, ItemLabelDanger}

func (l ItemLabel) IsValid() bool {
	for _, candidate := range validItemLabels {
		if candidate == l {
			return true
		}
	}
	return false
}

// ItemType is the merchandising tag attached to an item.
type ItemType string

const (
	ItemTypeNew         ItemType = "new"
	ItemTypeBestSeller  ItemType = "best_seller"
	ItemTypeNYLocal     ItemType = "ny_local"
	ItemTypeStaffPick   ItemType = "staff_pick"
	ItemTypeMostPopular ItemType = "most_popular"
	ItemTypeHolidayPick ItemType = "holiday_pick"
)

var validItemTypes = []ItemType{
	ItemTypeNew,
	ItemTypeBestSeller,
	ItemTypeNYLocal,
	ItemTypeStaffPick,
	ItemTypeMostPopular,
	ItemTypeHolidayPick,
}

func (t ItemType) IsValid() bool {
	for _, candidate := range validItemTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseItemType converts raw input into an ItemType.
func ParseItemType(value string) (ItemType, error) {
	for _, candidate := range validItemTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item type %q", value)
}

// ItemSize is the bottle volume.
type ItemSize string

const (
	ItemSize375ml  ItemSize = "375ml"
	ItemSize750ml  ItemSize = "750ml"
	ItemSize1L     ItemSize = "1l"
	ItemSize1750ml ItemSize = "1.75l"
)

var validItemSizes = []ItemSize{ItemSize375ml, ItemSize750ml, ItemSize1L, ItemSize1750ml}

func (s ItemSize) IsValid() bool {
	for _, candidate := range validItemSizes {
		if candidate == s {
			return true
		}
	}
	return false
}
