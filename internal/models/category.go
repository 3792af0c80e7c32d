package models

import "strings"

// Category is the archetype label used as a parlay slot
type Category string

const (
	CategoryStarFloorOver     Category = "STAR_FLOOR_OVER"
	CategoryHighAssistOver    Category = "HIGH_ASSIST_OVER"
	CategoryBigRebounderOver  Category = "BIG_REBOUNDER_OVER"
	CategoryRoleRebounderOver Category = "ROLE_REBOUNDER_OVER"
	CategoryThreePointShooter Category = "THREE_POINT_SHOOTER"
	CategoryLowLineUnder      Category = "LOW_LINE_UNDER"
	CategoryUnknown           Category = "UNKNOWN"
)

// Archetype groups categories for correlation rules
type Archetype string

const (
	ArchetypeScoring    Archetype = "scoring"
	ArchetypeAssist     Archetype = "assist"
	ArchetypeRebounding Archetype = "rebounding"
	ArchetypeUnder      Archetype = "under"
	ArchetypeUnknown    Archetype = "unknown"
)

var categoryArchetypes = map[Category]Archetype{
	CategoryStarFloorOver:     ArchetypeScoring,
	CategoryThreePointShooter: ArchetypeScoring,
	CategoryHighAssistOver:    ArchetypeAssist,
	CategoryBigRebounderOver:  ArchetypeRebounding,
	CategoryRoleRebounderOver: ArchetypeRebounding,
	CategoryLowLineUnder:      ArchetypeUnder,
}

// Archetype returns the archetype of the category
func (c Category) Archetype() Archetype {
	if a, ok := categoryArchetypes[c]; ok {
		return a
	}
	return ArchetypeUnknown
}

// IsKnown reports whether the category belongs to the closed set
func (c Category) IsKnown() bool {
	_, ok := categoryArchetypes[c]
	return ok
}

// ParseCategory resolves a raw category label into the closed set
func ParseCategory(raw string) Category {
	c := Category(strings.ToUpper(strings.TrimSpace(raw)))
	if c.IsKnown() {
		return c
	}
	return CategoryUnknown
}

// KnownCategories returns the closed category set in a stable order
func KnownCategories() []Category {
	return []Category{
		CategoryStarFloorOver,
		CategoryHighAssistOver,
		CategoryBigRebounderOver,
		CategoryRoleRebounderOver,
		CategoryThreePointShooter,
		CategoryLowLineUnder,
	}
}

// PropFamily is the normalized stat family of a prop type
type PropFamily string

const (
	FamilyPoints          PropFamily = "points"
	FamilyRebounds        PropFamily = "rebounds"
	FamilyAssists         PropFamily = "assists"
	FamilyThrees          PropFamily = "threes"
	FamilyPRA             PropFamily = "pra"
	FamilyPointsRebounds  PropFamily = "points_rebounds"
	FamilyPointsAssists   PropFamily = "points_assists"
	FamilyReboundsAssists PropFamily = "rebounds_assists"
	FamilyStealsBlocks    PropFamily = "steals_blocks"
	FamilyOther           PropFamily = "other"
)

// ParsePropFamily maps a free-form prop type onto its family.
// Combined markets are matched before their components, so a combo never shares a family with a single stat.
func ParsePropFamily(propType string) PropFamily {
	p := strings.ToLower(strings.TrimSpace(propType))
	switch p {
	case "":
		return FamilyOther
	case "pra":
		return FamilyPRA
	case "pr":
		return FamilyPointsRebounds
	case "pa":
		return FamilyPointsAssists
	case "ra":
		return FamilyReboundsAssists
	}

	points := strings.Contains(p, "point")
	rebounds := strings.Contains(p, "rebound")
	assists := strings.Contains(p, "assist")
	switch {
	case points && rebounds && assists:
		return FamilyPRA
	case points && rebounds:
		return FamilyPointsRebounds
	case points && assists:
		return FamilyPointsAssists
	case rebounds && assists:
		return FamilyReboundsAssists
	case strings.Contains(p, "three"), strings.Contains(p, "3pt"):
		return FamilyThrees
	case strings.Contains(p, "steal"), strings.Contains(p, "block"):
		return FamilyStealsBlocks
	case points:
		return FamilyPoints
	case rebounds:
		return FamilyRebounds
	case assists:
		return FamilyAssists
	}
	return FamilyOther
}
