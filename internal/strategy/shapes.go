package strategy

import "github.com/yourusername/parlay-engine/internal/models"

// Built-in slot shapes
const (
	ShapeStandardSix   = "standard_6"
	ShapeCompactThree  = "compact_3"
	ShapeReboundHeavy4 = "rebound_heavy_4"
)

// StandardSixSlots is the default six-leg shape
func StandardSixSlots() []models.Category {
	return []models.Category{
		models.CategoryStarFloorOver,
		models.CategoryHighAssistOver,
		models.CategoryBigRebounderOver,
		models.CategoryThreePointShooter,
		models.CategoryRoleRebounderOver,
		models.CategoryLowLineUnder,
	}
}

func builtinShapes() map[string][]models.Category {
	return map[string][]models.Category{
		ShapeStandardSix: StandardSixSlots(),
		ShapeCompactThree: {
			models.CategoryStarFloorOver,
			models.CategoryHighAssistOver,
			models.CategoryBigRebounderOver,
		},
		ShapeReboundHeavy4: {
			models.CategoryBigRebounderOver,
			models.CategoryRoleRebounderOver,
			models.CategoryStarFloorOver,
			models.CategoryLowLineUnder,
		},
	}
}
