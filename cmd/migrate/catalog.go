package main

import (
	"keyquest/internal/models"
)

var seedRewards = []models.Reward{
	{
		Name:        "Midnight Theme",
		Type:        models.RewardTypeTheme,
		Description: "An ultra-dark theme with minimal blue accents",
		Rarity:      models.RarityCommon,
		Payload: map[string]interface{}{
			"background":    "oklch(0.02 0.01 250)",
			"textPrimary":   "oklch(0.95 0.02 250)",
			"textSecondary": "oklch(0.65 0.01 250)",
			"accent":        "oklch(0.75 0.06 280)",
			"border":        "oklch(0.23 0.01 250)",
		},
	},
	{
		Name:        "Ember Theme",
		Type:        models.RewardTypeTheme,
		Description: "Dark theme with warm red accents",
		Rarity:      models.RarityUncommon,
		Payload: map[string]interface{}{
			"background":    "oklch(0.03 0.01 250)",
			"textPrimary":   "oklch(0.95 0.02 30)",
			"textSecondary": "oklch(0.65 0.01 30)",
			"accent":        "oklch(0.75 0.18 30)",
			"border":        "oklch(0.23 0.05 30)",
		},
	},
	{
		Name:        "Emerald Theme",
		Type:        models.RewardTypeTheme,
		Description: "Dark theme with vibrant green accents",
		Rarity:      models.RarityRare,
		Payload: map[string]interface{}{
			"background":    "oklch(0.03 0.01 250)",
			"textPrimary":   "oklch(0.95 0.02 145)",
			"textSecondary": "oklch(0.65 0.01 145)",
			"accent":        "oklch(0.75 0.18 145)",
			"border":        "oklch(0.23 0.05 145)",
		},
	},
	{
		Name:        "Amethyst Theme",
		Type:        models.RewardTypeTheme,
		Description: "Dark theme with vibrant purple accents",
		Rarity:      models.RarityEpic,
		Payload: map[string]interface{}{
			"background":    "oklch(0.03 0.01 250)",
			"textPrimary":   "oklch(0.95 0.02 300)",
			"textSecondary": "oklch(0.65 0.01 300)",
			"accent":        "oklch(0.75 0.18 300)",
			"border":        "oklch(0.23 0.05 300)",
		},
	},
	{
		Name:        "Gold Theme",
		Type:        models.RewardTypeTheme,
		Description: "Luxurious dark theme with gold accents",
		Rarity:      models.RarityLegendary,
		Payload: map[string]interface{}{
			"background":    "oklch(0.03 0.01 250)",
			"textPrimary":   "oklch(0.95 0.02 85)",
			"textSecondary": "oklch(0.65 0.01 85)",
			"accent":        "oklch(0.75 0.18 85)",
			"border":        "oklch(0.23 0.05 85)",
		},
	},
	{
		Name:        "Early Bird Badge",
		Type:        models.RewardTypeBadge,
		Description: "Complete 5 tasks before 9AM",
		Rarity:      models.RarityCommon,
		Payload: map[string]interface{}{
			"icon":  "sunrise",
			"color": "oklch(0.75 0.06 60)",
		},
	},
	{
		Name:        "Night Owl Badge",
		Type:        models.RewardTypeBadge,
		Description: "Complete 5 tasks after 10PM",
		Rarity:      models.RarityCommon,
		Payload: map[string]interface{}{
			"icon":  "moon",
			"color": "oklch(0.75 0.06 250)",
		},
	},
	{
		Name:        "Fade In Animation",
		Type:        models.RewardTypeAnimation,
		Description: "Tasks fade in smoothly when loaded",
		Rarity:      models.RarityUncommon,
		Payload: map[string]interface{}{
			"name":     "fadeIn",
			"duration": "0.5s",
			"timing":   "ease-in",
		},
	},
	{
		Name:        "Slide In Animation",
		Type:        models.RewardTypeAnimation,
		Description: "Tasks slide in from the side when loaded",
		Rarity:      models.RarityRare,
		Payload: map[string]interface{}{
			"name":     "slideIn",
			"duration": "0.3s",
			"timing":   "cubic-bezier(0.4, 0, 0.2, 1)",
		},
	},
	{
		Name:        "Task Prioritizer",
		Type:        models.RewardTypeFeature,
		Description: "AI-powered task prioritization suggestions",
		Rarity:      models.RarityEpic,
		Payload: map[string]interface{}{
			"feature": "taskPrioritizer",
			"enabled": true,
		},
	},
	{
		Name:        "Time Tracker",
		Type:        models.RewardTypeFeature,
		Description: "Track time spent on each task",
		Rarity:      models.RarityLegendary,
		Payload: map[string]interface{}{
			"feature": "timeTracker",
			"enabled": true,
		},
	},
}

// shares split the named percentage evenly across every reward of that rarity.
type seedLootBox struct {
	lootBox models.LootBox
	shares  map[models.Rarity]float64
}

var seedLootBoxes = []seedLootBox{
	{
		lootBox: models.LootBox{
			Name:        "Basic Loot Box",
			Description: "Contains common and uncommon rewards",
			Cost:        1,
			Rarity:      models.RarityCommon,
		},
		shares: map[models.Rarity]float64{
			models.RarityCommon:   70,
			models.RarityUncommon: 30,
		},
	},
	{
		lootBox: models.LootBox{
			Name:        "Premium Loot Box",
			Description: "Higher chance of rare and epic rewards",
			Cost:        3,
			Rarity:      models.RarityRare,
		},
		shares: map[models.Rarity]float64{
			models.RarityCommon:   25,
			models.RarityUncommon: 40,
			models.RarityRare:     30,
			models.RarityEpic:     5,
		},
	},
	{
		lootBox: models.LootBox{
			Name:        "Legendary Loot Box",
			Description: "Guaranteed epic or legendary reward",
			Cost:        5,
			Rarity:      models.RarityLegendary,
		},
		shares: map[models.Rarity]float64{
			models.RarityUncommon:  10,
			models.RarityRare:      30,
			models.RarityEpic:      45,
			models.RarityLegendary: 15,
		},
	},
}
