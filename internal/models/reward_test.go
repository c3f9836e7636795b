package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRarityRankOrdering(t *testing.T) {
	ordered := []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, ordered[i-1].Rank(), ordered[i].Rank())
	}

	assert.Equal(t, 0, Rarity("mythic").Rank())
}

func TestRarityValid(t *testing.T) {
	assert.True(t, RarityCommon.Valid())
	assert.True(t, RarityLegendary.Valid())
	assert.False(t, Rarity("").Valid())
	assert.False(t, Rarity("mythic").Valid())
}

func TestRewardTypeValid(t *testing.T) {
	for _, rewardType := range []RewardType{RewardTypeTheme, RewardTypeBadge, RewardTypeAnimation, RewardTypeFeature} {
		assert.True(t, rewardType.Valid())
	}

	assert.False(t, RewardType("sticker").Valid())
	assert.False(t, RewardType("").Valid())
}
