package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitName(t *testing.T) {
	first, last := SplitName("Jan de Vries")
	assert.Equal(t, "Jan", first)
	assert.Equal(t, "de Vries", last)

	first, last = SplitName("Cher")
	assert.Equal(t, "Cher", first)
	assert.Equal(t, "", last)

	first, last = SplitName("  ")
	assert.Equal(t, "", first)
	assert.Equal(t, "", last)
}

func TestWarmerOf(t *testing.T) {
	assert.Equal(t, TemperatureHot, WarmerOf(TemperatureHot, TemperatureWarm))
	assert.Equal(t, TemperatureHot, WarmerOf(TemperatureWarm, TemperatureHot))
	assert.Equal(t, TemperatureWarm, WarmerOf("", TemperatureWarm))
	assert.Equal(t, TemperatureCold, WarmerOf(TemperatureCold, ""))
}

func TestReminderValidate(t *testing.T) {
	valid := Reminder{Type: ReminderFollowUp}
	assert.Error(t, valid.Validate(), "date is required")

	bad := Reminder{Type: "Smoke Signal"}
	assert.Error(t, bad.Validate())
}

func TestLeadValidate(t *testing.T) {
	assert.Error(t, Lead{Name: "x"}.Validate(), "company is required")
	assert.NoError(t, Lead{Name: "x", CompanyName: "y"}.Validate())
}

func TestIsPermanentCategory(t *testing.T) {
	assert.True(t, IsPermanentCategory(CategoryTrustSignal))
	assert.True(t, IsPermanentCategory(CategoryCulturalNote))
	assert.True(t, IsPermanentCategory(CategoryBuyingCycle))
	assert.False(t, IsPermanentCategory(CategoryAction))
	assert.False(t, IsPermanentCategory(""))
}
