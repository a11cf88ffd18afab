package availability

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	users := []string{"ann", "bob", "cleo"}
	rows := []ChoiceRow{
		{Username: "ann", Day: 3, Choice: ChoiceAvailable},
		{Username: "ann", Day: 7, Choice: ChoiceUnavailable},
		{Username: "bob", Day: 3, Choice: ChoiceMaybeAvailable},
	}

	grouped, err := Aggregate(users, rows)
	require.NoError(t, err)

	assert.Equal(t, []int{3}, grouped["ann"].Available)
	assert.Equal(t, []int{7}, grouped["ann"].Unavailable)
	assert.Equal(t, []int{3}, grouped["bob"].MaybeAvailable)

	// Users without rows still appear, with empty non-nil buckets.
	cleo, ok := grouped["cleo"]
	require.True(t, ok)
	assert.Empty(t, cleo.Available)
	assert.NotNil(t, cleo.Available)
	assert.NotNil(t, cleo.MaybeAvailable)
	assert.NotNil(t, cleo.Unavailable)
}

func TestAggregateUnknownUser(t *testing.T) {
	rows := []ChoiceRow{{Username: "ghost", Day: 1, Choice: ChoiceAvailable}}

	_, err := Aggregate([]string{"ann"}, rows)
	require.Error(t, err)
	var integrity *IntegrityError
	require.True(t, errors.As(err, &integrity))
	assert.Equal(t, "ghost", integrity.Username)
}

func TestMergeManualAlwaysWins(t *testing.T) {
	manual, err := Aggregate([]string{"ann"}, []ChoiceRow{
		{Username: "ann", Day: 15, Choice: ChoiceUnavailable},
	})
	require.NoError(t, err)

	resolved, err := Merge(manual, []RuleContribution{
		{RuleID: "r1", Username: "ann", Choice: ChoiceAvailable, Days: []int{1, 15, 29}},
	})
	require.NoError(t, err)

	// Day 15 was answered manually; the rule may not reclaim it for any
	// category.
	assert.Equal(t, []int{1, 29}, resolved["ann"].Available)
	assert.Equal(t, []int{15}, resolved["ann"].Unavailable)
}

func TestMergeIdempotent(t *testing.T) {
	manual, err := Aggregate([]string{"ann"}, []ChoiceRow{
		{Username: "ann", Day: 8, Choice: ChoiceAvailable},
	})
	require.NoError(t, err)

	contrib := RuleContribution{RuleID: "r1", Username: "ann", Choice: ChoiceMaybeAvailable, Days: []int{8, 22}}

	once, err := Merge(manual, []RuleContribution{contrib})
	require.NoError(t, err)
	twice, err := Merge(manual, []RuleContribution{contrib, contrib})
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.Equal(t, []int{22}, once["ann"].MaybeAvailable)
}

func TestMergeEarlierRuleKeepsDay(t *testing.T) {
	manual, err := Aggregate([]string{"ann"}, nil)
	require.NoError(t, err)

	resolved, err := Merge(manual, []RuleContribution{
		{RuleID: "r1", Username: "ann", Choice: ChoiceAvailable, Days: []int{10}},
		{RuleID: "r2", Username: "ann", Choice: ChoiceUnavailable, Days: []int{10, 24}},
	})
	require.NoError(t, err)

	assert.Equal(t, []int{10}, resolved["ann"].Available)
	assert.Equal(t, []int{24}, resolved["ann"].Unavailable)
}

func TestMergeUnknownUser(t *testing.T) {
	manual, err := Aggregate([]string{"ann"}, nil)
	require.NoError(t, err)

	_, err = Merge(manual, []RuleContribution{
		{RuleID: "r1", Username: "ghost", Choice: ChoiceAvailable, Days: []int{2}},
	})
	require.Error(t, err)
	var integrity *IntegrityError
	require.True(t, errors.As(err, &integrity))
	assert.Equal(t, "ghost", integrity.Username)
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	manual, err := Aggregate([]string{"ann"}, []ChoiceRow{
		{Username: "ann", Day: 1, Choice: ChoiceAvailable},
	})
	require.NoError(t, err)

	_, err = Merge(manual, []RuleContribution{
		{RuleID: "r1", Username: "ann", Choice: ChoiceAvailable, Days: []int{2, 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, []int{1}, manual["ann"].Available)
}
