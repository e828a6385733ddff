// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package play_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ammateam/callboard/internal/core/play"
)

/*
TestSortRoles_OrderAndCollation verifies the display ordering: sort order
ascending first, Russian-collated title as the tie-break.
*/
func TestSortRoles_OrderAndCollation(t *testing.T) {
	roles := []play.Role{
		{Title: "Яго", SortOrder: 2},
		{Title: "Эмилия", SortOrder: 2},
		{Title: "Отелло", SortOrder: 1},
		{Title: "Дездемона", SortOrder: 2},
	}

	play.SortRoles(roles)

	titles := make([]string, 0, len(roles))
	for _, role := range roles {
		titles = append(titles, role.Title)
	}

	assert.Equal(t, []string{"Отелло", "Дездемона", "Эмилия", "Яго"}, titles)
}

/*
TestSortRoles_StableForEqualKeys keeps insertion order when both keys match.
*/
func TestSortRoles_StableForEqualKeys(t *testing.T) {
	roles := []play.Role{
		{ID: "a", Title: "Стража", SortOrder: 3},
		{ID: "b", Title: "Стража", SortOrder: 3},
	}

	play.SortRoles(roles)

	assert.Equal(t, "a", roles[0].ID)
	assert.Equal(t, "b", roles[1].ID)
}
