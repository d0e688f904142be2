// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package recommend

import (
	"reflect"
	"testing"

	"github.com/tomtom215/campusevents/internal/models"
)

func TestDistribution(t *testing.T) {
	events := []models.Event{
		{ID: "1", Category: models.CategoryWorkshop},
		{ID: "2", Category: models.CategorySocial},
		{ID: "3", Category: models.CategoryWorkshop},
	}
	got := Distribution(events)
	want := map[models.Category]int{models.CategoryWorkshop: 2, models.CategorySocial: 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Distribution() = %v, want %v", got, want)
	}

	if got := Distribution(nil); len(got) != 0 {
		t.Errorf("Distribution(nil) = %v, want empty", got)
	}
}

func TestUnderrepresented(t *testing.T) {
	w, s, a := models.CategoryWorkshop, models.CategorySocial, models.CategoryAcademic

	tests := []struct {
		name string
		dist map[models.Category]int
		all  []models.Category
		want []models.Category
	}{
		{
			name: "empty category set",
			dist: map[models.Category]int{w: 3},
			all:  nil,
			want: nil,
		},
		{
			name: "nothing attended marks every category",
			dist: map[models.Category]int{},
			all:  []models.Category{w, s, a},
			want: []models.Category{w, s, a},
		},
		{
			name: "missing category always included",
			dist: map[models.Category]int{w: 1, s: 1},
			all:  []models.Category{w, s, a},
			want: []models.Category{a},
		},
		{
			name: "below mean included",
			dist: map[models.Category]int{w: 4, s: 1, a: 1},
			all:  []models.Category{w, s, a},
			want: []models.Category{s, a},
		},
		{
			name: "equal to mean excluded",
			dist: map[models.Category]int{w: 2, s: 2},
			all:  []models.Category{w, s},
			want: nil,
		},
		{
			name: "keeps order of all",
			dist: map[models.Category]int{s: 5},
			all:  []models.Category{a, s, w},
			want: []models.Category{a, w},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Underrepresented(tt.dist, tt.all)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Underrepresented() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	events := []models.Event{
		{Category: models.CategorySocial},
		{Category: models.CategoryWorkshop},
		{Category: models.CategorySocial},
	}
	want := []models.Category{models.CategorySocial, models.CategoryWorkshop}
	if got := Categories(events); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}
