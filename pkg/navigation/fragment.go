package navigation

import (
	"net/url"
	"strings"

	"github.com/zfogg/resep/pkg/api"
)

const recipePrefix = "#/recipe/"

// DefaultCategory is used when a recipe link omits its category
const DefaultCategory = api.CategoryMakanan

// FragmentOf returns the part of s from its first '#', or "" when it has
// none. A bare fragment is returned unchanged.
func FragmentOf(s string) string {
	i := strings.IndexByte(s, '#')
	if i < 0 {
		return ""
	}
	return s[i:]
}

// ParseFragment reads a recipe deep link of the form #/recipe/<id> or
// #/recipe/<id>/<category>. A full URL is accepted and only its fragment is
// considered. The returned state is a detail view; ok is false for any other
// shape, including an empty fragment.
func ParseFragment(s string) (ViewState, bool) {
	s = FragmentOf(s)
	if !strings.HasPrefix(s, recipePrefix) {
		return ViewState{}, false
	}

	parts := strings.Split(strings.TrimPrefix(s, recipePrefix), "/")
	id, err := url.PathUnescape(parts[0])
	if err != nil || id == "" {
		return ViewState{}, false
	}

	category := DefaultCategory
	if len(parts) > 1 && parts[1] != "" {
		if c, err := url.PathUnescape(parts[1]); err == nil {
			category = c
		}
	}

	return ViewState{
		Mode:             ModeDetail,
		SelectedRecipeID: &id,
		SelectedCategory: category,
	}, true
}

// ToFragment renders the deep link for v. Only detail views are linkable;
// every other state renders as the empty fragment.
func ToFragment(v ViewState) string {
	if v.Mode != ModeDetail || v.SelectedRecipeID == nil || *v.SelectedRecipeID == "" {
		return ""
	}

	frag := recipePrefix + url.PathEscape(*v.SelectedRecipeID)
	if v.SelectedCategory != "" {
		frag += "/" + url.PathEscape(v.SelectedCategory)
	}
	return frag
}

// ShareURL builds a link that opens recipe id in category. Any fragment
// already on base is replaced.
func ShareURL(base, id, category string) string {
	if i := strings.IndexByte(base, '#'); i >= 0 {
		base = base[:i]
	}
	if category == "" {
		category = DefaultCategory
	}
	return base + ToFragment(ViewState{Mode: ModeDetail, SelectedRecipeID: &id, SelectedCategory: category})
}
