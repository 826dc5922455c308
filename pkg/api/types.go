package api

import (
	"strings"

	json "github.com/json-iterator/go"
)

// Categories the catalog is split into
const (
	CategoryMakanan = "makanan"
	CategoryMinuman = "minuman"
)

// Ingredient is one line of a recipe's ingredient list
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// Step is a single preparation step. The API returns steps either as plain
// strings or as objects carrying an instruction.
type Step string

// UnmarshalJSON accepts "text", {"instruction": "text"} and {"step": "text"}
func (s *Step) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = Step(text)
		return nil
	}

	var obj struct {
		Instruction string `json:"instruction"`
		Step        string `json:"step"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		*s = ""
		return nil
	}
	if obj.Instruction != "" {
		*s = Step(obj.Instruction)
	} else {
		*s = Step(obj.Step)
	}
	return nil
}

// Recipe is a catalog entry. List endpoints return a subset of the fields.
type Recipe struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Category      string       `json:"category"`
	Description   string       `json:"description,omitempty"`
	ImageURL      string       `json:"image_url,omitempty"`
	PrepTime      int          `json:"prep_time,omitempty"`
	CookTime      int          `json:"cook_time,omitempty"`
	Servings      int          `json:"servings,omitempty"`
	Difficulty    string       `json:"difficulty,omitempty"`
	IsFeatured    bool         `json:"is_featured"`
	AverageRating float64      `json:"average_rating,omitempty"`
	ReviewCount   int          `json:"review_count,omitempty"`
	Ingredients   []Ingredient `json:"ingredients,omitempty"`
	Steps         []Step       `json:"steps,omitempty"`
	CreatedAt     string       `json:"created_at,omitempty"`
	UpdatedAt     string       `json:"updated_at,omitempty"`
}

// NonEmptySteps returns the steps with blank entries removed
func (r *Recipe) NonEmptySteps() []string {
	out := make([]string, 0, len(r.Steps))
	for _, s := range r.Steps {
		if text := strings.TrimSpace(string(s)); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// RecipeInput is the body for creating or updating a recipe
type RecipeInput struct {
	Name        string       `json:"name"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
	ImageURL    string       `json:"image_url,omitempty"`
	PrepTime    int          `json:"prep_time"`
	CookTime    int          `json:"cook_time"`
	Servings    int          `json:"servings"`
	Difficulty  string       `json:"difficulty"`
	IsFeatured  bool         `json:"is_featured"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []string     `json:"steps"`
}

// Review is a rating left on a recipe. UserIdentifier is the opaque local
// id of the author; Username is only a display name.
type Review struct {
	ID             string `json:"id"`
	RecipeID       string `json:"recipe_id,omitempty"`
	UserIdentifier string `json:"user_identifier"`
	Username       string `json:"username,omitempty"`
	Rating         int    `json:"rating"`
	Comment        string `json:"comment,omitempty"`
	CreatedAt      string `json:"created_at"`
}

// ReviewInput is the body for posting a review
type ReviewInput struct {
	UserIdentifier string `json:"user_identifier"`
	Username       string `json:"username"`
	Rating         int    `json:"rating"`
	Comment        string `json:"comment,omitempty"`
}

// Pagination is the paging metadata returned by list endpoints
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// HasMore reports whether a page after the current one exists
func (p *Pagination) HasMore() bool {
	return p != nil && p.Page < p.TotalPages
}

// RecipeListParams are the query parameters for listing recipes
type RecipeListParams struct {
	Page     int
	Limit    int
	Category string
	Search   string
}

// RecipeListResponse is one page of the recipe catalog
type RecipeListResponse struct {
	Recipes    []Recipe
	Pagination *Pagination
}
