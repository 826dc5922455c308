package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/zfogg/resep/pkg/api"
	"github.com/zfogg/resep/pkg/formatter"
	"github.com/zfogg/resep/pkg/logger"
	"github.com/zfogg/resep/pkg/navigation"
	"github.com/zfogg/resep/pkg/output"
	"github.com/zfogg/resep/pkg/prompter"
)

const browseHelp = `Commands:
  home | makanan | minuman | profile   switch page
  open <id> [category]                 show a recipe
  link <url|#/recipe/...>              follow a shared link
  back                                 return to the list
  new                                  create a recipe
  edit [id]                            edit a recipe
  fav [id]                             toggle favorite
  review <rating> [comment]            review the open recipe
  share                                print the open recipe's link
  tab favorites|reviews                switch profile tab
  refresh                              reload the profile tab
  help                                 show this help
  quit                                 leave`

// BrowseService is an interactive shell over the navigation machine. Every
// view the web client has is reachable, and shared links can be followed.
type BrowseService struct {
	app     *App
	p       *prompter.Prompter
	bar     *navigation.MemoryBar
	machine *navigation.Machine
	recipes *RecipeService
	profile *ProfileService
	share   *ShareService
}

// NewBrowseService creates a shell starting at fragment, which may be a
// recipe link or empty
func NewBrowseService(app *App, p *prompter.Prompter, fragment string) *BrowseService {
	bar := navigation.NewMemoryBar(navigation.FragmentOf(fragment))
	return &BrowseService{
		app:     app,
		p:       p,
		bar:     bar,
		machine: navigation.New(bar),
		recipes: NewRecipeService(app),
		profile: NewProfileService(app),
		share:   NewShareService(app),
	}
}

// Close releases the shell's subscriptions
func (b *BrowseService) Close() {
	b.machine.Close()
	b.profile.Close()
}

// Machine exposes the navigation state
func (b *BrowseService) Machine() *navigation.Machine {
	return b.machine
}

// Run renders the current view and executes commands until quit or end of
// input
func (b *BrowseService) Run(ctx context.Context) error {
	if err := b.render(ctx); err != nil {
		formatter.PrintError("%v", err)
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := b.p.String(b.promptLabel())
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		quit, err := b.Exec(ctx, line)
		if err != nil {
			formatter.PrintError("%v", err)
		}
		if quit {
			return nil
		}
	}
}

func (b *BrowseService) promptLabel() string {
	st := b.machine.State()
	switch st.Mode {
	case navigation.ModeDetail:
		return fmt.Sprintf("resep:%s> ", *st.SelectedRecipeID)
	case navigation.ModeList:
		return fmt.Sprintf("resep:%s> ", st.Page)
	default:
		return fmt.Sprintf("resep:%s> ", st.Mode)
	}
}

// Exec runs one shell command and renders the resulting view
func (b *BrowseService) Exec(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	logger.Debug("Browse command", "command", cmd, "args", args)

	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		output.Println(browseHelp)
		return false, nil
	case string(navigation.PageHome), string(navigation.PageMakanan), string(navigation.PageMinuman), string(navigation.PageProfile):
		b.machine.NavigateTo(navigation.Page(cmd))
	case "open":
		if len(args) == 0 {
			return false, fmt.Errorf("usage: open <id> [category]")
		}
		category := ""
		if len(args) > 1 {
			category = args[1]
		}
		b.machine.OpenRecipe(args[0], category)
	case "link":
		if len(args) == 0 {
			return false, fmt.Errorf("usage: link <url>")
		}
		if _, ok := navigation.ParseFragment(args[0]); !ok {
			return false, fmt.Errorf("not a recipe link: %s", args[0])
		}
		b.bar.Follow(navigation.FragmentOf(args[0]))
	case "back":
		b.machine.GoBack()
	case "new":
		b.machine.OpenCreate()
	case "edit":
		id, err := b.recipeArg(args)
		if err != nil {
			return false, err
		}
		b.machine.OpenEdit(id)
	case "fav":
		id, err := b.recipeArg(args)
		if err != nil {
			return false, err
		}
		NewFavoriteService(b.app).Toggle(id)
		return false, nil
	case "review":
		return false, b.review(ctx, args)
	case "share":
		st := b.machine.State()
		if st.Mode != navigation.ModeDetail {
			return false, fmt.Errorf("open a recipe first")
		}
		b.share.Share(*st.SelectedRecipeID, st.SelectedCategory, false)
		return false, nil
	case "tab":
		if len(args) == 0 || (args[0] != string(TabFavorites) && args[0] != string(TabReviews)) {
			return false, fmt.Errorf("usage: tab favorites|reviews")
		}
		if st := b.machine.State(); st.Mode != navigation.ModeList || st.Page != navigation.PageProfile {
			b.machine.NavigateTo(navigation.PageProfile)
		}
		b.profile.SetTab(Tab(args[0]))
	case "refresh":
		b.profile.InvalidateReviews()
	default:
		return false, fmt.Errorf("unknown command %q (try help)", cmd)
	}

	return false, b.render(ctx)
}

// recipeArg returns the id given on the command line or the open recipe
func (b *BrowseService) recipeArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if id := b.machine.State().SelectedRecipeID; id != nil {
		return *id, nil
	}
	return "", fmt.Errorf("no recipe selected")
}

func (b *BrowseService) review(ctx context.Context, args []string) error {
	st := b.machine.State()
	if st.Mode != navigation.ModeDetail {
		return fmt.Errorf("open a recipe first")
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: review <rating> [comment]")
	}

	var rating int
	if _, err := fmt.Sscanf(args[0], "%d", &rating); err != nil {
		return fmt.Errorf("rating must be a number")
	}
	if _, err := b.recipes.AddReview(ctx, *st.SelectedRecipeID, rating, strings.Join(args[1:], " ")); err != nil {
		return err
	}
	b.profile.InvalidateReviews()
	return nil
}

// render draws the view for the current state. Create and edit views run
// their form and move on when it completes.
func (b *BrowseService) render(ctx context.Context) error {
	st := b.machine.State()
	if st.Mode != navigation.ModeList || st.Page != navigation.PageProfile {
		b.profile.Deactivate()
	}

	switch st.Mode {
	case navigation.ModeDetail:
		return b.recipes.Show(ctx, *st.SelectedRecipeID)

	case navigation.ModeCreate:
		input, err := PromptRecipe(b.p, api.RecipeInput{Category: api.CategoryMakanan})
		if err != nil {
			b.machine.GoBack()
			return err
		}
		created, err := b.recipes.Create(ctx, input)
		if err != nil {
			b.machine.GoBack()
			return err
		}
		b.machine.OnCreateSuccess(created)
		return b.render(ctx)

	case navigation.ModeEdit:
		id := *st.EditingRecipeID
		current, err := b.app.Remote.Recipe(ctx, id)
		if err != nil {
			b.machine.GoBack()
			return fmt.Errorf("failed to load recipe %s: %w", id, err)
		}
		input, err := PromptRecipe(b.p, InputFromRecipe(current))
		if err != nil {
			b.machine.GoBack()
			return err
		}
		updated, err := b.recipes.Edit(ctx, id, input)
		if err != nil {
			b.machine.GoBack()
			return err
		}
		b.machine.OnEditSuccess(updated)
		return b.render(ctx)
	}

	switch st.Page {
	case navigation.PageProfile:
		if err := b.profile.ShowProfile(); err != nil {
			return err
		}
		output.Println()
		if b.profile.ActiveTab() == TabReviews {
			return b.profile.ShowReviews(ctx, false)
		}
		return b.profile.ShowFavorites(ctx)
	case navigation.PageMakanan, navigation.PageMinuman:
		return b.recipes.List(ctx, ListOptions{Category: string(st.Page)})
	default:
		return b.recipes.List(ctx, ListOptions{})
	}
}
