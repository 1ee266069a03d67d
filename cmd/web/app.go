package main

import (
	"log/slog"
	"net/http"

	"github.com/AdamBeresnev/fantapes-tv/internal/config"
	"github.com/AdamBeresnev/fantapes-tv/internal/httputil"
	"github.com/AdamBeresnev/fantapes-tv/internal/middleware"
	"github.com/AdamBeresnev/fantapes-tv/internal/refdata"
	"github.com/AdamBeresnev/fantapes-tv/internal/service"
	"github.com/AdamBeresnev/fantapes-tv/internal/stats"
	"github.com/AdamBeresnev/fantapes-tv/internal/store"
	"github.com/AdamBeresnev/fantapes-tv/views"
	"github.com/a-h/templ"
	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
)

// app holds the long-lived dependencies. Stores and services are built
// per request on top of the shared handle.
type app struct {
	cfg        config.Config
	db         *sqlx.DB
	sessions   *scs.SessionManager
	catalog    *refdata.Catalog
	categories *stats.Categories
	admin      *middleware.AdminGate
}

func newApp(cfg config.Config, db *sqlx.DB, sessions *scs.SessionManager) (*app, error) {
	categories, err := stats.LoadCategories(cfg.CategoriesFile)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:        cfg,
		db:         db,
		sessions:   sessions,
		catalog:    refdata.NewCatalog(cfg.ClubsFile, cfg.CompetitionsFile),
		categories: categories,
		admin:      middleware.NewAdminGate(cfg.AdminPassword),
	}, nil
}

func (a *app) matchService() *service.MatchService {
	return service.NewMatchService(store.NewMatchStore(a.db), a.categories)
}

func (a *app) newPage(r *http.Request, title, nav string) views.Page {
	return views.Page{
		Title:    title,
		SiteName: a.cfg.SiteName,
		Nav:      nav,
		Flash:    httputil.PopFlash(a.sessions, r.Context()),
	}
}

// teams never fails the page: a broken clubs file shows a message and an empty list
func (a *app) teams(pg *views.Page) []refdata.Team {
	teams, err := a.catalog.Teams()
	if err != nil {
		pg.AddError(httputil.UserError("Failed to load teams", err))
	}
	return teams
}

func (a *app) competitions(pg *views.Page) []string {
	competitions, err := a.catalog.Competitions()
	if err != nil {
		pg.AddError(httputil.UserError("Failed to load competitions", err))
	}
	return competitions
}

func render(w http.ResponseWriter, r *http.Request, component templ.Component) {
	if err := views.Render(w, r, component); err != nil {
		slog.Error("failed to render page", "path", r.URL.Path, "error", err)
	}
}
