package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/AdamBeresnev/fantapes-tv/internal/httputil"
	"github.com/AdamBeresnev/fantapes-tv/internal/match"
	"github.com/AdamBeresnev/fantapes-tv/internal/middleware"
	"github.com/AdamBeresnev/fantapes-tv/internal/refdata"
	"github.com/AdamBeresnev/fantapes-tv/internal/service"
	"github.com/AdamBeresnev/fantapes-tv/internal/tax"
	"github.com/AdamBeresnev/fantapes-tv/internal/utils"
	"github.com/AdamBeresnev/fantapes-tv/views"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func newRouter(a *app) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(a.sessions.LoadAndSave)

	// Serve static files
	fileServer := http.FileServer(http.Dir("./static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.NotFound(w, "Pagina non trovata", nil)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		pg := a.newPage(r, a.cfg.SiteName, "list")
		q := r.URL.Query()
		filter := match.Filter{
			Player:      utils.StringOrNil(q.Get("player")),
			Competition: utils.StringOrNil(q.Get("competition")),
		}

		entries, err := a.matchService().ListMatches(r.Context(), filter)
		if err != nil {
			pg.AddError(httputil.UserError("Failed to fetch data", err))
		}
		teams := a.teams(&pg)
		competitions := a.competitions(&pg)

		render(w, r, views.Index(views.IndexData{
			Page:              pg,
			Cards:             views.PrepareMatchCards(entries, refdata.LogoMap(teams)),
			Players:           refdata.TeamNames(teams),
			Competitions:      competitions,
			PlayerFilter:      utils.OrZero(filter.Player),
			CompetitionFilter: utils.OrZero(filter.Competition),
		}))
	})

	r.Get("/submit", func(w http.ResponseWriter, r *http.Request) {
		pg := a.newPage(r, "Match Submission Form", "submit")
		competitions := a.competitions(&pg)
		teams := a.teams(&pg)

		render(w, r, views.Submit(views.SubmitData{
			Page:         pg,
			Competitions: competitions,
			Teams:        refdata.TeamNames(teams),
		}))
	})

	r.Post("/submit", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			httputil.BadRequest(w, "Invalid form data", err)
			return
		}

		err := a.matchService().SubmitMatch(r.Context(), service.SubmitInput{
			VideoLink:       r.PostForm.Get("youtube_link"),
			CompetitionType: r.PostForm.Get("competition_type"),
			Player1:         r.PostForm.Get("player1"),
			Player2:         r.PostForm.Get("player2"),
		})
		switch {
		case errors.Is(err, service.ErrMissingLink):
			httputil.PutFlashError(a.sessions, r.Context(), "Inserire il link YouTube della partita.")
		case err != nil:
			httputil.PutFlashError(a.sessions, r.Context(), httputil.UserError("Failed to add data", err))
		default:
			httputil.PutFlash(a.sessions, r.Context(), "Submission successful!")
		}
		http.Redirect(w, r, "/submit", http.StatusSeeOther)
	})

	r.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
		pg := a.newPage(r, "Statistiche delle Dirette", "stats")

		table, err := a.matchService().GetStats(r.Context())
		if err != nil {
			pg.AddError(httputil.UserError("Failed to fetch competition stats", err))
		}

		render(w, r, views.Stats(views.StatsData{Page: pg, Table: table}))
	})

	r.Get("/tax", func(w http.ResponseWriter, r *http.Request) {
		pg := a.newPage(r, "Calcolo IRPEF", "tax")
		teams := a.teams(&pg)
		render(w, r, views.Tax(views.TaxData{
			Page:       pg,
			Teams:      refdata.TeamNames(teams),
			AverageAge: "0.0",
		}))
	})

	r.Post("/tax", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			httputil.BadRequest(w, "Invalid form data", err)
			return
		}
		pg := a.newPage(r, "Calcolo IRPEF", "tax")
		teams := a.teams(&pg)
		data := views.TaxData{
			Page:         pg,
			Teams:        refdata.TeamNames(teams),
			Team:         r.PostForm.Get("team"),
			AverageAge:   r.PostForm.Get("average_age"),
			PayrollInput: r.PostForm.Get("payroll"),
		}

		// Bad input shows a message and counts as zero
		age, err := tax.ParseAge(data.AverageAge)
		if err != nil {
			data.AddError("Inserire un'età media valida.")
		}

		payroll, err := tax.ParsePayroll(data.PayrollInput)
		if err != nil {
			data.AddError("Inserire un numero valido.")
		} else if strings.TrimSpace(data.PayrollInput) != "" {
			data.FormattedPayroll = tax.FormatEuro(payroll)
		}

		rate, amount := tax.EstimateTax(age, payroll)
		data.Result = &views.TaxResult{Rate: rate, Amount: tax.FormatEuro(amount)}
		render(w, r, views.Tax(data))
	})

	r.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
		render(w, r, views.Admin(views.AdminData{Page: a.newPage(r, "Admin", "admin")}))
	})

	r.Post("/admin", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			httputil.BadRequest(w, "Invalid form data", err)
			return
		}
		pg := a.newPage(r, "Admin", "admin")
		password := r.PostForm.Get(middleware.PasswordField)
		if err := a.admin.Check(password); err != nil {
			slog.Warn("admin unlock refused", "remote", r.RemoteAddr)
			pg.AddError("Password errata")
			render(w, r, views.Admin(views.AdminData{Page: pg}))
			return
		}
		a.renderAdmin(w, r, pg, password)
	})

	r.Group(func(r chi.Router) {
		r.Use(a.admin.RequireAdmin)

		r.Post("/admin/delete", func(w http.ResponseWriter, r *http.Request) {
			pg := a.newPage(r, "Admin", "admin")
			link := r.PostForm.Get("link")

			removed, err := a.matchService().DeleteByLink(r.Context(), link)
			if err != nil {
				pg.AddError(httputil.UserError("Failed to delete data", err))
			} else {
				pg.Flash.Success = fmt.Sprintf("Eliminate %d partite con link %s", removed, link)
			}
			a.renderAdmin(w, r, pg, r.PostForm.Get(middleware.PasswordField))
		})

		r.Post("/admin/prune", func(w http.ResponseWriter, r *http.Request) {
			pg := a.newPage(r, "Admin", "admin")

			removed, err := a.matchService().PruneInvalid(r.Context(), a.cfg.VideoHostMarker)
			if err != nil {
				pg.AddError(httputil.UserError("Failed to delete invalid data", err))
			} else {
				pg.Flash.Success = fmt.Sprintf("Eliminate %d partite con link non validi", removed)
			}
			a.renderAdmin(w, r, pg, r.PostForm.Get(middleware.PasswordField))
		})

		r.Post("/admin/download", func(w http.ResponseWriter, r *http.Request) {
			name := service.DownloadName(a.cfg.SiteName, time.Now())
			w.Header().Set("Content-Type", "application/vnd.sqlite3")
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

			n, err := service.NewBackupService(a.db).WriteSnapshot(r.Context(), w)
			if err != nil {
				if n == 0 {
					w.Header().Del("Content-Disposition")
					httputil.InternalServerError(w, "Failed to download database", err)
					return
				}
				slog.Error("database download interrupted", "bytes", n, "error", err)
			}
		})
	})

	return r
}

// renderAdmin shows the unlocked tools. The password is echoed into each
// form since there is no admin session.
func (a *app) renderAdmin(w http.ResponseWriter, r *http.Request, pg views.Page, password string) {
	entries, err := a.matchService().ListMatches(r.Context(), match.Filter{})
	if err != nil {
		pg.AddError(httputil.UserError("Failed to fetch data", err))
	}

	render(w, r, views.Admin(views.AdminData{
		Page:     pg,
		Unlocked: true,
		Password: password,
		Entries:  entries,
	}))
}
