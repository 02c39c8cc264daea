package main

import (
	"net/http"

	"github.com/gorilla/mux"

	"streamhaven/api"
	"streamhaven/handlers"
	"streamhaven/internal/auth"
	"streamhaven/services/browse"
	"streamhaven/services/catalog"
	"streamhaven/services/history"
	"streamhaven/services/reviews"
	"streamhaven/services/theme"
	"streamhaven/services/users"
	"streamhaven/services/watchlist"
	"streamhaven/utils"
)

type deps struct {
	catalog      *catalog.Client
	controller   *browse.Controller
	watchlist    *watchlist.Service
	history      *history.Service
	tracker      *history.Tracker
	reviews      *reviews.Service
	users        *users.Service
	theme        *theme.Service
	tokens       *auth.TokenManager
	loginLimiter *api.IPRateLimiter

	extraOrigins []string
}

func buildRouter(d deps) *mux.Router {
	r := utils.NewRouter(d.extraOrigins...)

	catalogH := handlers.NewCatalogHandler(d.catalog)
	browseH := handlers.NewBrowseHandler(d.controller)
	watchlistH := handlers.NewWatchlistHandler(d.watchlist)
	historyH := handlers.NewHistoryHandler(d.history, d.tracker)
	reviewsH := handlers.NewReviewsHandler(d.reviews)
	authH := handlers.NewAuthHandler(d.users, d.tokens)
	themeH := handlers.NewThemeHandler(d.theme)
	embedH := handlers.NewEmbedHandler()

	apiRouter := r.PathPrefix("/api").Subrouter()

	// Catalog
	apiRouter.HandleFunc("/home", catalogH.Home).Methods(http.MethodGet)
	apiRouter.HandleFunc("/genres/{kind}", catalogH.Genres).Methods(http.MethodGet)
	apiRouter.HandleFunc("/tv/{id:[0-9]+}/season/{season:[0-9]+}", catalogH.Season).Methods(http.MethodGet)
	apiRouter.HandleFunc("/{kind}/{id:[0-9]+}/related", catalogH.Related).Methods(http.MethodGet)
	apiRouter.HandleFunc("/{kind}/{id:[0-9]+}/trailer", catalogH.Trailer).Methods(http.MethodGet)
	apiRouter.HandleFunc("/{kind}/{id:[0-9]+}/embeds", embedH.Sources).Methods(http.MethodGet)

	// Browse
	apiRouter.HandleFunc("/browse", browseH.Snapshot).Methods(http.MethodGet)
	apiRouter.HandleFunc("/browse/more", browseH.More).Methods(http.MethodPost)
	apiRouter.HandleFunc("/browse/{section}", browseH.Navigate).Methods(http.MethodGet)

	// Watchlist
	apiRouter.HandleFunc("/watchlist", watchlistH.List).Methods(http.MethodGet)
	apiRouter.HandleFunc("/watchlist", watchlistH.Toggle).Methods(http.MethodPost)
	apiRouter.HandleFunc("/watchlist/contains/{kind}/{id:[0-9]+}", watchlistH.Contains).Methods(http.MethodGet)

	// Continue watching
	apiRouter.HandleFunc("/continue-watching", historyH.List).Methods(http.MethodGet)
	apiRouter.HandleFunc("/continue-watching/progress", historyH.Progress).Methods(http.MethodPost)
	apiRouter.HandleFunc("/continue-watching/playback/start", historyH.PlaybackStart).Methods(http.MethodPost)
	apiRouter.HandleFunc("/continue-watching/playback/advance", historyH.PlaybackAdvance).Methods(http.MethodPost)
	apiRouter.HandleFunc("/continue-watching/playback/stop", historyH.PlaybackStop).Methods(http.MethodPost)
	apiRouter.HandleFunc("/continue-watching/{kind}/{id:[0-9]+}", historyH.Remove).Methods(http.MethodDelete)

	// Reviews
	apiRouter.HandleFunc("/reviews/{kind}/{id:[0-9]+}", reviewsH.List).Methods(http.MethodGet)
	apiRouter.HandleFunc("/reviews/{kind}/{id:[0-9]+}", reviewsH.Submit).Methods(http.MethodPost)
	apiRouter.HandleFunc("/reviews/{kind}/{id:[0-9]+}/mine", reviewsH.Mine).Methods(http.MethodGet)
	apiRouter.HandleFunc("/reviews/{kind}/{id:[0-9]+}/{reviewID}/helpful", reviewsH.MarkHelpful).Methods(http.MethodPost)

	// Theme
	apiRouter.HandleFunc("/theme", themeH.Get).Methods(http.MethodGet)
	apiRouter.HandleFunc("/theme", themeH.Set).Methods(http.MethodPut)

	// Auth: signup and login are rate limited; me/logout need a valid token.
	apiRouter.HandleFunc("/auth/signup", api.RateLimitHandlerFunc(d.loginLimiter, authH.Signup)).Methods(http.MethodPost)
	apiRouter.HandleFunc("/auth/login", api.RateLimitHandlerFunc(d.loginLimiter, authH.Login)).Methods(http.MethodPost)

	authed := apiRouter.PathPrefix("/auth").Subrouter()
	authed.Use(api.AccountAuthMiddleware(d.tokens))
	authed.HandleFunc("/me", authH.Me).Methods(http.MethodGet)
	authed.HandleFunc("/logout", authH.Logout).Methods(http.MethodPost)

	// Detail is registered last so the literal prefixes above win.
	apiRouter.HandleFunc("/{kind}/{id:[0-9]+}", catalogH.Detail).Methods(http.MethodGet)

	return r
}
