package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	accountinadapter "kqtrainer/internal/modules/account/adapter/in"
	accountoutadapter "kqtrainer/internal/modules/account/adapter/out"
	accountin "kqtrainer/internal/modules/account/port/in"
	accountservice "kqtrainer/internal/modules/account/service"
	accountusecase "kqtrainer/internal/modules/account/usecase"
	authinadapter "kqtrainer/internal/modules/auth/adapter/in"
	authoutadapter "kqtrainer/internal/modules/auth/adapter/out"
	authin "kqtrainer/internal/modules/auth/port/in"
	authout "kqtrainer/internal/modules/auth/port/out"
	authservice "kqtrainer/internal/modules/auth/service"
	authusecase "kqtrainer/internal/modules/auth/usecase"
	feedbackinadapter "kqtrainer/internal/modules/feedback/adapter/in"
	feedbackoutadapter "kqtrainer/internal/modules/feedback/adapter/out"
	feedbackin "kqtrainer/internal/modules/feedback/port/in"
	feedbackservice "kqtrainer/internal/modules/feedback/service"
	feedbackusecase "kqtrainer/internal/modules/feedback/usecase"
	planinadapter "kqtrainer/internal/modules/plan/adapter/in"
	planoutadapter "kqtrainer/internal/modules/plan/adapter/out"
	planin "kqtrainer/internal/modules/plan/port/in"
	planservice "kqtrainer/internal/modules/plan/service"
	planusecase "kqtrainer/internal/modules/plan/usecase"
	rosterinadapter "kqtrainer/internal/modules/roster/adapter/in"
	rosteroutadapter "kqtrainer/internal/modules/roster/adapter/out"
	rosterin "kqtrainer/internal/modules/roster/port/in"
	rosterservice "kqtrainer/internal/modules/roster/service"
	rosterusecase "kqtrainer/internal/modules/roster/usecase"
	"kqtrainer/internal/platform/clock"
	"kqtrainer/internal/platform/config"
	"kqtrainer/internal/platform/httpapi"
	"kqtrainer/internal/platform/logging"
	uiapp "kqtrainer/internal/ui/app"
)

// App wires every module against the shared gateway client and exposes the
// CLI handlers plus the usecases the TUI consumes.
type App struct {
	AuthCLI     authinadapter.CLIHandler
	RosterCLI   rosterinadapter.CLIHandler
	PlanCLI     planinadapter.CLIHandler
	FeedbackCLI feedbackinadapter.CLIHandler
	AccountCLI  accountinadapter.CLIHandler

	Logger *zap.Logger

	authUC     authin.Usecase
	rosterUC   rosterin.Usecase
	planUC     planin.Usecase
	feedbackUC feedbackin.Usecase
	accountUC  accountin.Usecase
}

func New(cfg config.Config, verbose bool) (*App, error) {
	logger, err := logging.New(cfg.LogPath(), verbose)
	if err != nil {
		return nil, err
	}

	clk := clock.SystemClock{}
	tokenStore := authoutadapter.NewFileTokenStore(cfg.TokenPath())
	api := httpapi.New(
		cfg.API.BaseURL,
		&http.Client{Timeout: cfg.API.RequestTimeout},
		storedTokenSource{store: tokenStore},
		logger,
	)

	authUC := authusecase.NewInteractor(authservice.NewAuthService(
		clk, authoutadapter.NewHTTPGateway(api), tokenStore))

	snapshot, err := rosteroutadapter.NewSQLiteSnapshot(cfg.SnapshotDBPath())
	if err != nil {
		return nil, err
	}
	rosterUC := rosterusecase.NewInteractor(rosterservice.NewRosterService(
		clk,
		rosteroutadapter.NewHTTPGateway(api, cfg.Roster.PerformanceCacheTTL, logger),
		snapshot,
		cfg.Roster.PerformanceWindowDays,
	))

	planUC := planusecase.NewInteractor(planservice.NewPlanService(
		planoutadapter.NewHTTPGateway(api, logger)))

	feedbackUC := feedbackusecase.NewInteractor(feedbackservice.NewFeedbackService(
		feedbackoutadapter.NewHTTPGateway(api, logger)))

	accountUC := accountusecase.NewInteractor(accountservice.NewAccountService(
		accountoutadapter.NewHTTPGateway(api, logger)))

	return &App{
		AuthCLI:     authinadapter.NewCLIHandler(authUC),
		RosterCLI:   rosterinadapter.NewCLIHandler(rosterUC),
		PlanCLI:     planinadapter.NewCLIHandler(planUC),
		FeedbackCLI: feedbackinadapter.NewCLIHandler(feedbackUC),
		AccountCLI:  accountinadapter.NewCLIHandler(accountUC),
		Logger:      logger,
		authUC:      authUC,
		rosterUC:    rosterUC,
		planUC:      planUC,
		feedbackUC:  feedbackUC,
		accountUC:   accountUC,
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.authUC, app.rosterUC, app.planUC, app.feedbackUC, app.accountUC)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// storedTokenSource adapts the auth token store to the gateway client. A
// missing token file means an unauthenticated request, not an error; the
// backend decides what needs auth.
type storedTokenSource struct {
	store authout.TokenStore
}

func (s storedTokenSource) Token(ctx context.Context) (string, error) {
	stored, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return stored.AccessToken, nil
}
