package app

import (
	"context"
	"os"

	commonHTTP "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"sharebnb/internal/application/services"
	"sharebnb/internal/config"
	"sharebnb/internal/confirmation"
	"sharebnb/internal/infrastructure/clients"
	"sharebnb/internal/infrastructure/event_publisher"
	httpserver "sharebnb/internal/interfaces/http"
	appMessage "sharebnb/internal/interfaces/message"
	"sharebnb/internal/interfaces/message/commands"
	"sharebnb/internal/interfaces/message/events"
	"sharebnb/internal/interfaces/ws"
	"sharebnb/internal/observability"
	"sharebnb/internal/repository"
)

type App struct {
	logger zerolog.Logger
	router *message.Router
	srv    *httpserver.Server
	db     *mongo.Database
}

func NewApp(
	cfg config.Config,
	watermillLogger watermill.LoggerAdapter,
	redisClient *redis.Client,
	db *mongo.Database,
) (*App, error) {
	ordersRepo := repository.NewOrdersRepo(db)
	staysRepo := repository.NewStaysRepo(db)
	usersRepo := repository.NewUsersRepo(db)
	eventsRepo := repository.NewEventsRepo(db)

	redisPublisher, err := event_publisher.NewRedisPublisher(redisClient, watermillLogger)
	if err != nil {
		return nil, err
	}

	var publisher message.Publisher
	publisher = event_publisher.CorrelationPublisherDecorator{
		Publisher: redisPublisher,
	}
	publisher = observability.PublisherWithTracing{
		Publisher: publisher,
	}

	eventBus, err := events.NewEventBus(publisher, watermillLogger)
	if err != nil {
		return nil, err
	}

	commandBus, err := commands.NewBus(publisher, watermillLogger)
	if err != nil {
		return nil, err
	}

	hub := ws.NewHub()

	ordersService := services.NewOrdersService(
		ordersRepo,
		staysRepo,
		hub,
		eventBus,
		cfg.ClientURL,
	)

	mailClient := clients.NewSMTPClient(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailFrom, cfg.EmailPassword)
	workflow := confirmation.NewWorkflow(
		ordersRepo,
		staysRepo,
		usersRepo,
		mailClient,
		confirmation.NewRedisRunMarker(redisClient),
		eventBus,
		cfg.ClientURL,
	)

	router, err := appMessage.NewRouter(
		watermillLogger,
		redisClient,
		publisher,
		events.NewHandler(commandBus),
		commands.NewHandler(workflow),
		events.NewMarshaler(),
		events.NewEventProcessorConfig(redisClient, watermillLogger),
		commands.NewCommandProcessorConfig(redisClient, watermillLogger),
		eventsRepo,
	)
	if err != nil {
		return nil, err
	}

	e := commonHTTP.NewEcho()
	srv := httpserver.NewServer(
		e,
		cfg.Port,
		ordersService,
		commandBus,
		hub,
		[]byte(cfg.JWTSecret),
		router.IsRunning,
	)

	return &App{
		logger: zerolog.New(os.Stdout),
		router: router,
		srv:    srv,
		db:     db,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := repository.InitializeDBSchema(ctx, a.db)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info().Msg("starting router")

		return a.router.Run(ctx)
	})

	g.Go(func() error {
		<-a.router.Running()
		a.logger.Info().Msg("router is running")

		a.logger.Info().Msg("starting server")
		return a.srv.Start()
	})

	g.Go(func() error {
		// Shut down
		<-ctx.Done()

		err := a.srv.Stop(ctx)
		if err != nil {
			a.logger.Err(err).Msg("error stopping server")
		}

		return err
	})

	// Will block until all goroutines finish
	return g.Wait()
}
