package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alex-pricope/hackathon-judging/api/controllers"
	"github.com/alex-pricope/hackathon-judging/api/transport"
	"github.com/alex-pricope/hackathon-judging/auth"
	"github.com/alex-pricope/hackathon-judging/logging"
	"github.com/alex-pricope/hackathon-judging/storage"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
)

const DriverDynamo = "dynamodb"

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

// OpenStores connects the configured backend. The returned func releases it.
func OpenStores(ctx context.Context, conf *Config) (*storage.Stores, func(), error) {
	switch conf.Driver {
	case DriverDynamo:
		var opts []func(*dynamodb.Options)
		if conf.DynamoEndpoint != "" {
			opts = append(opts, func(o *dynamodb.Options) {
				o.BaseEndpoint = aws.String(conf.DynamoEndpoint)
			})
		}
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("load AWS config: %w", err)
		}
		client := dynamodb.NewFromConfig(cfg, opts...)
		stores := storage.NewDynamoStores(client, storage.DynamoTables{
			Teams:    conf.TableNameTeams,
			Judges:   conf.TableNameJudges,
			Criteria: conf.TableNameCriteria,
			Ratings:  conf.TableNameRatings,
			State:    conf.TableNameState,
		})
		return stores, func() {}, nil
	default:
		db, err := storage.OpenSQL(ctx, conf.Driver, conf.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.CreateSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return storage.NewSQLStores(db), func() { _ = db.Close() }, nil
	}
}

// NewEngine builds the router with every controller registered.
func NewEngine(conf *Config, stores *storage.Stores) *gin.Engine {
	mode := gin.ReleaseMode
	if conf.Local() {
		mode = gin.DebugMode
	}
	r := transport.NewRouter(transport.RouterOptions{
		GinMode:        mode,
		Swagger:        conf.Local(),
		Registry:       transport.NewRegistry(),
		AllowedOrigins: conf.AllowedOrigins,
	})

	signer := auth.NewSigner(conf.JWTSecret, conf.SessionTTL)
	r.Use(transport.SessionMiddleware(signer))

	var limiter *transport.ClientLimiter
	if conf.LoginRatePerMin > 0 {
		limiter = transport.NewClientLimiter(conf.LoginRatePerMin, conf.LoginBurst)
	}

	controllers.NewAuthController(stores.Judges, signer, conf.AdminCode, !conf.Local(), limiter).RegisterRoutes(r)
	controllers.NewTeamController(stores.Teams, stores.Ratings, stores.State).RegisterRoutes(r)
	controllers.NewJudgeController(stores.Judges, stores.Ratings).RegisterRoutes(r)
	controllers.NewCriterionController(stores.Criteria).RegisterRoutes(r)
	controllers.NewScoreController(stores.Ratings, stores.Teams, stores.Judges, stores.Criteria).RegisterRoutes(r)
	controllers.NewActiveTeamController(stores.State, stores.Teams).RegisterRoutes(r)
	controllers.NewResultsController(stores).RegisterRoutes(r)
	controllers.NewHealthController(stores.Health).RegisterRoutes(r)

	return r
}

// Start serves until ctx is cancelled (local) or the lambda runtime stops.
func (s *Server) Start(ctx context.Context) error {
	stores, closeStores, err := OpenStores(ctx, s.config)
	if err != nil {
		return err
	}
	defer closeStores()

	engine := NewEngine(s.config, stores)

	// Do not run lambda helper locally
	if s.config.Local() {
		return startLocal(ctx, engine, s.config.Port)
	}
	startLambda(engine)
	return nil
}

func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Infof("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

func startLocal(ctx context.Context, engine *gin.Engine, port int) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Log.Infof("Starting server on http://localhost:%d", port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("run server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logging.Log.Info("Server shut down")
	return nil
}
