package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-maze/api"
	gameapi "github.com/beka-birhanu/vinom-maze/api/game"
	api_i "github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/infrastruture/leaderboard"
	logger "github.com/beka-birhanu/vinom-maze/infrastruture/log"
	"github.com/beka-birhanu/vinom-maze/infrastruture/repo"
	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient        *mongo.Client
	redisClient        *redis.Client
	userRepo           i.UserRepo
	gameRepo           i.GameRepo
	mazeLeaderboard    i.Leaderboard
	gameSessionManager *service.GameSessionManager
	mazeController     api_i.Controller
	jwtTokenizer       i.Tokenizer
	authService        i.Authenticator
	authController     api_i.Controller
	router             *api.Router
	appLogger          i.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initRepos(client *mongo.Client) {
	userRepo = repo.NewUserRepo(client, config.Envs.DBName, "users")
	gameRepo = repo.NewGameRepo(client, config.Envs.DBName, "games")
	appLogger.Info("Repositories initialized")
}

func initLeaderboard() {
	var err error
	mazeLeaderboard, err = leaderboard.NewRedisLeaderboard(redisClient, config.Envs.LeaderboardTTL)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating leaderboard: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Leaderboard initialized")
}

func initSessionManager() {
	sessionLogger, err := logger.New("SESSION-MANAGER", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager logger: %v", err))
		os.Exit(1)
	}

	gameSessionManager, err = service.NewGameSessionManager(&service.Config{
		Leaderboard: mazeLeaderboard,
		GameRepo:    gameRepo,
		UserRepo:    userRepo,
		Logger:      sessionLogger,
		TickRate:    time.Duration(config.Envs.TickRateMS) * time.Millisecond,
		Width:       config.Envs.WorldWidth,
		Height:      config.Envs.WorldHeight,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager: %v", err))
		os.Exit(1)
	}

	appLogger.Info("Session manager initialized")
}

func initMazeController() {
	controllerLogger, err := logger.New("MAZE-API", config.ColorPurple, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller logger: %v", err))
		os.Exit(1)
	}

	mazeController, err = gameapi.NewMazeController(gameSessionManager, mazeLeaderboard, gameRepo, controllerLogger)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initAuthController() {
	authController = identity.NewIdentityServer(authService)
	appLogger.Info("Auth controller initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, mazeController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRedis(ctx)
	defer redisClient.Close()

	initRepos(mongoClient)
	initLeaderboard()
	initSessionManager()
	defer gameSessionManager.StopAll()

	initMazeController()
	initJWTTokenizer()
	initAuthService()
	initAuthController()
	initRouter(jwtTokenizer)

	gin.ForceConsoleColor()
	srv := router.Server()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error(fmt.Sprintf("Starting server: %v", err))
			os.Exit(1)
		}
	}()
	appLogger.Info(fmt.Sprintf("Listening on %s", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Warning(fmt.Sprintf("Server shutdown: %v", err))
	}
}
