package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/GhostMEn20034/small-social-network/internal/generator"
	"github.com/GhostMEn20034/small-social-network/internal/moderator"
	mysqlRepo "github.com/GhostMEn20034/small-social-network/internal/repository/mysql"
	"github.com/GhostMEn20034/small-social-network/internal/repository/mysql/model"
	"github.com/GhostMEn20034/small-social-network/internal/rest"
	"github.com/GhostMEn20034/small-social-network/internal/rest/middleware"
	"github.com/GhostMEn20034/small-social-network/internal/scheduler"
	"github.com/GhostMEn20034/small-social-network/internal/usecase/comment"
	"github.com/GhostMEn20034/small-social-network/internal/usecase/post"
	"github.com/GhostMEn20034/small-social-network/internal/usecase/user"
)

const (
	defaultTimeout     = 30
	defaultAddress     = ":9090"
	defaultCacheDB     = 0
	defaultJWTTTLHours = 24
	defaultRatePerMin  = 60
	dbMaxRetry         = 10
	dbRetryIntervalSec = 2
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
}

func main() {
	//prepare database
	dbHost := os.Getenv("DATABASE_HOST")
	dbPort := os.Getenv("DATABASE_PORT")
	dbUser := os.Getenv("DATABASE_USER")
	dbPass := os.Getenv("DATABASE_PASS")
	dbName := os.Getenv("DATABASE_NAME")
	connection := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", dbUser, dbPass, dbHost, dbPort, dbName)
	val := url.Values{}
	val.Add("parseTime", "1")
	val.Add("loc", "UTC")
	dsn := fmt.Sprintf("%s?%s", connection, val.Encode())

	var (
		db  *gorm.DB
		err error
	)

	for i := 0; i < dbMaxRetry; i++ {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Printf("failed to open connection to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
		} else {
			var sqlDB *sql.DB
			sqlDB, err = db.DB()
			if err != nil {
				log.Printf("failed to get sql.DB from gorm.DB (attempt %d/%d): %v", i+1, dbMaxRetry, err)
				continue
			}
			err = sqlDB.Ping()
			if err == nil {
				break
			}
			log.Printf("failed to ping database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
			_ = sqlDB.Close()
		}

		time.Sleep(dbRetryIntervalSec * time.Second)
	}

	if err != nil {
		log.Fatal("could not connect to database after retries:", err)
	}

	defer func() {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal("got error when getting sql.DB from gorm.DB", err)
		}
		if err := sqlDB.Close(); err != nil {
			log.Fatal("got error when closing the DB connection", err)
		}
	}()

	if err := db.AutoMigrate(&model.User{}, &model.Post{}, &model.Comment{}, &model.Like{}); err != nil {
		log.Fatal("failed to migrate database schema:", err)
	}

	// prepare the auto-reply queue store
	cacheHost := os.Getenv("CACHE_HOST")
	cachePort := os.Getenv("CACHE_PORT")
	cachePass := os.Getenv("CACHE_PASS")
	cacheDBStr := os.Getenv("CACHE_DB")
	cacheDB, err := strconv.Atoi(cacheDBStr)
	if err != nil {
		log.Println("failed to parse cacheDB, using default cacheDB")
		cacheDB = defaultCacheDB
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cacheHost + ":" + cachePort,
		Password: cachePass,
		DB:       cacheDB,
	})
	defer func() {
		err = client.Close()
		if err != nil {
			log.Fatal("got error when closing the redis connection", err)
		}
	}()

	_, err = client.Ping(context.Background()).Result()
	if err != nil {
		log.Fatal("failed to open connection to redis", err)
		return
	}

	// prepare gin
	route := gin.Default()
	route.Use(middleware.CORS())
	timeoutStr := os.Getenv("CONTEXT_TIMEOUT")
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil {
		log.Println("failed to parse timeout, using default timeout")
		timeout = defaultTimeout
	}
	timeoutContext := time.Duration(timeout) * time.Second
	route.Use(middleware.SetRequestContextWithTimeout(timeoutContext))

	// Prepare repositories behind one unit-of-work factory
	uowFactory := mysqlRepo.NewUnitOfWorkFactory(db)

	// Prepare collaborators
	contentModerator := moderator.NewSightengineModerator(
		os.Getenv("MODERATOR_ENDPOINT"),
		os.Getenv("MODERATOR_API_USER"),
		os.Getenv("MODERATOR_API_SECRET"),
	)
	replyGenerator := generator.NewLLMReplyGenerator(
		os.Getenv("LLM_BASE_URL"),
		os.Getenv("LLM_TOKEN"),
		os.Getenv("LLM_MODEL"),
	)
	autoReplyScheduler := scheduler.NewRedisScheduler(client)

	// Build service layer
	jwtSecret := os.Getenv("JWT_SECRET")
	jwtTTLStr := os.Getenv("JWT_EXPIRE_HOURS")
	jwtTTL, err := strconv.Atoi(jwtTTLStr)
	if err != nil {
		log.Println("failed to parse JWT TTL, using default 24 hours")
		jwtTTL = defaultJWTTTLHours
	}

	commentSvc := comment.NewService(uowFactory, contentModerator, replyGenerator, autoReplyScheduler)
	postSvc := post.NewService(uowFactory, contentModerator)
	userSvc := user.NewService(uowFactory, []byte(jwtSecret), time.Duration(jwtTTL)*time.Hour)

	commentHandler := rest.NewCommentHandler(commentSvc)
	postHandler := rest.NewPostHandler(postSvc)
	userHandler := rest.NewUserHandler(userSvc)

	authMiddleware := middleware.AuthMiddleware(jwtSecret)

	ratePerMinStr := os.Getenv("RATE_LIMIT_PER_MINUTE")
	ratePerMin, err := strconv.Atoi(ratePerMinStr)
	if err != nil {
		ratePerMin = defaultRatePerMin
	}

	// Start the auto-reply worker
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	autoReplyWorker := scheduler.NewAutoReplyWorker(client, commentSvc)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		autoReplyWorker.Start(gCtx)
		return nil
	})

	// Register routes
	route.POST("/auth/signup", userHandler.Signup)
	route.POST("/auth/token", userHandler.Token)

	route.GET("/posts", postHandler.FetchAll)
	route.GET("/posts/:id", postHandler.GetByID)

	route.GET("/comments/", commentHandler.FetchTopLevel)
	route.GET("/comments/:id", commentHandler.GetDetails)

	authorized := route.Group("/")
	authorized.Use(authMiddleware, middleware.RateLimit(ratePerMin))
	{
		authorized.POST("/posts", postHandler.Store)
		authorized.GET("/posts/me/list", postHandler.FetchOwn)
		authorized.PUT("/posts/:id", postHandler.Update)
		authorized.DELETE("/posts/:id", postHandler.Delete)

		authorized.POST("/comments/", commentHandler.Create)
		authorized.PUT("/comments/:id", commentHandler.Update)
		authorized.PUT("/comments/:id/like", commentHandler.ToggleLike)
		authorized.PUT("/comments/:id/block", commentHandler.Block)
		authorized.DELETE("/comments/:id", commentHandler.Delete)
		authorized.GET("/comments/analytics/daily-breakdown", commentHandler.DailyBreakdown)
	}

	// Start Server
	address := os.Getenv("SERVER_ADDRESS")
	if address == "" {
		address = defaultAddress
	}
	srv := &http.Server{
		Addr:    address,
		Handler: route,
	}
	g.Go(func() error {
		log.Printf("Server is running on %s\n", address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// shutdown on a signal, or early when either goroutine fails
	select {
	case <-ctx.Done():
		log.Println("Shutdown signal received, stopping server...")
	case <-gCtx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	if err := g.Wait(); err != nil {
		log.Fatal("Server error: ", err)
	}

	log.Println("Server exiting")
}
