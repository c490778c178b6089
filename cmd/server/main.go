package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/todo-list-api/internal/apperr"
	"github.com/iliyamo/todo-list-api/internal/config"
	"github.com/iliyamo/todo-list-api/internal/database"
	"github.com/iliyamo/todo-list-api/internal/handler"
	"github.com/iliyamo/todo-list-api/internal/queue"
	"github.com/iliyamo/todo-list-api/internal/repository"
	"github.com/iliyamo/todo-list-api/internal/router"
	"github.com/iliyamo/todo-list-api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting and response cache disabled")
	}

	go queue.StartAccountConsumer()

	users := repository.NewUserRepo(db)
	roles := repository.NewRoleRepo(db)
	tokens := repository.NewTokenRepo(db)
	items := repository.NewToDoRepo(db)
	events := queue.NewPublisher()

	authSvc := service.NewAuthService(cfg, users, roles, tokens, events)
	userSvc := service.NewUserService(users, roles, events)
	roleSvc := service.NewRoleService(roles)
	todoSvc := service.NewToDoService(items)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperr.HTTPErrorHandler
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.Register(e, cfg, rdb, router.Handlers{
		Auth:   handler.NewAuthHandler(authSvc),
		ToDo:   handler.NewToDoHandler(todoSvc),
		Admin:  handler.NewAdminHandler(userSvc),
		Role:   handler.NewRoleHandler(roleSvc),
		User:   handler.NewUserHandler(userSvc),
		Health: handler.NewHealthHandler(db),
	})

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
