// Package main BorrowBox API.
//
// @title           BorrowBox API
// @version         1.0
// @description     Peer-to-peer tool rental (listings, borrow lifecycle, payments, reviews).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"borrowbox/app/echoServer"
	authctrl "borrowbox/app/echoServer/controller/auth"
	borrowctrl "borrowbox/app/echoServer/controller/borrow"
	paymentctrl "borrowbox/app/echoServer/controller/payment"
	reviewctrl "borrowbox/app/echoServer/controller/review"
	toolctrl "borrowbox/app/echoServer/controller/tool"
	"borrowbox/app/echoServer/validation"
	"borrowbox/config"
	"borrowbox/migrations"
	borrowrepo "borrowbox/repository/borrow"
	razorpayrepo "borrowbox/repository/razorpay"
	reviewrepo "borrowbox/repository/review"
	toolrepo "borrowbox/repository/tool"
	userrepo "borrowbox/repository/user"
	authsvc "borrowbox/service/auth"
	borrowsvc "borrowbox/service/borrow"
	paymentsvc "borrowbox/service/payment"
	reviewsvc "borrowbox/service/review"
	toolsvc "borrowbox/service/tool"
	"borrowbox/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := migrations.Apply(ctx, db.Pool); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	// repos
	ur := userrepo.New(db)
	tr := toolrepo.New(db)
	br := borrowrepo.New(db)
	rr := reviewrepo.New(db)
	gw := razorpayrepo.NewHTTP(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayWebhookSecret)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	ts := toolsvc.New(tr)
	bs := borrowsvc.New(br, tr, gw, cfg.Currency, cfg.BaseURL)
	ps := paymentsvc.New(br, gw)
	rs := reviewsvc.New(rr, br, tr)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	toolC := &toolctrl.Controller{Svc: ts, V: v, Log: log}
	borrowC := &borrowctrl.Controller{Svc: bs, V: v, Log: log}
	reviewC := &reviewctrl.Controller{Svc: rs, V: v, Log: log}
	paymentC := &paymentctrl.Controller{Svc: ps, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:      authC,
		Tool:      toolC,
		Borrow:    borrowC,
		Review:    reviewC,
		Payment:   paymentC,
		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	slog.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
