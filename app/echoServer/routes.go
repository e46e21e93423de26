package echoServer

import (
	"net/http"

	"borrowbox/app/echoServer/controller/auth"
	"borrowbox/app/echoServer/controller/borrow"
	"borrowbox/app/echoServer/controller/payment"
	"borrowbox/app/echoServer/controller/review"
	"borrowbox/app/echoServer/controller/tool"
	"borrowbox/app/echoServer/jwtx"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth      *auth.Controller
	Tool      *tool.Controller
	Borrow    *borrow.Controller
	Review    *review.Controller
	Payment   *payment.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// Gateway webhook: authenticated by its HMAC signature, not a JWT.
	pub.POST("/payments/razorpay", c.Payment.HandleRazorpay)

	// Auth
	authGroup := e.Group("/v1")
	authGroup.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
	}))
	authGroup.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			sess, err := jwtx.SessionFromToken(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			jwtx.SetSession(ctx, sess)
			return next(ctx)
		}
	})

	// Tools
	authGroup.GET("/tools", c.Tool.List)
	authGroup.GET("/tools/mine", c.Tool.Mine)
	authGroup.GET("/tools/:id", c.Tool.Detail)
	authGroup.POST("/tools", c.Tool.Create)
	authGroup.DELETE("/tools/:id", c.Tool.Delete)

	// Borrow lifecycle
	authGroup.POST("/tools/:id/borrow", c.Borrow.Initiate)
	authGroup.POST("/borrows/:id/cancel", c.Borrow.Cancel)
	authGroup.POST("/borrows/:id/return", c.Borrow.Return)
	authGroup.GET("/borrows/:id/qr", c.Borrow.ReturnQR)
	authGroup.GET("/borrows/my", c.Borrow.MyHistory)

	// Reviews
	authGroup.POST("/reviews", c.Review.Create)
	authGroup.GET("/tools/:id/reviews", c.Review.ListByTool)
}
