package config

type App struct {
	Port                  string `env:"APP_PORT" default:"8080"`
	DatabaseURL           string `env:"DATABASE_URL,required"`
	JWTSecret             string `env:"JWT_SECRET,required"`
	BaseURL               string `env:"BASE_URL" default:"http://localhost:8080"`
	RazorpayKeyID         string `env:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret     string `env:"RAZORPAY_KEY_SECRET"`
	RazorpayWebhookSecret string `env:"RAZORPAY_WEBHOOK_SECRET"`
	Currency              string `env:"CURRENCY" default:"INR"`
	Env                   string `env:"APP_ENV" default:"dev"`
}
