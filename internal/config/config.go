package config

import "os"

type Config struct {
	Port      string
	MongoURL  string
	MongoDB   string
	RedisURL  string
	JWTSecret string
	ClientURL string

	SMTPHost      string
	SMTPPort      string
	EmailFrom     string
	EmailPassword string

	JaegerEndpoint string
}

func Load() Config {
	return Config{
		Port:      getenv("PORT", ":8080"),
		MongoURL:  getenv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDB:   getenv("MONGO_DB", "sharebnb"),
		RedisURL:  getenv("REDIS_URL", "redis://127.0.0.1:6379"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		ClientURL: getenv("CLIENT_URL", "http://localhost:5173"),

		SMTPHost:      getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getenv("SMTP_PORT", "587"),
		EmailFrom:     os.Getenv("EMAIL_FROM"),
		EmailPassword: os.Getenv("EMAIL_PASSWORD"),

		JaegerEndpoint: os.Getenv("JAEGER_ENDPOINT"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
