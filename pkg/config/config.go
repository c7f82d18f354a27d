package config

import "os"

type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	PostgresConnStr         string
	MongoURI                string
	ShutdownTimeoutSeconds  int
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		ShutdownTimeoutSeconds:  15,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
