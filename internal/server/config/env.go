package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables. A .env file in the
// working directory is loaded first, if present; real environment variables
// win over the file.
//
// Recognized variables:
//
//	PHONO_ADDR, PHONO_DATABASE_DSN, PHONO_SECRET_KEY,
//	PHONO_ACCESS_TOKEN_TTL (Go duration), PHONO_OTP_TTL (Go duration),
//	PHONO_S3_ROOT_USER, PHONO_S3_ROOT_PASSWORD, PHONO_S3_BUCKET,
//	PHONO_S3_REGION, PHONO_S3_BASE_ENDPOINT, PHONO_IMAGE_BASE_URL,
//	PHONO_DEV (bool)
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if v, ok := os.LookupEnv(key); ok {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}

	setString("PHONO_ADDR", &cfg.Addr)
	setString("PHONO_DATABASE_DSN", &cfg.DatabaseDSN)
	setString("PHONO_SECRET_KEY", &cfg.SecretKey)
	setDuration("PHONO_ACCESS_TOKEN_TTL", &cfg.AccessTokenValidityDuration)
	setDuration("PHONO_REFRESH_TOKEN_TTL", &cfg.RefreshTokenValidityDuration)
	setDuration("PHONO_OTP_TTL", &cfg.OTPValidityDuration)
	setString("PHONO_S3_ROOT_USER", &cfg.S3RootUser)
	setString("PHONO_S3_ROOT_PASSWORD", &cfg.S3RootPassword)
	setString("PHONO_S3_BUCKET", &cfg.S3Bucket)
	setString("PHONO_S3_REGION", &cfg.S3Region)
	setString("PHONO_S3_BASE_ENDPOINT", &cfg.S3BaseEndpoint)
	setString("PHONO_IMAGE_BASE_URL", &cfg.PublicImageBaseURL)

	if v, ok := os.LookupEnv("PHONO_DEV"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Dev = b
		}
	}
}
