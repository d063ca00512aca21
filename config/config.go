package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Scoring  Scoring
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Scoring holds the grading policy. Baseline is the score an assessment
// starts from before error deductions; PassThreshold is the LANJUT/ULANG
// cutoff. The threshold is deliberately independent of the score category
// table, so status and predicate can disagree at a band boundary.
type Scoring struct {
	Baseline      int
	PassThreshold int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SCORE_BASELINE", 90)
	viper.SetDefault("PASS_THRESHOLD", 65)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Scoring.Baseline = viper.GetInt("SCORE_BASELINE")
	config.Scoring.PassThreshold = viper.GetInt("PASS_THRESHOLD")

	log.Info().Interface("config", config).Msg("Config loaded")
	return &config, nil
}
